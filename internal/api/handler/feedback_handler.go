package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/api/metrics"
	"github.com/pathshala/pathshala-api/internal/api/middleware"
	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// FeedbackHandler handles the student side of the feedback exchange and
// the admin review endpoints.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type submitFeedbackRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=feedback doubt"`
}

type respondFeedbackRequest struct {
	Response string `json:"response" validate:"required"`
}

type feedbackListResponse struct {
	Feedback []domain.Feedback `json:"feedback"`
}

type feedbackResponse struct {
	Feedback *domain.Feedback `json:"feedback"`
}

// Submit files a new feedback entry or doubt for the signed-in student.
//
// @Summary      Submit feedback or a doubt
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      submitFeedbackRequest  true  "Submission"
// @Success      201   {object}  feedbackResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := h.service.Submit(c.Request().Context(), ports.SubmitFeedbackInput{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
		Type:    domain.FeedbackType(req.Type),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFeedbackType) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	metrics.FeedbackSubmittedTotal.WithLabelValues(string(f.Type)).Inc()
	return c.JSON(http.StatusCreated, feedbackResponse{Feedback: f})
}

// ListOwn returns the signed-in student's submissions, newest first.
//
// @Summary      List own feedback
// @Tags         feedback
// @Produce      json
// @Success      200  {object}  feedbackListResponse
// @Failure      401  {object}  map[string]string
// @Router       /feedback [get]
func (h *FeedbackHandler) ListOwn(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListOwn(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Feedback{}
	}
	return c.JSON(http.StatusOK, feedbackListResponse{Feedback: items})
}

// AdminList returns every submission with submitter details (admin only).
//
// @Summary      List all feedback
// @Tags         feedback
// @Produce      json
// @Success      200  {object}  feedbackListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/feedback [get]
func (h *FeedbackHandler) AdminList(c echo.Context) error {
	items, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Feedback{}
	}
	return c.JSON(http.StatusOK, feedbackListResponse{Feedback: items})
}

// Respond records an admin's answer on a submission (admin only).
//
// @Summary      Respond to feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Feedback id"
// @Param        body  body      respondFeedbackRequest  true  "Response"
// @Success      200   {object}  feedbackResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/feedback/{id} [patch]
func (h *FeedbackHandler) Respond(c echo.Context) error {
	adminID, _ := c.Get(middleware.CtxUserID).(string)

	var req respondFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := h.service.Respond(c.Request().Context(), c.Param("id"), req.Response, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrFeedbackNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "feedback not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, feedbackResponse{Feedback: f})
}
