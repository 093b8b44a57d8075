package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/api/middleware"
	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// AnnouncementHandler handles notice listing and publishing.
type AnnouncementHandler struct {
	service ports.AnnouncementService
}

func NewAnnouncementHandler(service ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

type createAnnouncementRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Important   bool   `json:"important"`
}

type announcementsResponse struct {
	Announcements []domain.Announcement `json:"announcements"`
}

type announcementResponse struct {
	Announcement *domain.Announcement `json:"announcement"`
}

// List returns all announcements, newest first.
//
// @Summary      List announcements
// @Tags         announcements
// @Produce      json
// @Success      200  {object}  announcementsResponse
// @Failure      500  {object}  map[string]string
// @Router       /announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	announcements, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if announcements == nil {
		announcements = []domain.Announcement{}
	}
	return c.JSON(http.StatusOK, announcementsResponse{Announcements: announcements})
}

// Create publishes a new announcement (admin only).
//
// @Summary      Publish an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        body  body      createAnnouncementRequest  true  "Announcement"
// @Success      201   {object}  announcementResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var req createAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	createdBy, _ := c.Get(middleware.CtxUserID).(string)

	a, err := h.service.Create(c.Request().Context(), ports.CreateAnnouncementInput{
		Title:       req.Title,
		Description: req.Description,
		Important:   req.Important,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, announcementResponse{Announcement: a})
}
