package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/api/metrics"
	"github.com/pathshala/pathshala-api/internal/api/middleware"
	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// MaterialHandler handles study material listing and publishing.
type MaterialHandler struct {
	service ports.MaterialService
}

func NewMaterialHandler(service ports.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: service}
}

type materialsResponse struct {
	Materials []domain.Material `json:"materials"`
}

type materialResponse struct {
	Material *domain.Material `json:"material"`
}

// List returns materials, optionally filtered by semester.
//
// @Summary      List study materials
// @Tags         materials
// @Produce      json
// @Param        semester  query     int  false  "Semester filter (1-8)"
// @Success      200       {object}  materialsResponse
// @Failure      500       {object}  map[string]string
// @Router       /materials [get]
func (h *MaterialHandler) List(c echo.Context) error {
	semester, err := semesterQuery(c)
	if err != nil {
		return err
	}

	materials, err := h.service.List(c.Request().Context(), semester)
	if err != nil {
		return err
	}
	if materials == nil {
		materials = []domain.Material{}
	}
	return c.JSON(http.StatusOK, materialsResponse{Materials: materials})
}

// Create publishes a new study material (admin only, multipart form).
//
// @Summary      Publish a study material
// @Tags         materials
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        semester     formData  int     true   "Semester (1-8)"
// @Param        file         formData  file    true   "Document file"
// @Success      201          {object}  materialResponse
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Router       /materials [post]
func (h *MaterialHandler) Create(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and file are required")
	}

	semester := 1
	if raw := c.FormValue("semester"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !domain.ValidSemester(n) {
			return echo.NewHTTPError(http.StatusBadRequest, domain.ErrInvalidSemester.Error())
		}
		semester = n
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "title and file are required")
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	uploadedBy, _ := c.Get(middleware.CtxUserID).(string)

	material, err := h.service.Create(c.Request().Context(), ports.CreateMaterialInput{
		Title:       title,
		Description: c.FormValue("description"),
		Semester:    semester,
		FileName:    fh.Filename,
		Size:        fh.Size,
		File:        src,
		UploadedBy:  uploadedBy,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSemester) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	metrics.UploadsTotal.WithLabelValues("material").Inc()
	return c.JSON(http.StatusCreated, materialResponse{Material: material})
}
