package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/api/metrics"
	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// LectureHandler handles lecture listing and publishing.
type LectureHandler struct {
	service ports.LectureService
}

func NewLectureHandler(service ports.LectureService) *LectureHandler {
	return &LectureHandler{service: service}
}

type lecturesResponse struct {
	Lectures []domain.Lecture `json:"lectures"`
}

type lectureResponse struct {
	Lecture *domain.Lecture `json:"lecture"`
}

// List returns lectures, optionally filtered by semester.
//
// @Summary      List lectures
// @Tags         lectures
// @Produce      json
// @Param        semester  query     int  false  "Semester filter (1-8)"
// @Success      200       {object}  lecturesResponse
// @Failure      500       {object}  map[string]string
// @Router       /lectures [get]
func (h *LectureHandler) List(c echo.Context) error {
	semester, err := semesterQuery(c)
	if err != nil {
		return err
	}

	lectures, err := h.service.List(c.Request().Context(), semester)
	if err != nil {
		return err
	}
	if lectures == nil {
		lectures = []domain.Lecture{}
	}
	return c.JSON(http.StatusOK, lecturesResponse{Lectures: lectures})
}

// Create publishes a new lecture video (admin only, multipart form).
//
// @Summary      Publish a lecture
// @Tags         lectures
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        semester     formData  int     true   "Semester (1-8)"
// @Param        video        formData  file    true   "Video file"
// @Success      201          {object}  lectureResponse
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Router       /lectures [post]
func (h *LectureHandler) Create(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	semester, err := strconv.Atoi(c.FormValue("semester"))
	if err != nil || !domain.ValidSemester(semester) {
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrInvalidSemester.Error())
	}

	fh, err := c.FormFile("video")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "video file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	lecture, err := h.service.Create(c.Request().Context(), ports.CreateLectureInput{
		Title:       title,
		Description: c.FormValue("description"),
		Semester:    semester,
		FileName:    fh.Filename,
		Video:       src,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSemester) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	metrics.UploadsTotal.WithLabelValues("video").Inc()
	return c.JSON(http.StatusCreated, lectureResponse{Lecture: lecture})
}

// semesterQuery parses the optional semester query parameter; 0 means no
// filter.
func semesterQuery(c echo.Context) (int, error) {
	raw := c.QueryParam("semester")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !domain.ValidSemester(n) {
		return 0, echo.NewHTTPError(http.StatusBadRequest, domain.ErrInvalidSemester.Error())
	}
	return n, nil
}
