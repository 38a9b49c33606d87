package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careline/clinic-backend/internal/core/ports"
)

// ContentHandler serves care program content: the public site reads
// published entries, the admin panel manages the full set.
type ContentHandler struct {
	programs ports.ProgramService
}

func NewContentHandler(programs ports.ProgramService) *ContentHandler {
	return &ContentHandler{programs: programs}
}

type createProgramRequest struct {
	Slug      string `json:"slug" validate:"required,max=120"`
	Title     string `json:"title" validate:"required,max=300"`
	Summary   string `json:"summary" validate:"omitempty,max=1000"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	SortOrder int    `json:"sort_order"`
}

type patchProgramRequest struct {
	Slug      *string `json:"slug" validate:"omitempty,max=120"`
	Title     *string `json:"title" validate:"omitempty,max=300"`
	Summary   *string `json:"summary" validate:"omitempty,max=1000"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
	SortOrder *int    `json:"sort_order"`
}

// ListPublic returns published programs in display order.
//
// @Summary      List published care programs
// @Tags         content
// @Produce      json
// @Success      200  {array}  domain.CareProgram
// @Router       /content/programs [get]
func (h *ContentHandler) ListPublic(c echo.Context) error {
	items, err := h.programs.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) GetPublic(c echo.Context) error {
	p, err := h.programs.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ContentHandler) ListAdmin(c echo.Context) error {
	items, err := h.programs.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) Create(c echo.Context) error {
	var req createProgramRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.programs.Create(c.Request().Context(), ports.CreateProgramInput{
		Slug:      req.Slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Body:      req.Body,
		Published: req.Published,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ContentHandler) Patch(c echo.Context) error {
	var req patchProgramRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.programs.Patch(c.Request().Context(), c.Param("id"), ports.PatchProgramInput{
		Slug:      req.Slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Body:      req.Body,
		Published: req.Published,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ContentHandler) Delete(c echo.Context) error {
	p, err := h.programs.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
