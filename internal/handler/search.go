package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flown/flown/internal/engine"
	"github.com/flown/flown/internal/models"
)

type SearchHandler struct {
	engine *engine.Engine
}

func NewSearchHandler(eng *engine.Engine) *SearchHandler {
	return &SearchHandler{engine: eng}
}

func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	resp, err := h.engine.Search(ctx, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search itineraries: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
