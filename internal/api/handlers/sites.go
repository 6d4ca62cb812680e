package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobgate/pkg/models"
)

// SitesHandler lists every supported job board, sorted.
func SitesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"sites": models.KnownSources(),
	})
}
