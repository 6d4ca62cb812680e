package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"jobgate/internal/aggregator"
	"jobgate/internal/export"
	"jobgate/internal/logging"
	"jobgate/internal/params"
	"jobgate/pkg/models"
	"jobgate/pkg/utils"
)

// JobsHandler serves the search endpoint for both GET and POST. Query
// string parameters come first; a JSON body overlays them key by key, so a
// POST can still carry shared parameters in the URL.
func JobsHandler(agg *aggregator.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID, _ := c.Get("request_id").(string)
		logger := logging.LogWithRequestID(requestID)

		raw := map[string]any{}
		for key, values := range c.QueryParams() {
			if len(values) > 0 {
				raw[key] = values[0]
			}
		}

		if c.Request().Method == http.MethodPost && c.Request().ContentLength != 0 {
			body := map[string]any{}
			if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
				return writeError(c, utils.NewValidationError("malformed JSON body: "+err.Error()))
			}
			for key, value := range body {
				raw[key] = value
			}
		}

		req, err := params.Normalize(raw)
		if err != nil {
			return writeError(c, err)
		}

		logger.Info("Job search started", map[string]interface{}{
			"sites":       req.Sources,
			"search_term": req.SearchTerm,
			"location":    req.Location,
			"output":      req.OutputFormat,
		})

		envelope, err := agg.Run(c.Request().Context(), req)
		if err != nil {
			logger.Error("Job search failed", map[string]interface{}{
				"error": err.Error(),
			})
			return writeError(c, err)
		}

		logger.Info("Job search completed", map[string]interface{}{
			"count": envelope.Count,
		})

		switch req.OutputFormat {
		case models.OutputCSV:
			data, err := export.CSV(envelope.Jobs)
			if err != nil {
				return writeError(c, utils.NewInternalError("failed to render csv: "+err.Error()))
			}
			c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=jobs.csv`)
			return c.Blob(http.StatusOK, "text/csv", data)

		case models.OutputExcel:
			data, err := export.Excel(envelope.Jobs)
			if err != nil {
				return writeError(c, utils.NewInternalError("failed to render excel: "+err.Error()))
			}
			c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=jobs.xlsx`)
			return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

		default:
			return c.JSON(http.StatusOK, envelope)
		}
	}
}

// writeError maps application errors onto the wire error shape. Unknown
// error types become opaque 500s.
func writeError(c echo.Context, err error) error {
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.Code, models.ErrorResponse{
			Error:      apiErr.Message,
			ErrorType:  apiErr.Type,
			Parameters: apiErr.Parameters,
		})
	}
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     err.Error(),
		ErrorType: "internal_error",
	})
}
