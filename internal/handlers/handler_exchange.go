package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/devfx/currency_converter_api/internal/apperrors"
	portssvc "github.com/devfx/currency_converter_api/internal/core/ports/services"
	"github.com/devfx/currency_converter_api/internal/dto"
	"github.com/devfx/currency_converter_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeHandler handles HTTP requests related to currency conversion.
type exchangeHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
}

// newExchangeHandler creates a new exchangeHandler.
func newExchangeHandler(es portssvc.ExchangeSvcFacade) *exchangeHandler {
	return &exchangeHandler{
		exchangeService: es,
	}
}

// RegisterExchangeRoutes registers the authenticated conversion routes.
func RegisterExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade) {
	h := newExchangeHandler(exchangeService)

	exchange := rg.Group("/exchange")
	{
		exchange.POST("/convert", h.convert)
		exchange.GET("/history", h.getHistory)
	}
}

// registerExchangeTestRoute registers the public liveness probe.
func registerExchangeTestRoute(r *gin.Engine) {
	r.GET("/api/v1/exchange/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "API is running correctly!"})
	})
}

// convert godoc
// @Summary Convert an amount between two currencies
// @Description Fetches the live rate for the pair, computes the converted amount and records the transaction for the caller
// @Tags exchange
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion details"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unsupported currency pair"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Provider unavailable or internal failure"
// @Security BearerAuth
// @Router /exchange/convert [post]
func (h *exchangeHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	username, ok := middleware.GetUsernameFromContext(c)
	if !ok {
		logger.Error("Username not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger.Info("Received conversion request",
		slog.String("from", req.From),
		slog.String("to", req.To),
		slog.String("amount", req.Amount.String()),
	)

	record, err := h.exchangeService.Convert(c.Request.Context(), username, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error on conversion", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInvalidCurrencyPair):
			logger.Warn("Provider rejected currency pair", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrProviderUnavailable):
			logger.Error("Rate provider unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Exchange rate service is currently unavailable"})
		default:
			// Includes the user vanishing between auth and lookup, and storage failures.
			logger.Error("Failed to convert currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to convert currency"})
		}
		return
	}

	logger.Info("Conversion recorded", slog.Int64("conversion_id", record.ConversionID))
	c.JSON(http.StatusOK, dto.ToConversionResponse(record))
}

// getHistory godoc
// @Summary Get the caller's conversion history
// @Description Retrieves all conversion records owned by the authenticated user
// @Tags exchange
// @Produce  json
// @Success 200 {array} dto.ConversionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to retrieve history"
// @Security BearerAuth
// @Router /exchange/history [get]
func (h *exchangeHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	username, ok := middleware.GetUsernameFromContext(c)
	if !ok {
		logger.Error("Username not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	records, err := h.exchangeService.GetHistory(c.Request.Context(), username)
	if err != nil {
		logger.Error("Failed to get conversion history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve conversion history"})
		return
	}

	logger.Info("Conversion history retrieved", slog.Int("count", len(records)))
	c.JSON(http.StatusOK, dto.ToListConversionResponse(records))
}
