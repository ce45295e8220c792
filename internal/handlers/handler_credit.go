package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fincore/credit-service/internal/apperrors"
	portssvc "github.com/fincore/credit-service/internal/core/ports/services"
	"github.com/fincore/credit-service/internal/dto"
	"github.com/fincore/credit-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// creditHandler handles HTTP requests related to credits.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

// newCreditHandler creates a new creditHandler.
func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{
		creditService: cs,
	}
}

// registerCreditRoutes registers routes related to credits.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credits")
	{
		credits.GET("", h.listCredits)
		credits.GET("/:id", h.getCredit)
		credits.POST("", h.createCredit)
		credits.PUT("/:id", h.updateCredit)
		credits.DELETE("/:id", h.deleteCredit)
		credits.POST("/:id/payments", h.payCredit)
		credits.GET("/:id/payments", h.listPayments)
		credits.GET("/client/:clientID", h.listCreditsByClient)
		credits.GET("/client/:clientID/balances", h.getBalancesByClient)
	}
}

// listCredits returns every credit in the store.
func (h *creditHandler) listCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to list credits")

	creditList, err := h.creditService.ListCredits(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list credits")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCreditResponse(creditList))
}

// getCredit returns a single credit by id.
func (h *creditHandler) getCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("id")
	logger.Info("Received request to get credit", slog.String("credit_id", creditID))

	credit, err := h.creditService.GetCreditByID(c.Request.Context(), creditID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

// createCredit creates a new credit after client resolution and admission.
func (h *creditHandler) createCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Credit Data", "message": err.Error()})
		return
	}

	logger.Info("Received request to create credit", slog.String("client_id", req.ClientID), slog.String("type", string(req.Type)))

	// The Authorization header is forwarded opaquely to the client directory.
	credit, err := h.creditService.CreateCredit(c.Request.Context(), req, c.GetHeader("Authorization"))
	if err != nil {
		respondWithError(c, err, "Failed to create credit")
		return
	}

	logger.Info("Credit created successfully", slog.String("credit_id", credit.CreditID))
	c.JSON(http.StatusCreated, dto.ToCreditResponse(credit))
}

// updateCredit replaces a credit's mutable fields, preserving its id.
func (h *creditHandler) updateCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("id")

	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCredit", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Credit Data", "message": err.Error()})
		return
	}

	logger.Info("Received request to update credit", slog.String("credit_id", creditID))

	credit, err := h.creditService.UpdateCredit(c.Request.Context(), creditID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

// deleteCredit removes a credit after an existence check.
func (h *creditHandler) deleteCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("id")
	logger.Info("Received request to delete credit", slog.String("credit_id", creditID))

	if err := h.creditService.DeleteCredit(c.Request.Context(), creditID); err != nil {
		respondWithError(c, err, "Failed to delete credit")
		return
	}

	c.Status(http.StatusNoContent)
}

// payCredit applies a payment against a credit's outstanding balance.
func (h *creditHandler) payCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("id")

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payCredit", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Payment Data", "message": err.Error()})
		return
	}

	logger.Info("Received request to pay credit", slog.String("credit_id", creditID))

	payment, err := h.creditService.PayByCreditID(c.Request.Context(), creditID, req)
	if err != nil {
		respondWithError(c, err, "Failed to apply payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments returns the payments recorded against a credit in order.
func (h *creditHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("id")
	logger.Info("Received request to list payments", slog.String("credit_id", creditID))

	payments, err := h.creditService.ListPaymentsByCreditID(c.Request.Context(), creditID)
	if err != nil {
		respondWithError(c, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentResponse(payments))
}

// listCreditsByClient returns every credit owned by a client.
func (h *creditHandler) listCreditsByClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	logger.Info("Received request to list credits by client", slog.String("client_id", clientID))

	creditList, err := h.creditService.GetCreditsByClientID(c.Request.Context(), clientID)
	if err != nil {
		respondWithError(c, err, "Failed to list credits for client")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCreditResponse(creditList))
}

// getBalancesByClient returns the balance report for a client.
func (h *creditHandler) getBalancesByClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")
	logger.Info("Received request for balance report", slog.String("client_id", clientID))

	report, err := h.creditService.GetBalancesByClientID(c.Request.Context(), clientID)
	if err != nil {
		respondWithError(c, err, "Failed to build balance report")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(report))
}

// respondWithError maps the error taxonomy onto stable HTTP categories:
// validation and unknown-type failures are client errors, not-found is 404,
// admission denial is a conflict, a tripped resilience boundary is 503, and
// everything else is a generic server error.
func respondWithError(c *gin.Context, err error, serverErrMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Data", "message": err.Error()})
	case errors.Is(err, apperrors.ErrPaymentExceedsBalance):
		logger.Warn("Payment exceeds balance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment Exceeds Balance", "message": err.Error()})
	case errors.Is(err, apperrors.ErrUnknownClientType):
		logger.Warn("Unknown client type", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown Client Type", "message": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit Not Found", "message": err.Error()})
	case errors.Is(err, apperrors.ErrAdmissionDenied):
		logger.Warn("Credit admission denied", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Admission Denied", "message": err.Error()})
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		logger.Error("Serving resilience fallback", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service Unavailable", "message": err.Error()})
	default:
		logger.Error(serverErrMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": serverErrMsg})
	}
}
