package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// subscriptionHandler handles HTTP requests related to subscriptions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

// newSubscriptionHandler creates a new subscriptionHandler.
func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: ss,
	}
}

// RegisterSubscriptionRoutes registers routes related to subscriptions.
func RegisterSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade) {
	registerValidators()
	h := newSubscriptionHandler(subscriptionService)

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.POST("", h.createSubscription)
		subscriptions.GET("", h.listSubscriptions)
		subscriptions.GET("/summary", h.getMonthlyTotals)
		subscriptions.GET("/:id", h.getSubscription)
		subscriptions.PATCH("/:id", h.updateSubscription)
		subscriptions.DELETE("/:id", h.deleteSubscription)
	}
}

// createSubscription godoc
// @Summary Create a new subscription
// @Description Records a recurring subscription for the logged-in user. Price is a decimal in the currency's major unit.
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscription body dto.CreateSubscriptionRequest true "Subscription details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "A subscription with this name already exists"
// @Failure 500 {object} map[string]string "Failed to create subscription"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Subscription not found", "Failed to create subscription")
		return
	}

	logger.Info("Subscription created", slog.String("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// listSubscriptions godoc
// @Summary List subscriptions
// @Description Lists the logged-in user's subscriptions by next payment date, with monthly totals of the active ones per currency
// @Tags subscriptions
// @Produce  json
// @Param   active query bool false "Only active (true) or inactive (false) subscriptions"
// @Param   limit query int false "Page size (1-100); all subscriptions when omitted"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListSubscriptionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list subscriptions"
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListSubscriptionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListSubscriptions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Subscription not found", "Failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getMonthlyTotals godoc
// @Summary Monthly totals
// @Description Monthly-equivalent spend of the logged-in user's active subscriptions, one entry per supported currency
// @Tags subscriptions
// @Produce  json
// @Success 200 {object} dto.MonthlyTotalsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute totals"
// @Security BearerAuth
// @Router /subscriptions/summary [get]
func (h *subscriptionHandler) getMonthlyTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	totals, err := h.subscriptionService.GetMonthlyTotals(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Subscription not found", "Failed to compute totals")
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyTotalsResponse{Totals: dto.ToCurrencyTotalResponses(totals)})
}

// getSubscription godoc
// @Summary Get a subscription by ID
// @Tags subscriptions
// @Produce  json
// @Param   id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Failure 500 {object} map[string]string "Failed to retrieve subscription"
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subscriptionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("subscription_id", subscriptionID))

	sub, err := h.subscriptionService.GetSubscriptionByID(c.Request.Context(), subscriptionID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Subscription not found", "Failed to retrieve subscription")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// updateSubscription godoc
// @Summary Update a subscription
// @Description Partially updates a subscription. Omitted fields are left unchanged.
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   id path string true "Subscription ID to update"
// @Param   subscription body dto.UpdateSubscriptionRequest true "Fields to update"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Failure 409 {object} map[string]string "A subscription with this name already exists"
// @Failure 500 {object} map[string]string "Failed to update subscription"
// @Security BearerAuth
// @Router /subscriptions/{id} [patch]
func (h *subscriptionHandler) updateSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subscriptionID := c.Param("id")

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("subscription_id", subscriptionID))

	sub, err := h.subscriptionService.UpdateSubscription(c.Request.Context(), subscriptionID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Subscription not found", "Failed to update subscription")
		return
	}

	logger.Info("Subscription updated")
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// deleteSubscription godoc
// @Summary Delete a subscription
// @Tags subscriptions
// @Param   id path string true "Subscription ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Failure 500 {object} map[string]string "Failed to delete subscription"
// @Security BearerAuth
// @Router /subscriptions/{id} [delete]
func (h *subscriptionHandler) deleteSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subscriptionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("subscription_id", subscriptionID))

	if err := h.subscriptionService.DeleteSubscription(c.Request.Context(), subscriptionID, userID); err != nil {
		respondServiceError(c, logger, err, "Subscription not found", "Failed to delete subscription")
		return
	}

	logger.Info("Subscription deleted")
	c.Status(http.StatusNoContent)
}
