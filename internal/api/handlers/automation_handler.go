package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"github.com/andresuchdata/flowpilot/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const defaultFeedLimit = 20

// ruleRequest requires value to be present (it may be empty) while action
// may be blank.
type ruleRequest struct {
	Condition domain.RuleCondition `json:"condition" binding:"required,oneof=stock_below anomaly_above event_type"`
	Value     *string              `json:"value" binding:"required"`
	Action    string               `json:"action"`
}

type evaluateRulesRequest struct {
	SKU          string        `json:"sku"`
	EventType    string        `json:"event_type"`
	Stock        *int          `json:"stock" binding:"omitempty,min=0"`
	AnomalyScore *float64      `json:"anomaly_score" binding:"omitempty,min=0,max=1"`
	Rules        []ruleRequest `json:"rules" binding:"dive"`
}

func (r evaluateRulesRequest) rules() []domain.Rule {
	out := make([]domain.Rule, 0, len(r.Rules))
	for _, rule := range r.Rules {
		out = append(out, domain.Rule{
			Condition: rule.Condition,
			Value:     *rule.Value,
			Action:    rule.Action,
		})
	}
	return out
}

type webhookRequest struct {
	SKU       string           `json:"sku" binding:"required"`
	EventType domain.EventType `json:"event_type" binding:"required,oneof=sale restock correction anomaly"`
	Delta     *int             `json:"delta" binding:"required"`
}

type AutomationHandler struct {
	service *service.AutomationService
}

func NewAutomationHandler(service *service.AutomationService) *AutomationHandler {
	return &AutomationHandler{service: service}
}

func (h *AutomationHandler) GetInventory(c *gin.Context) {
	items := h.service.GetInventory(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *AutomationHandler) PredictRestock(c *gin.Context) {
	predictions, err := h.service.PredictRestock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to predict restock", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

func (h *AutomationHandler) EvaluateRules(c *gin.Context) {
	var req evaluateRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	alerts, err := h.service.EvaluateRules(c.Request.Context(), service.EvaluateRulesInput{
		SKU:          req.SKU,
		EventType:    req.EventType,
		Stock:        req.Stock,
		AnomalyScore: req.AnomalyScore,
		Rules:        req.rules(),
	})
	if err != nil {
		var ruleErr *domain.InvalidRuleValueError
		switch {
		case errors.As(err, &ruleErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":     "invalid rule value",
				"details":   ruleErr.Error(),
				"rule":      ruleErr.Index,
				"condition": ruleErr.Condition,
			})
		case errors.Is(err, domain.ErrUnknownRuleCondition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown rule condition", "details": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate rules", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *AutomationHandler) SimulateWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.service.SimulateWebhook(c.Request.Context(), domain.WebhookEvent{
		SKU:       req.SKU,
		EventType: req.EventType,
		Delta:     *req.Delta,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "SKU not found"})
		case errors.Is(err, domain.ErrUnknownEventType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type", "details": err.Error()})
		default:
			log.Error().Err(err).Str("sku", req.SKU).Msg("webhook simulate failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply event", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AutomationHandler) BuildPlan(c *gin.Context) {
	var req domain.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, service.BuildPlan(req))
}

func (h *AutomationHandler) GetActivity(c *gin.Context) {
	limit := parseLimit(c)
	activity, alerts := h.service.RecentActivity(limit)

	c.JSON(http.StatusOK, gin.H{
		"events": activity,
		"alerts": alerts,
	})
}

func (h *AutomationHandler) GetJournal(c *gin.Context) {
	entries, err := h.service.RecentJournal(c.Request.Context(), parseLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch journal", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultFeedLimit)))
	if err != nil || limit <= 0 {
		return defaultFeedLimit
	}
	return limit
}
