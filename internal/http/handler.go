package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/courier-payroll/internal/auth"
	"github.com/nurpe/courier-payroll/internal/earnings"
	"github.com/nurpe/courier-payroll/internal/service"
)

type Handler struct {
	couriers   *service.CourierService
	deliveries *service.DeliveryService
	reports    *service.ReportService
	payroll    *service.PayrollService
	gate       *auth.Gate
	log        zerolog.Logger
}

func NewHandler(
	couriers *service.CourierService,
	deliveries *service.DeliveryService,
	reports *service.ReportService,
	payroll *service.PayrollService,
	gate *auth.Gate,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		couriers:   couriers,
		deliveries: deliveries,
		reports:    reports,
		payroll:    payroll,
		gate:       gate,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/couriers", h.listCouriers)
	protected.POST("/couriers", h.createCourier)
	protected.PUT("/couriers/:id", h.renameCourier)
	protected.DELETE("/couriers/:id", h.deleteCourier)
	protected.GET("/couriers/:id/biweekly", h.courierBiweekly)

	protected.GET("/deliveries", h.listDeliveries)
	protected.POST("/deliveries", h.createDelivery)
	protected.GET("/deliveries/:id", h.getDelivery)
	protected.PUT("/deliveries/:id", h.updateDelivery)
	protected.DELETE("/deliveries/:id", h.deleteDelivery)
	protected.PATCH("/deliveries/:id/paid", h.toggleDeliveryPaid)

	protected.GET("/reports/summary", h.reportSummary)
	protected.GET("/reports/summary/pdf", h.reportSummaryPDF)
	protected.GET("/reports/summary/xlsx", h.reportSummaryExcel)
	protected.GET("/reports/fortnight", h.reportFortnight)
	protected.GET("/reports/couriers", h.reportCourierTotals)
	protected.GET("/payroll/closings", h.listClosings)
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, expiresAt, err := h.gate.Login(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			h.handleError(c, service.ErrUnauthorized)
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt,
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func sendFile(c *gin.Context, contentType string, result *service.ExportResult) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// parseCourierSelector accepts a courier id, "all", or nothing. The last two
// select every courier.
func parseCourierSelector(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return earnings.AllCouriers, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, service.ErrInvalidInput
	}
	return id, nil
}

func parseOptionalDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return parseDate(raw)
}

func parseOptionalBool(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &v, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
		earnings.DateKeyLayout,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
