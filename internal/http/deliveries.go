package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/courier-payroll/internal/earnings"
	"github.com/nurpe/courier-payroll/internal/model"
	"github.com/nurpe/courier-payroll/internal/service"
)

// deliveryRequest keeps the numeric fields loose: forms send numbers, numeric
// strings or nothing at all, and the engine's coercion rules decide.
type deliveryRequest struct {
	CourierID       string `json:"courier_id"`
	Date            string `json:"date"`
	PackageCount    any    `json:"package_count"`
	AdditionalValue any    `json:"additional_value"`
	Paid            *bool  `json:"paid"`
}

func (r deliveryRequest) toInput() (service.DeliveryInput, error) {
	var input service.DeliveryInput

	if raw := strings.TrimSpace(r.CourierID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return input, fmt.Errorf("%w: courier_id", service.ErrInvalidInput)
		}
		input.CourierID = id
	}

	date, err := parseOptionalDate(r.Date)
	if err != nil {
		return input, fmt.Errorf("%w: date", service.ErrInvalidInput)
	}
	input.Date = date

	if !blank(r.PackageCount) {
		count := earnings.Count(r.PackageCount)
		input.PackageCount = &count
	}
	input.AdditionalValue = earnings.Number(r.AdditionalValue)
	input.Paid = r.Paid
	return input, nil
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func (h *Handler) listDeliveries(c *gin.Context) {
	var filter model.DeliveryFilter

	courierID, err := parseCourierSelector(c.Query("courier_id"))
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: courier_id", err))
		return
	}
	if courierID != earnings.AllCouriers {
		filter.CourierID = &courierID
	}
	if filter.Range.Start, err = parseOptionalDate(c.Query("from")); err != nil {
		h.handleError(c, fmt.Errorf("%w: from", err))
		return
	}
	if filter.Range.End, err = parseOptionalDate(c.Query("to")); err != nil {
		h.handleError(c, fmt.Errorf("%w: to", err))
		return
	}
	if filter.Paid, err = parseOptionalBool(c.Query("paid")); err != nil {
		h.handleError(c, fmt.Errorf("%w: paid", err))
		return
	}

	deliveries, err := h.deliveries.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": deliveries})
}

func (h *Handler) createDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.handleError(c, err)
		return
	}

	delivery, err := h.deliveries.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": delivery})
}

func (h *Handler) getDelivery(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	delivery, err := h.deliveries.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": delivery})
}

func (h *Handler) updateDelivery(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.handleError(c, err)
		return
	}

	delivery, err := h.deliveries.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": delivery})
}

func (h *Handler) toggleDeliveryPaid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	delivery, err := h.deliveries.TogglePaid(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": delivery})
}

func (h *Handler) deleteDelivery(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.deliveries.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
