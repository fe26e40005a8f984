package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/courier-payroll/internal/service"
)

type courierRequest struct {
	Name string `json:"name"`
}

func (h *Handler) listCouriers(c *gin.Context) {
	couriers, err := h.couriers.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": couriers})
}

func (h *Handler) createCourier(c *gin.Context) {
	var req courierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courier, err := h.couriers.Register(c.Request.Context(), req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": courier})
}

func (h *Handler) renameCourier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req courierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courier, err := h.couriers.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": courier})
}

func (h *Handler) deleteCourier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.couriers.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// courierBiweekly reports the rolling fifteen-day total ending at ?reference
// (today when absent).
func (h *Handler) courierBiweekly(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	reference, err := parseOptionalDate(c.Query("reference"))
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: reference", service.ErrInvalidInput))
		return
	}

	total, err := h.reports.Biweekly(c.Request.Context(), id, reference)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": total})
}
