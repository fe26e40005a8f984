package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/courier-payroll/internal/earnings"
	"github.com/nurpe/courier-payroll/internal/model"
	"github.com/nurpe/courier-payroll/internal/service"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func parseReportFilter(c *gin.Context) (service.ReportFilter, error) {
	var filter service.ReportFilter
	var err error

	if filter.CourierID, err = parseCourierSelector(c.Query("courier_id")); err != nil {
		return filter, fmt.Errorf("%w: courier_id", err)
	}
	if filter.Range.Start, err = parseOptionalDate(c.Query("from")); err != nil {
		return filter, fmt.Errorf("%w: from", err)
	}
	if filter.Range.End, err = parseOptionalDate(c.Query("to")); err != nil {
		return filter, fmt.Errorf("%w: to", err)
	}
	return filter, nil
}

func (h *Handler) reportSummary(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	report, err := h.reports.Summary(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (h *Handler) reportSummaryPDF(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportPDF(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, contentTypePDF, result)
}

func (h *Handler) reportSummaryExcel(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportExcel(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, contentTypeXLSX, result)
}

// reportFortnight answers ?year=2024&month=2&half=first|second. Month is
// 1-based.
func (h *Handler) reportFortnight(c *gin.Context) {
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: year", service.ErrInvalidInput))
		return
	}
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: month", service.ErrInvalidInput))
		return
	}
	courierID, err := parseCourierSelector(c.Query("courier_id"))
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: courier_id", err))
		return
	}
	half := model.Half(strings.ToLower(strings.TrimSpace(c.Query("half"))))

	report, err := h.reports.Fortnight(c.Request.Context(), year, time.Month(month), half, courierID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (h *Handler) reportCourierTotals(c *gin.Context) {
	totals, err := h.reports.CourierTotals(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": totals})
}

func (h *Handler) listClosings(c *gin.Context) {
	courierID, err := parseCourierSelector(c.Query("courier_id"))
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: courier_id", err))
		return
	}
	filter := &courierID
	if courierID == earnings.AllCouriers {
		filter = nil
	}

	closings, err := h.payroll.ListClosings(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": closings})
}
