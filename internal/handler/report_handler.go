package handler

import (
	"go-jossydiva-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDashboard returns the landing-screen aggregate
// GET /api/v1/dashboard
func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	data, err := h.service.Dashboard()
	if err != nil {
		return fail(c, 500, "Failed to build dashboard")
	}
	return ok(c, data)
}

// GetDailyReport returns the report for one calendar day
// GET /api/v1/reports/daily?date=YYYY-MM-DD (defaults to today)
func (h *ReportHandler) GetDailyReport(c *fiber.Ctx) error {
	report, err := h.service.Daily(c.Query("date"))
	if err != nil {
		return failFromErr(c, err)
	}
	return ok(c, report)
}

// GetWeeklyReport covers the trailing seven days
// GET /api/v1/reports/weekly
func (h *ReportHandler) GetWeeklyReport(c *fiber.Ctx) error {
	report, err := h.service.Weekly()
	if err != nil {
		return fail(c, 500, "Failed to build weekly report")
	}
	return ok(c, report)
}

// GetMonthlyReport covers all recorded sales
// GET /api/v1/reports/monthly
func (h *ReportHandler) GetMonthlyReport(c *fiber.Ctx) error {
	report, err := h.service.Monthly()
	if err != nil {
		return fail(c, 500, "Failed to build monthly report")
	}
	return ok(c, report)
}

// GetCustomReport covers an inclusive date range
// GET /api/v1/reports/custom?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *ReportHandler) GetCustomReport(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		return fail(c, 400, "start_date and end_date are required")
	}

	report, err := h.service.Custom(startDate, endDate)
	if err != nil {
		return failFromErr(c, err)
	}
	return ok(c, report)
}
