package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"emailtriage/internal/service"
)

func auditDisabled(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusServiceUnavailable, "AUDIT_DISABLED", "classification audit log is disabled")
}

// ListClassifications returns audit events with limit & offset.
// A nil history means auditing is disabled.
//
// @Summary List recorded classifications
// @Tags    classifications
// @Produce json
// @Param   limit  query int false "Page size" default(10)
// @Param   offset query int false "Rows to skip" default(0)
// @Success 200 {object} service.ClassificationListResult
// @Failure 400 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router  /classifications [get]
func ListClassifications(history service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if history == nil {
			return auditDisabled(c)
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := history.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ClassificationStats returns event counts per category and source.
//
// @Summary Classification counts
// @Tags    classifications
// @Produce json
// @Success 200 {object} map[string][]model.CategoryCount
// @Failure 503 {object} errorPayload
// @Router  /classifications/stats [get]
func ClassificationStats(history service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if history == nil {
			return auditDisabled(c)
		}

		counts, err := history.Stats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": counts})
	}
}
