package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/http/respond"
	applog "stockroom/internal/log"
)

// reply writes a success envelope. A non-empty action is audited once the
// status is set.
func reply(c *fiber.Ctx, status int, action, message string, data any, fields map[string]any) error {
	c.Status(status)
	if action != "" {
		applog.Audit(c, action, fields)
	}
	return c.JSON(respond.OK(message, data))
}

// fail logs err under action and writes the failure envelope for it.
func fail(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	status, body := respond.Failure(err)
	c.Status(status)
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, action, err, fields)
	} else {
		applog.Warn(c, action, err, fields)
	}
	return c.JSON(body)
}

func query(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.Query(key) }
}
