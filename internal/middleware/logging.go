package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teamspace/backend/pkg/logger"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		details := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status_code": c.Response().StatusCode(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		}

		session := GetCurrentSession(c)
		switch {
		case session != nil && c.Response().StatusCode() >= 400:
			logger.ErrorWithSession(session.ID.String(), "http_request", err, details)
		case session != nil:
			logger.InfoWithSession(session.ID.String(), "http_request", details)
		case c.Response().StatusCode() >= 400:
			logger.Error("http_request", err, details)
		default:
			logger.Info("http_request", details)
		}

		return err
	}
}

// SecurityLogger records denied and missing-resource responses separately so
// gate probing stands out from routine traffic.
func SecurityLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if status != fiber.StatusForbidden && status != fiber.StatusNotFound {
			return err
		}

		details := map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"ip":     c.IP(),
		}
		reason := "not_found"
		if status == fiber.StatusForbidden {
			reason = "access_denied"
		}
		details["reason"] = reason

		if session := GetCurrentSession(c); session != nil {
			logger.WarnWithSession(session.ID.String(), reason, details)
		} else {
			logger.Warn(reason+"_unauthenticated", details)
		}

		return err
	}
}
