// Package webapi exposes the converter over a JSON API.
// It is organized into sub-packages:
// - converter: session and keystroke endpoints
// - common: response helpers shared by the handlers
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/tokenswap/pkg/app"
	converterweb "github.com/amirasaad/tokenswap/webapi/converter"
	"github.com/amirasaad/tokenswap/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	defaultMaxRequests = 100
	defaultWindow      = time.Minute
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	maxRequests, window := defaultMaxRequests, defaultWindow
	if app.Config != nil && app.Config.RateLimit != nil {
		maxRequests, window = app.Config.RateLimit.MaxRequests, app.Config.RateLimit.Window
	}

	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("TokenSwap API is running! 🚀")
		},
	)

	converterweb.Routes(fiberApp, app.ConverterService)
	return fiberApp
}
