// Package webapi assembles the Fiber application: middleware, the public
// health and metrics endpoints, and the per-area route packages.
package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/minibank/minibank/pkg/config"
	"github.com/minibank/minibank/pkg/metrics"
	accountsvc "github.com/minibank/minibank/pkg/service/account"
	authsvc "github.com/minibank/minibank/pkg/service/auth"
	accountweb "github.com/minibank/minibank/webapi/account"
	authweb "github.com/minibank/minibank/webapi/auth"
	"github.com/minibank/minibank/webapi/common"
)

// SetupApp initializes Fiber with the application's middleware and routes.
func SetupApp(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
	collector *metrics.Collector,
	cfg *config.AppConfig,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, "rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		collector.RecordRequest(c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return err
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))

	authweb.Routes(app, authSvc)
	accountweb.Routes(app, accountSvc, authSvc, cfg)

	return app
}
