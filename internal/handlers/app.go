package handlers

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/rentdb/internal/middleware"
)

// bodyLimitSlack covers the multipart framing around an upload
const bodyLimitSlack = 1 << 20

// AppOptions toggles process-wide features. Metrics register global collectors, so only
// the server enables them.
type AppOptions struct {
	Metrics bool
	Swagger bool
}

// NewApp builds the Fiber app with middleware, the API under /api, and static uploads
func NewApp(d Deps, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(d.Log),
		BodyLimit:             d.Cfg.UploadMaxBytes + bodyLimitSlack,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(d.Log))
	app.Use(compress.New())

	if opts.Metrics {
		prometheus := fiberprometheus.New("rentdb")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	if opts.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	app.Static(UploadsPrefix, d.Cfg.UploadDir)

	Register(app.Group("/api"), d)

	app.Use(NotFound)

	return app
}
