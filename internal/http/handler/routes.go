package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"humanizerapi/internal/http/middleware"
	"humanizerapi/internal/service"
)

// Services bundles everything the routes need.
type Services struct {
	Auth     service.AuthService
	Humanize service.HumanizeService
	Projects service.ProjectService
	Files    service.FileService
	Billing  service.BillingService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin: parse, delegate to a service, map errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, jwtSecret []byte, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/signup", Signup(svcs.Auth))
	app.Post("/auth/login", Login(svcs.Auth))

	app.Get("/plans", ListPlans())

	// Everything below requires a session token.
	auth := middleware.RequireAuth(jwtSecret)

	app.Get("/me", auth, Me(svcs.Auth))

	app.Post("/humanize", auth, Humanize(svcs.Humanize))

	app.Get("/projects", auth, ListProjects(svcs.Projects))
	app.Post("/projects", auth, SaveProject(svcs.Projects))
	app.Delete("/projects/:id", auth, DeleteProject(svcs.Projects))

	app.Get("/files", auth, ListFiles(svcs.Files))
	app.Post("/files", auth, UploadFile(svcs.Files))
	app.Get("/files/:id/url", auth, FileDownloadURL(svcs.Files))
	app.Delete("/files/:id", auth, DeleteFile(svcs.Files))

	app.Post("/billing/purchase", auth, PurchasePlan(svcs.Billing))
}
