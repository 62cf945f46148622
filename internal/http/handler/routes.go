package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scopeapi/internal/model"
	"scopeapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, subSvc service.SubmissionService) {
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

	app.Get("/health", HealthCheck())
	app.Get("/readyz", ReadinessCheck(db))
	app.Post("/submit", SubmitSurvey(subSvc))
	app.Get("/submissions", ListSubmissions(subSvc))
	app.Get("/submissions/:id", GetSubmission(subSvc))
}

// HealthCheck is a simple always-ok health probe.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	}
}

// ReadinessCheck reports dependency readiness (DB connectivity only).
func ReadinessCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
	}
}

// submitRequest is the wire shape of a survey submission.
type submitRequest struct {
	FormData  model.SurveyPayload `json:"formData"`
	UserEmail string              `json:"userEmail"`
	Timestamp string              `json:"timestamp"`
	FileURLs  []string            `json:"fileUrls"`
}

// SubmitSurvey accepts a survey payload, persists it, and triggers the
// notification deliveries. Delivery failures are reported inside a 200
// response body; only a persistence failure produces a 500, and that
// response still uses the submission outcome shape.
func SubmitSurvey(subSvc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req submitRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		rec := &model.SubmissionRecord{
			FormData:  req.FormData,
			UserEmail: strings.TrimSpace(req.UserEmail),
			Timestamp: req.Timestamp,
			FileURLs:  req.FileURLs,
		}

		res, err := subSvc.Submit(c.UserContext(), rec)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(model.SubmissionResult{
				Success: false,
				Error:   err.Error(),
			})
		}
		return c.JSON(res)
	}
}

// ListSubmissions returns paginated submission metadata with limit & offset.
func ListSubmissions(subSvc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := subSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetSubmission returns the full stored record for a submission ID.
func GetSubmission(subSvc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validSubmissionID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := subSvc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "submission not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rec)
	}
}

// validSubmissionID checks the "submission_<uuid>" identifier shape.
func validSubmissionID(id string) bool {
	const prefix = "submission_"
	if !strings.HasPrefix(id, prefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(id, prefix))
	return err == nil
}
