package handler

import (
	"github.com/gofiber/fiber/v2"

	"emailtriage/internal/service"
)

// Deps are the collaborators the HTTP layer needs.
// DB and History are nil when the audit log is disabled.
type Deps struct {
	DB      Pinger
	Triage  service.TriageService
	History service.HistoryService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", Health())
	app.Get("/ready", Ready(deps.DB))

	app.Post("/classify", Classify(deps.Triage))

	app.Get("/classifications", ListClassifications(deps.History))
	app.Get("/classifications/stats", ClassificationStats(deps.History))
}
