package orchestrator

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	orch    *Orchestrator
	handler *Handler
}

// NewFeature creates a new state feature around orch.
func NewFeature(orch *Orchestrator) *Feature {
	return &Feature{orch: orch, handler: NewHandler(orch)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "state"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
