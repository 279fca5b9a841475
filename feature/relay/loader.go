package relay

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates a new relay feature serving relays.
func NewFeature(relays []*Relay, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(relays, logger), enabled: len(relays) > 0}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "relay"
}

// IsEnabled reports whether any platform is relayed.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
