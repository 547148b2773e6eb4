package dailyupdate

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/core/storage"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the daily-updates feature.
func NewFeature(store *docstore.Store, storageClient storage.Client, bucket string, roster Roster, logger *zap.Logger) *Feature {
	svc := NewService(store, storageClient, bucket, roster, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service exposes the daily-update service for the CLI export command.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "dailyupdate"
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
