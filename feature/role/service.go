package role

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/feature/role/models"

	"go.uber.org/zap"
)

// Collection is the document collection holding role records.
const Collection = "roles"

// Service handles role management operations.
type Service struct {
	store  *docstore.Store
	logger *zap.Logger
}

// NewService creates a new role service.
func NewService(store *docstore.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create stores a new role and returns its id.
func (s *Service) Create(ctx context.Context, rec models.Record) (string, error) {
	if rec.Permissions == nil {
		rec.Permissions = []string{}
	}
	rec.ID = ""
	return s.store.Create(ctx, Collection, rec)
}

// Get loads one role by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Record, error) {
	var rec models.Record
	doc, err := s.store.Get(ctx, Collection, id, &rec)
	if err != nil {
		return nil, err
	}
	rec.ID = doc.ID
	return &rec, nil
}

// Update replaces an existing role record.
func (s *Service) Update(ctx context.Context, id string, rec models.Record) error {
	rec.ID = ""
	return s.store.Update(ctx, Collection, id, rec)
}

// Delete removes a role.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, Collection, id)
}

// List returns all roles sorted by name.
func (s *Service) List(ctx context.Context) ([]models.Record, error) {
	docs, err := s.store.List(ctx, Collection)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		var rec models.Record
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			s.logger.Warn("Skipping malformed role document", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		rec.ID = doc.ID
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
	return records, nil
}
