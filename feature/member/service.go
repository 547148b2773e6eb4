package member

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/feature/member/models"

	"go.uber.org/zap"
)

// Collection is the document collection holding member records.
const Collection = "members"

// Service handles member roster operations.
type Service struct {
	store  *docstore.Store
	logger *zap.Logger
}

// NewService creates a new member service.
func NewService(store *docstore.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create stores a new member and returns its id.
func (s *Service) Create(ctx context.Context, rec models.Record) (string, error) {
	if rec.Status == "" {
		rec.Status = models.StatusActive
	}
	rec.ID = ""
	return s.store.Create(ctx, Collection, rec)
}

// Get loads one member by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Record, error) {
	var rec models.Record
	doc, err := s.store.Get(ctx, Collection, id, &rec)
	if err != nil {
		return nil, err
	}
	rec.ID = doc.ID
	return &rec, nil
}

// Update replaces an existing member record.
func (s *Service) Update(ctx context.Context, id string, rec models.Record) error {
	rec.ID = ""
	return s.store.Update(ctx, Collection, id, rec)
}

// Delete removes a member from the roster.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, Collection, id)
}

// List returns all members, most recent join date first.
func (s *Service) List(ctx context.Context) ([]models.Record, error) {
	docs, err := s.store.List(ctx, Collection)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		var rec models.Record
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			s.logger.Warn("Skipping malformed member document", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		rec.ID = doc.ID
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].JoinDate > records[j].JoinDate
	})
	return records, nil
}

// ListActive returns the roster of active members used by daily updates.
func (s *Service) ListActive(ctx context.Context) ([]models.Record, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	active := all[:0]
	for _, rec := range all {
		if rec.IsActive() {
			active = append(active, rec)
		}
	}
	return active, nil
}
