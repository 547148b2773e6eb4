package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/feature/attendance/models"

	"go.uber.org/zap"
)

// Collection is the document collection holding attendance records.
const Collection = "attendance"

// Service handles attendance operations.
type Service struct {
	store  *docstore.Store
	logger *zap.Logger
}

// NewService creates a new attendance service.
func NewService(store *docstore.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create stores a new attendance record, deriving total hours when the
// caller left them blank.
func (s *Service) Create(ctx context.Context, rec models.Record) (string, error) {
	if rec.Status == "" {
		rec.Status = models.StatusPresent
	}
	if !models.ValidStatus(rec.Status) {
		return "", fmt.Errorf("invalid attendance status %q", rec.Status)
	}
	if rec.TotalHours == "" {
		rec.TotalHours = models.TotalHoursBetween(rec.CheckInTime, rec.CheckOutTime)
	}
	rec.ID = ""
	return s.store.Create(ctx, Collection, rec)
}

// Get loads one attendance record by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Record, error) {
	var rec models.Record
	doc, err := s.store.Get(ctx, Collection, id, &rec)
	if err != nil {
		return nil, err
	}
	rec.ID = doc.ID
	return &rec, nil
}

// Update replaces an existing record, rederiving total hours when blank.
func (s *Service) Update(ctx context.Context, id string, rec models.Record) error {
	if !models.ValidStatus(rec.Status) {
		return fmt.Errorf("invalid attendance status %q", rec.Status)
	}
	if rec.TotalHours == "" {
		rec.TotalHours = models.TotalHoursBetween(rec.CheckInTime, rec.CheckOutTime)
	}
	rec.ID = ""
	return s.store.Update(ctx, Collection, id, rec)
}

// Delete removes an attendance record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, Collection, id)
}

// List returns attendance records, most recent date first. A non-empty date
// filters to that day only.
func (s *Service) List(ctx context.Context, date string) ([]models.Record, error) {
	docs, err := s.store.List(ctx, Collection)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		var rec models.Record
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			s.logger.Warn("Skipping malformed attendance document", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		rec.ID = doc.ID
		if date != "" && rec.Date != date {
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records, nil
}
