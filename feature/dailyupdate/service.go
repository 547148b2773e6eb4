package dailyupdate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/core/storage"
	"github.com/MohamedAbuthar/gas/feature/dailyupdate/models"
)

// Collection is the document collection holding daily-update batches.
const Collection = "dailyUpdates"

// archivePrefix is where exported workbooks land in the storage bucket.
const archivePrefix = "exports"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Roster supplies the active delivery-man roster daily updates are keyed
// against. feature/member implements it.
type Roster interface {
	ListActive(ctx context.Context) ([]RosterMember, error)
}

// RosterMember is one roster row as daily updates see it.
type RosterMember struct {
	ID   string
	Name string
}

// Service handles storing, exporting, and importing daily-update batches.
type Service struct {
	store   *docstore.Store
	storage storage.Client
	bucket  string
	roster  Roster
	logger  *zap.Logger
}

// NewService creates a new daily-update service. storage may be nil, in
// which case exports are served but not archived.
func NewService(store *docstore.Store, storageClient storage.Client, bucket string, roster Roster, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		storage: storageClient,
		bucket:  bucket,
		roster:  roster,
		logger:  logger,
	}
}

// rosterMembers loads the active roster as engine members.
func (s *Service) rosterMembers(ctx context.Context) ([]Member, error) {
	rows, err := s.roster.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load member roster: %w", err)
	}
	members := make([]Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, Member{ID: r.ID, Name: r.Name})
	}
	return members, nil
}

// NewEngineForDate builds an engine over the current active roster.
func (s *Service) NewEngineForDate(ctx context.Context) (*Engine, error) {
	members, err := s.rosterMembers(ctx)
	if err != nil {
		return nil, err
	}
	return NewEngine(members), nil
}

// pruneNil drops nil entries from a batch. Decoded request bodies can carry
// explicit JSON nulls, which would otherwise blow up on recompute.
func pruneNil(entries map[string]*models.LedgerEntry) {
	for id, e := range entries {
		if e == nil {
			delete(entries, id)
		}
	}
}

// SaveBatch persists a batch of entries as one document and returns its id.
// Every entry is recomputed before serialization so stored derived figures
// always match stored inputs.
func (s *Service) SaveBatch(ctx context.Context, author, date string, entries map[string]*models.LedgerEntry) (string, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	pruneNil(entries)
	for _, e := range entries {
		e.Recompute()
	}

	batch := models.Batch{
		Title:  batchTitle(author, date),
		Author: author,
		Date:   date,
		Status: models.StatusCompleted,
	}
	if err := batch.SetEntries(entries); err != nil {
		return "", err
	}

	id, err := s.store.Create(ctx, Collection, batch)
	if err != nil {
		return "", err
	}
	s.logger.Info("Saved daily-update batch",
		zap.String("id", id),
		zap.String("date", date),
		zap.Int("entries", len(entries)))
	return id, nil
}

func batchTitle(author, date string) string {
	return fmt.Sprintf("Daily Update - %s - %s", author, date)
}

// Get loads one batch by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Batch, error) {
	var batch models.Batch
	doc, err := s.store.Get(ctx, Collection, id, &batch)
	if err != nil {
		return nil, err
	}
	batch.ID = doc.ID
	return &batch, nil
}

// Update replaces the entries of an existing batch, keeping its authorship.
func (s *Service) Update(ctx context.Context, id string, entries map[string]*models.LedgerEntry) error {
	batch, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	pruneNil(entries)
	for _, e := range entries {
		e.Recompute()
	}
	if err := batch.SetEntries(entries); err != nil {
		return err
	}
	batch.ID = ""
	return s.store.Update(ctx, Collection, id, *batch)
}

// Delete removes a batch.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, Collection, id)
}

// List returns all batches, newest date first. Descriptions are included
// as stored; callers wanting entries decode per batch.
func (s *Service) List(ctx context.Context) ([]models.Batch, error) {
	docs, err := s.store.List(ctx, Collection)
	if err != nil {
		return nil, err
	}

	batches := make([]models.Batch, 0, len(docs))
	for _, doc := range docs {
		var batch models.Batch
		if err := json.Unmarshal(doc.Data, &batch); err != nil {
			s.logger.Warn("Skipping malformed daily-update document", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		batch.ID = doc.ID
		batches = append(batches, batch)
	}

	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].Date > batches[j].Date
	})
	return batches, nil
}

// Export renders a stored batch as an xlsx workbook and returns the file
// bytes plus the canonical filename. The workbook is also archived to the
// storage bucket; archive failures are logged, not fatal, since the caller
// still gets the file.
func (s *Service) Export(ctx context.Context, id string) ([]byte, string, error) {
	batch, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	entries, err := batch.Entries()
	if err != nil {
		return nil, "", err
	}

	ordered := make([]*models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].MemberName != ordered[j].MemberName {
			return ordered[i].MemberName < ordered[j].MemberName
		}
		return ordered[i].MemberID < ordered[j].MemberID
	})

	data, err := ExportBatch(ordered)
	if err != nil {
		return nil, "", err
	}

	filename := Filename(batch.Date)
	s.archive(ctx, filename, data)
	return data, filename, nil
}

func (s *Service) archive(ctx context.Context, filename string, data []byte) {
	if s.storage == nil {
		return
	}
	object := path.Join(archivePrefix, filename)
	_, err := s.storage.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: xlsxContentType,
	})
	if err != nil {
		s.logger.Warn("Failed to archive export", zap.String("object", object), zap.Error(err))
		return
	}
	s.logger.Info("Archived export", zap.String("object", object))
}

// Import parses an uploaded workbook, reconciles its rows against the
// active roster, and persists the result as a new batch.
func (s *Service) Import(ctx context.Context, r io.Reader, author string) (string, map[string]*models.LedgerEntry, error) {
	imported, err := ImportBatch(r)
	if err != nil {
		return "", nil, err
	}

	members, err := s.rosterMembers(ctx)
	if err != nil {
		return "", nil, err
	}
	entries := ReconcileWithRoster(imported, members)

	date := ""
	for _, e := range entries {
		if e.Date != "" {
			date = e.Date
			break
		}
	}

	id, err := s.SaveBatch(ctx, author, date, entries)
	if err != nil {
		return "", nil, err
	}
	return id, entries, nil
}
