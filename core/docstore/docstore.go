package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrPersistence marks any failure talking to the underlying store.
	ErrPersistence = errors.New("document store failure")
	// ErrNotFound is returned when no document exists for the given id.
	ErrNotFound = errors.New("document not found")
)

// Document is one stored record: an opaque JSON payload in a named collection.
type Document struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Collection string    `gorm:"index;size:64" json:"-"`
	Data       []byte    `gorm:"type:json" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Store provides CRUD access to document collections.
type Store struct {
	db *gorm.DB
}

// New creates a Store and ensures the documents table exists.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("%w: migrate documents table: %v", ErrPersistence, err)
	}
	return &Store{db: db}, nil
}

// NewFromDB wraps an existing connection without running migrations.
// Intended for tests that inject a mock connection.
func NewFromDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new document and returns its generated id.
func (s *Store) Create(ctx context.Context, collection string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode document: %v", ErrPersistence, err)
	}

	doc := Document{
		ID:         uuid.NewString(),
		Collection: collection,
		Data:       data,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", fmt.Errorf("%w: insert document: %v", ErrPersistence, err)
	}
	return doc.ID, nil
}

// Get loads one document and decodes its payload into out.
func (s *Store) Get(ctx context.Context, collection, id string, out any) (*Document, error) {
	var doc Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load document: %v", ErrPersistence, err)
	}

	if out != nil {
		if err := json.Unmarshal(doc.Data, out); err != nil {
			return nil, fmt.Errorf("%w: decode document %s: %v", ErrPersistence, id, err)
		}
	}
	return &doc, nil
}

// Update replaces the payload of an existing document.
func (s *Store) Update(ctx context.Context, collection, id string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrPersistence, err)
	}

	res := s.db.WithContext(ctx).
		Model(&Document{}).
		Where("collection = ? AND id = ?", collection, id).
		Update("data", data)
	if res.Error != nil {
		return fmt.Errorf("%w: update document: %v", ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&Document{})
	if res.Error != nil {
		return fmt.Errorf("%w: delete document: %v", ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every document in a collection, newest first.
func (s *Store) List(ctx context.Context, collection string) ([]Document, error) {
	var docs []Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list collection %s: %v", ErrPersistence, collection, err)
	}
	return docs, nil
}
