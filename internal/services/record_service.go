package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"serverless-adapter/internal/models"
)

// DefaultPageSize is used when a listing asks for no page size
const DefaultPageSize = 20

// recordService implements RecordService in memory. It lives as long as the
// execution environment, so records survive warm invocations only.
type recordService struct {
	mu        sync.RWMutex
	records   map[string]map[string]*models.Record
	validator *validator.Validate
}

// NewRecordService creates a new in-memory record service
func NewRecordService() RecordService {
	return &recordService{
		records: map[string]map[string]*models.Record{
			models.CollectionUsers:         {},
			models.CollectionCollaborators: {},
		},
		validator: validator.New(),
	}
}

// Create adds a new record to collection
func (s *recordService) Create(ctx context.Context, collection string, req *RecordRequest) (*models.Record, error) {
	if err := s.validate(collection, req); err != nil {
		return nil, err
	}

	record := models.NewRecord(collection, req.Name)

	s.mu.Lock()
	s.records[collection][record.ID] = record
	s.mu.Unlock()

	return record, nil
}

// Upsert renames the record with the same name or creates it. The boolean is
// true when a record was created.
func (s *recordService) Upsert(ctx context.Context, collection string, req *RecordRequest) (*models.Record, bool, error) {
	if err := s.validate(collection, req); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records[collection] {
		if record.Name == req.Name {
			record.Rename(req.Name)
			return record, false, nil
		}
	}

	record := models.NewRecord(collection, req.Name)
	s.records[collection][record.ID] = record
	return record, true, nil
}

// Get retrieves a record by ID
func (s *recordService) Get(ctx context.Context, collection, id string) (*models.Record, error) {
	if !models.IsValidCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid record ID format: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return record, nil
}

// List returns one page of collection ordered by creation time
func (s *recordService) List(ctx context.Context, collection string, page, pageSize int) (*RecordPage, error) {
	if !models.IsValidCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	s.mu.RLock()
	all := make([]*models.Record, 0, len(s.records[collection]))
	for _, record := range s.records[collection] {
		all = append(all, record)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	result := &RecordPage{
		Items:    []*models.Record{},
		Page:     page,
		PageSize: pageSize,
		Total:    len(all),
	}

	start := (page - 1) * pageSize
	if start >= len(all) {
		return result, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	result.Items = all[start:end]

	return result, nil
}

func (s *recordService) validate(collection string, req *RecordRequest) error {
	if !models.IsValidCollection(collection) {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if req == nil {
		return fmt.Errorf("record request cannot be nil")
	}
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
