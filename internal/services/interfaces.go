package services

import (
	"context"
	"errors"

	"serverless-adapter/internal/models"
)

// ErrRecordNotFound is returned when no record matches the lookup
var ErrRecordNotFound = errors.New("record not found")

// ErrUnknownCollection is returned for collections the service does not hold
var ErrUnknownCollection = errors.New("unknown collection")

// RecordService defines the record operations used by the demo handlers
type RecordService interface {
	Create(ctx context.Context, collection string, req *RecordRequest) (*models.Record, error)
	Upsert(ctx context.Context, collection string, req *RecordRequest) (*models.Record, bool, error)
	Get(ctx context.Context, collection, id string) (*models.Record, error)
	List(ctx context.Context, collection string, page, pageSize int) (*RecordPage, error)
}

// RecordRequest is the body accepted by create and upsert
type RecordRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// RecordPage is one page of a collection listing
type RecordPage struct {
	Items    []*models.Record `json:"items"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
}
