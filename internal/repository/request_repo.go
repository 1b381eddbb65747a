package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Description string    `gorm:"column:description"`
	RequestorID int64     `gorm:"column:requestor_id;index"`
	Created     time.Time `gorm:"column:created"`
}

func (requestModel) TableName() string { return "requests" }

func toDomainRequest(m requestModel) *domain.ItemRequest {
	return &domain.ItemRequest{
		ID:          m.ID,
		Description: m.Description,
		RequestorID: m.RequestorID,
		Created:     m.Created,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.ItemRequest) error {
	m := requestModel{
		Description: req.Description,
		RequestorID: req.RequestorID,
		Created:     req.Created,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create item request: %w", err)
	}
	req.ID = m.ID
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	var m requestModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainRequest(m), nil
}

func (r *RequestRepository) FindAllByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	var models []requestModel
	err := r.db.WithContext(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find requests by requestor: %w", err)
	}
	return toDomainRequests(models), nil
}

func (r *RequestRepository) FindAllExcludingRequestor(ctx context.Context, requestorID int64, page Page) ([]domain.ItemRequest, error) {
	q := r.db.WithContext(ctx).
		Where("requestor_id <> ?", requestorID).
		Order("created DESC")
	var models []requestModel
	if err := page.apply(q).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find requests by other users: %w", err)
	}
	return toDomainRequests(models), nil
}

func toDomainRequests(models []requestModel) []domain.ItemRequest {
	requests := make([]domain.ItemRequest, 0, len(models))
	for _, m := range models {
		requests = append(requests, *toDomainRequest(m))
	}
	return requests
}
