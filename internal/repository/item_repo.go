package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

type itemModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
	Available   bool   `gorm:"column:available"`
	OwnerID     int64  `gorm:"column:owner_id;index"`
	RequestID   *int64 `gorm:"column:request_id;index"`
}

func (itemModel) TableName() string { return "items" }

func toDomainItem(m itemModel) *domain.Item {
	available := m.Available
	return &domain.Item{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Available:   &available,
		OwnerID:     m.OwnerID,
		RequestID:   m.RequestID,
	}
}

func toItemModel(it *domain.Item) itemModel {
	var available bool
	if it.Available != nil {
		available = *it.Available
	}
	return itemModel{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
	}
}

func (r *ItemRepository) Create(ctx context.Context, it *domain.Item) error {
	m := toItemModel(it)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	it.ID = m.ID
	return nil
}

func (r *ItemRepository) Save(ctx context.Context, it *domain.Item) error {
	m := toItemModel(it)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return fmt.Errorf("save item: %w", err)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	var m itemModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainItem(m), nil
}

// FindByIDExcludingOwner resolves an item only when it belongs to someone other
// than the given user. A miss means "no item" and "own item" alike, so callers
// cannot tell the two apart.
func (r *ItemRepository) FindByIDExcludingOwner(ctx context.Context, id, ownerID int64) (*domain.Item, error) {
	var m itemModel
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id <> ?", id, ownerID).First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainItem(m), nil
}

func (r *ItemRepository) FindAllByOwner(ctx context.Context, ownerID int64, page Page) ([]domain.Item, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC")
	var models []itemModel
	if err := page.apply(q).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find items by owner: %w", err)
	}
	return toDomainItems(models), nil
}

// Search matches available items by case-insensitive substring on name or
// description.
func (r *ItemRepository) Search(ctx context.Context, text string, page Page) ([]domain.Item, error) {
	pattern := "%" + text + "%"
	q := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("id ASC")
	var models []itemModel
	if err := page.apply(q).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return toDomainItems(models), nil
}

func (r *ItemRepository) FindAllByRequestID(ctx context.Context, requestID int64) ([]domain.Item, error) {
	var models []itemModel
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find items by request: %w", err)
	}
	return toDomainItems(models), nil
}

func (r *ItemRepository) FindAllByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var models []itemModel
	err := r.db.WithContext(ctx).Where("request_id IN ?", requestIDs).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find items by requests: %w", err)
	}
	return toDomainItems(models), nil
}

func toDomainItems(models []itemModel) []domain.Item {
	items := make([]domain.Item, 0, len(models))
	for _, m := range models {
		items = append(items, *toDomainItem(m))
	}
	return items
}
