package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentModel struct {
	ID       int64     `gorm:"column:id;primaryKey"`
	Text     string    `gorm:"column:text"`
	ItemID   int64     `gorm:"column:item_id;index"`
	AuthorID int64     `gorm:"column:author_id"`
	Created  time.Time `gorm:"column:created"`
}

func (commentModel) TableName() string { return "comments" }

type commentDetails struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

func toDomainComment(d commentDetails) domain.Comment {
	return domain.Comment{
		ID:         d.ID,
		Text:       d.Text,
		ItemID:     d.ItemID,
		AuthorID:   d.AuthorID,
		AuthorName: d.AuthorName,
		Created:    d.Created,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	m := commentModel{
		Text:     c.Text,
		ItemID:   c.ItemID,
		AuthorID: c.AuthorID,
		Created:  c.Created,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	c.ID = m.ID
	return nil
}

func (r *CommentRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("comments").
		Select(`comments.id, comments.text, comments.item_id, comments.author_id,
			users.name AS author_name, comments.created`).
		Joins("JOIN users ON users.id = comments.author_id")
}

func (r *CommentRepository) FindAllByItemID(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	var rows []commentDetails
	err := r.details(ctx).Where("comments.item_id = ?", itemID).Order("comments.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find comments by item: %w", err)
	}
	return toDomainComments(rows), nil
}

func (r *CommentRepository) FindAllByItemIDs(ctx context.Context, itemIDs []int64) ([]domain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var rows []commentDetails
	err := r.details(ctx).Where("comments.item_id IN ?", itemIDs).Order("comments.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find comments by items: %w", err)
	}
	return toDomainComments(rows), nil
}

func toDomainComments(rows []commentDetails) []domain.Comment {
	comments := make([]domain.Comment, 0, len(rows))
	for _, d := range rows {
		comments = append(comments, toDomainComment(d))
	}
	return comments
}
