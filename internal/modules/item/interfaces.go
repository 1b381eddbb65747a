package item

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type ItemRepository interface {
	Create(ctx context.Context, it *domain.Item) error
	Save(ctx context.Context, it *domain.Item) error
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	FindAllByOwner(ctx context.Context, ownerID int64, page repository.Page) ([]domain.Item, error)
	Search(ctx context.Context, text string, page repository.Page) ([]domain.Item, error)
}

// BookingReader gives the catalog its read-only window into booking history:
// the last/next approved booking per item for the owner's extended view, and
// the finished-booking check gating comments.
type BookingReader interface {
	FindLastForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]domain.Booking, error)
	FindNextForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]domain.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	FindAllByItemID(ctx context.Context, itemID int64) ([]domain.Comment, error)
	FindAllByItemIDs(ctx context.Context, itemIDs []int64) ([]domain.Comment, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type RequestLookup interface {
	FindByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
}
