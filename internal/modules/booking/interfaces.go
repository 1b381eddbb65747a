package booking

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

// BookingRepository is the persistence surface the engine needs: creation,
// the authorization-scoped single-row reads, the conditional status update
// and the two role-filtered listing queries.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.Booking, error)
	FindByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error)
	UpdateStatusIfWaiting(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
	FindByBooker(ctx context.Context, bookerID int64, f domain.SearchFilter, page repository.Page) ([]domain.Booking, error)
	FindByOwner(ctx context.Context, ownerID int64, f domain.SearchFilter, page repository.Page) ([]domain.Booking, error)
	HasOverlapping(ctx context.Context, itemID int64, start, end time.Time) (bool, error)
}

// ItemLookup resolves items from the catalog.
type ItemLookup interface {
	FindByIDExcludingOwner(ctx context.Context, id, ownerID int64) (*domain.Item, error)
}

// UserLookup resolves users from the directory.
type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
