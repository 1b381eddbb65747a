package request

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.ItemRequest) error
	FindByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
	FindAllByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error)
	FindAllExcludingRequestor(ctx context.Context, requestorID int64, page repository.Page) ([]domain.ItemRequest, error)
}

// ItemLookup resolves the items listed in answer to a request.
type ItemLookup interface {
	FindAllByRequestID(ctx context.Context, requestID int64) ([]domain.Item, error)
	FindAllByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
