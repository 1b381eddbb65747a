package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/pkg/clock"
	"shareit/internal/repository"
)

type Service struct {
	requests RequestRepository
	items    ItemLookup
	users    UserLookup
	clock    clock.Clock
	log      zerolog.Logger
}

func NewService(
	requests RequestRepository,
	items ItemLookup,
	users UserLookup,
	clk clock.Clock,
	log zerolog.Logger,
) *Service {
	return &Service{requests: requests, items: items, users: users, clock: clk, log: log}
}

func (s *Service) Add(ctx context.Context, req CreateRequest, userID int64) (*domain.ItemRequest, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	r := &domain.ItemRequest{
		Description: req.Description,
		RequestorID: userID,
		Created:     s.clock.Now(),
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("request_id", r.ID).Int64("requestor_id", userID).Msg("item request added")
	return r, nil
}

func (s *Service) FindByID(ctx context.Context, id, userID int64) (*Extended, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("item request with id=%d not found: %w", id, ErrNotFound)
		}
		return nil, err
	}

	items, err := s.items.FindAllByRequestID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Extended{ItemRequest: *r, Items: itemsOrEmpty(items)}, nil
}

// FindByRequestor returns the user's own requests, newest first, each with
// its answering items.
func (s *Service) FindByRequestor(ctx context.Context, requestorID int64) ([]Extended, error) {
	if err := s.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindAllByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.extend(ctx, requests)
}

// FindByOtherUsers pages through everyone else's requests, newest first.
func (s *Service) FindByOtherUsers(ctx context.Context, userID int64, from int64, size int) ([]Extended, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindAllExcludingRequestor(ctx, userID, repository.Page{From: from, Size: size})
	if err != nil {
		return nil, err
	}
	return s.extend(ctx, requests)
}

func (s *Service) extend(ctx context.Context, requests []domain.ItemRequest) ([]Extended, error) {
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	items, err := s.items.FindAllByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]domain.Item, len(ids))
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		itemsByRequest[*it.RequestID] = append(itemsByRequest[*it.RequestID], it)
	}

	result := make([]Extended, 0, len(requests))
	for _, r := range requests {
		result = append(result, Extended{
			ItemRequest: r,
			Items:       itemsOrEmpty(itemsByRequest[r.ID]),
		})
	}
	return result, nil
}

func (s *Service) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user with id=%d not found: %w", userID, ErrNotFound)
		}
		return err
	}
	return nil
}

func itemsOrEmpty(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}
