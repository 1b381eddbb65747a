package item

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/pkg/clock"
	"shareit/internal/repository"
)

type Service struct {
	items    ItemRepository
	users    UserLookup
	bookings BookingReader
	comments CommentRepository
	requests RequestLookup
	clock    clock.Clock
	log      zerolog.Logger
}

func NewService(
	items ItemRepository,
	users UserLookup,
	bookings BookingReader,
	comments CommentRepository,
	requests RequestLookup,
	clk clock.Clock,
	log zerolog.Logger,
) *Service {
	return &Service{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		clock:    clk,
		log:      log,
	}
}

func (s *Service) Add(ctx context.Context, req CreateRequest, userID int64) (*domain.Item, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("item request with id=%d not found: %w", *req.RequestID, ErrNotFound)
			}
			return nil, err
		}
	}

	it := &domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     userID,
		RequestID:   req.RequestID,
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("item_id", it.ID).Int64("owner_id", userID).Msg("item added")
	return it, nil
}

func (s *Service) Patch(ctx context.Context, itemID int64, req PatchRequest, userID int64) (*domain.Item, error) {
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != userID {
		return nil, fmt.Errorf("user id=%d is not owner of item id=%d: %w", userID, itemID, ErrForbidden)
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = req.Available
	}
	if err := s.items.Save(ctx, it); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("item_id", it.ID).Msg("item patched")
	return it, nil
}

// GetByID returns the extended item view. Only the owner sees the booking
// neighborhood (last started / next upcoming approved booking).
func (s *Service) GetByID(ctx context.Context, itemID, userID int64) (*Extended, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindAllByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	extended := &Extended{Item: *it, Comments: commentsOrEmpty(comments)}
	if it.OwnerID != userID {
		return extended, nil
	}

	now := s.clock.Now()
	last, err := s.bookings.FindLastForItems(ctx, []int64{itemID}, now)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.FindNextForItems(ctx, []int64{itemID}, now)
	if err != nil {
		return nil, err
	}
	extended.LastBooking = toBookingShort(last, itemID)
	extended.NextBooking = toBookingShort(next, itemID)
	return extended, nil
}

// GetAll returns the owner's items ascending by id, each with comments and
// the booking neighborhood.
func (s *Service) GetAll(ctx context.Context, userID int64, from int64, size int) ([]Extended, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	items, err := s.items.FindAllByOwner(ctx, userID, repository.Page{From: from, Size: size})
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}

	comments, err := s.comments.FindAllByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]domain.Comment, len(itemIDs))
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := s.clock.Now()
	last, err := s.bookings.FindLastForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.FindNextForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}

	result := make([]Extended, 0, len(items))
	for _, it := range items {
		result = append(result, Extended{
			Item:        it,
			Comments:    commentsOrEmpty(commentsByItem[it.ID]),
			LastBooking: toBookingShort(last, it.ID),
			NextBooking: toBookingShort(next, it.ID),
		})
	}
	return result, nil
}

// Search finds available items by substring. Blank text short-circuits to an
// empty result without touching the store.
func (s *Service) Search(ctx context.Context, text string, from int64, size int) ([]domain.Item, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []domain.Item{}, nil
	}
	return s.items.Search(ctx, strings.ToLower(trimmed), repository.Page{From: from, Size: size})
}

// AddComment lets a user review an item, but only after a booking of theirs
// has actually ended.
func (s *Service) AddComment(ctx context.Context, req CommentRequest, itemID, userID int64) (*domain.Comment, error) {
	it, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	finished, err := s.bookings.HasFinishedBooking(ctx, it.ID, user.ID, now)
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, fmt.Errorf("user id=%d doesnt have finished booking of item id=%d: %w",
			userID, itemID, ErrValidation)
	}

	comment := &domain.Comment{
		Text:       req.Text,
		ItemID:     it.ID,
		AuthorID:   user.ID,
		AuthorName: user.Name,
		Created:    now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("comment_id", comment.ID).Int64("item_id", itemID).Msg("comment added")
	return comment, nil
}

func (s *Service) getItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("item with id=%d not found: %w", itemID, ErrNotFound)
		}
		return nil, err
	}
	return it, nil
}

func (s *Service) requireUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user with id=%d not found: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func toBookingShort(bookings map[int64]domain.Booking, itemID int64) *BookingShort {
	b, ok := bookings[itemID]
	if !ok {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID}
}

func commentsOrEmpty(comments []domain.Comment) []domain.Comment {
	if comments == nil {
		return []domain.Comment{}
	}
	return comments
}
