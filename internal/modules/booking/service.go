package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/pkg/clock"
	"shareit/internal/repository"
)

// Service owns the booking state machine and the rules gating each
// transition. It trusts the transport layer for syntactic validation but
// re-checks start < end defensively.
type Service struct {
	bookings       BookingRepository
	items          ItemLookup
	users          UserLookup
	clock          clock.Clock
	rejectOverlaps bool
	log            zerolog.Logger
}

func NewService(
	bookings BookingRepository,
	items ItemLookup,
	users UserLookup,
	clk clock.Clock,
	rejectOverlaps bool,
	log zerolog.Logger,
) *Service {
	return &Service{
		bookings:       bookings,
		items:          items,
		users:          users,
		clock:          clk,
		rejectOverlaps: rejectOverlaps,
		log:            log,
	}
}

// Create persists a new WAITING booking. The item must exist, belong to
// someone else, and be available; the booker must exist. Overlapping WAITING
// bookings for the same item are allowed unless overlap rejection is enabled:
// the owner arbitrates via approve/reject.
func (s *Service) Create(ctx context.Context, req CreateRequest, bookerID int64) (*domain.Booking, error) {
	if !req.Start.Before(req.End) {
		return nil, fmt.Errorf("booking start must be before end: %w", ErrValidation)
	}

	item, err := s.items.FindByIDExcludingOwner(ctx, req.ItemID, bookerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("item with id=%d and owner id other than %d not found: %w",
				req.ItemID, bookerID, ErrNotFound)
		}
		return nil, err
	}
	if item.Available == nil || !*item.Available {
		return nil, fmt.Errorf("item id=%d is not available: %w", item.ID, ErrValidation)
	}

	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user with id=%d not found: %w", bookerID, ErrNotFound)
		}
		return nil, err
	}

	if s.rejectOverlaps {
		overlaps, err := s.bookings.HasOverlapping(ctx, item.ID, req.Start, req.End)
		if err != nil {
			return nil, err
		}
		if overlaps {
			return nil, fmt.Errorf("item id=%d is already booked for this interval: %w", item.ID, ErrValidation)
		}
	}

	b := &domain.Booking{
		Start:    req.Start,
		End:      req.End,
		Status:   domain.BookingWaiting,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Item:     *item,
		Booker:   *booker,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Debug().Int64("booking_id", b.ID).Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).Msg("booking created")
	return b, nil
}

// SetApproval performs the single permitted WAITING -> APPROVED/REJECTED
// transition. Only the item's owner may act, and the status flip is a
// conditional update so a racing second approval loses cleanly instead of
// overwriting.
func (s *Service) SetApproval(ctx context.Context, bookingID, userID int64, approved bool) (*domain.Booking, error) {
	b, err := s.bookings.FindByIDForOwner(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("booking with id=%d and owner id=%d not found: %w",
				bookingID, userID, ErrNotFound)
		}
		return nil, err
	}
	if b.Status != domain.BookingWaiting {
		return nil, fmt.Errorf("booking already has been approved/rejected: %w", ErrValidation)
	}

	status := domain.BookingRejected
	if approved {
		status = domain.BookingApproved
	}
	updated, err := s.bookings.UpdateStatusIfWaiting(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race: someone else decided this booking between our read
		// and the update.
		return nil, fmt.Errorf("booking already has been approved/rejected: %w", ErrValidation)
	}

	b.Status = status
	s.log.Debug().Int64("booking_id", b.ID).Str("status", string(status)).Msg("booking decided")
	return b, nil
}

// FindByID returns a booking to its booker or the item's owner; anyone else
// gets NotFound via a single combined query.
func (s *Service) FindByID(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.FindByIDForUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("booking with id=%d and owner or booker id=%d not found: %w",
				bookingID, userID, ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

// FindByBooker lists the user's own bookings under a temporal state filter,
// newest start first.
func (s *Service) FindByBooker(ctx context.Context, bookerID int64, state domain.SearchState, from int64, size int) ([]domain.Booking, error) {
	if err := s.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}
	filter := state.Filter(s.clock.Now())
	return s.bookings.FindByBooker(ctx, bookerID, filter, repository.Page{From: from, Size: size})
}

// FindByOwner lists bookings of every item the user owns, same filtering and
// order as the booker view.
func (s *Service) FindByOwner(ctx context.Context, ownerID int64, state domain.SearchState, from int64, size int) ([]domain.Booking, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	filter := state.Filter(s.clock.Now())
	return s.bookings.FindByOwner(ctx, ownerID, filter, repository.Page{From: from, Size: size})
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
