package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type Service struct {
	users UserRepository
	log   zerolog.Logger
}

func NewService(users UserRepository, log zerolog.Logger) *Service {
	return &Service{users: users, log: log}
}

func (s *Service) Add(ctx context.Context, req CreateRequest) (*domain.User, error) {
	u := &domain.User{Name: req.Name, Email: req.Email}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user with email='%s' already exists: %w", req.Email, ErrConflict)
		}
		return nil, err
	}
	s.log.Debug().Int64("user_id", u.ID).Msg("user added")
	return u, nil
}

// Patch updates name and/or email. Re-submitting the user's own email is
// fine; only an address held by somebody else conflicts.
func (s *Service) Patch(ctx context.Context, id int64, req PatchRequest) (*domain.User, error) {
	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		_, err := s.users.FindByEmailExcludingID(ctx, *req.Email, id)
		if err == nil {
			return nil, fmt.Errorf("user with email='%s' already exists: %w", *req.Email, ErrConflict)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}

	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user with email='%s' already exists: %w", u.Email, ErrConflict)
		}
		return nil, err
	}
	s.log.Debug().Int64("user_id", u.ID).Msg("user patched")
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUser(ctx, id)
}

func (s *Service) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user with id=%d not found: %w", id, ErrNotFound)
		}
		return err
	}
	s.log.Debug().Int64("user_id", id).Msg("user removed")
	return nil
}

func (s *Service) getUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user with id=%d not found: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}
