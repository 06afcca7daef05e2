package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/repo/postgres"
	"github.com/brightstay/brightstay-api/pkg/events"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

// UpsertOutcome reports which branch the login upsert took.
type UpsertOutcome string

const (
	OutcomeCreated       UpsertOutcome = "created"
	OutcomeStatusUpdated UpsertOutcome = "status_updated"
	OutcomeUnchanged     UpsertOutcome = "unchanged"
)

type UserService interface {
	Upsert(ctx context.Context, req *domain.UserUpsertReq) (*domain.User, UpsertOutcome, error)
	Update(ctx context.Context, email string, req *domain.UserUpdateReq) (bool, error)
	Get(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users postgres.UsersRepo
	bus   events.Publisher
}

func NewUserService(users postgres.UsersRepo, bus events.Publisher) UserService {
	return &userService{users: users, bus: bus}
}

// Upsert implements the login-time save:
//   - existing record posting status "Requested": only status (and
//     updated_at) change, everything else is left untouched
//   - existing record otherwise: the stored record is returned unchanged
//   - new email: a full record is inserted with its registration timestamp
func (s *userService) Upsert(ctx context.Context, req *domain.UserUpsertReq) (*domain.User, UpsertOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("user lookup failed: %w", err)
	}

	if existing != nil {
		if req.Status == domain.StatusRequested {
			if _, err := s.users.UpdateStatus(ctx, req.Email, req.Status); err != nil {
				return nil, "", fmt.Errorf("status update failed: %w", err)
			}
			existing.Status = req.Status
			return existing, OutcomeStatusUpdated, nil
		}
		return existing, OutcomeUnchanged, nil
	}

	u, err := s.users.Insert(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("user insert failed: %w", err)
	}
	return u, OutcomeCreated, nil
}

// Update sets role and status for an existing user (admin role promotion).
func (s *userService) Update(ctx context.Context, email string, req *domain.UserUpdateReq) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}

	ok, err := s.users.UpdateRoleStatus(ctx, domain.NormalizeEmail(email), req.Role, req.Status)
	if err != nil || !ok {
		return ok, err
	}

	if err := s.bus.Publish(ctx, events.UserRoleChanged, events.UserRoleChangedEvent{
		Email:     email,
		Role:      req.Role,
		Status:    req.Status,
		ChangedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish role change event", "error", err, "email", email)
	}
	return true, nil
}

func (s *userService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
