package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, actor string) (*domain.User, error) {
	update.Name = trimmed(update.Name)
	update.Mobile = trimmed(update.Mobile)
	update.Address = trimmed(update.Address)
	update.ProfilePic = trimmed(update.ProfilePic)

	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: no profile fields to update", apperrors.ErrValidation)
	}
	if update.Name != nil && *update.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
	}

	user, err := s.userRepo.UpdateUserProfile(ctx, userID, update, actorOrSystem(actor), s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update user profile", slog.String("user_id", userID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "User profile updated", slog.String("user_id", userID))
	return user, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
