package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

func (s *Store) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUserUnique(user); err != nil {
		return err
	}
	s.insertUser(user)
	return nil
}

func (s *Store) checkUserUnique(user domain.User) error {
	if _, ok := s.users[user.UserID]; ok {
		return fmt.Errorf("%w: user %s already exists", apperrors.ErrDuplicate, user.UserID)
	}
	if _, ok := s.emails[user.Email]; ok {
		return fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, user.Email)
	}
	return nil
}

func (s *Store) insertUser(user domain.User) {
	s.users[user.UserID] = user
	s.emails[user.Email] = user.UserID
}

func (s *Store) UpdateUserProfile(_ context.Context, userID string, update domain.ProfileUpdate, updatedBy string, now time.Time) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Mobile != nil {
		user.Mobile = *update.Mobile
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.ProfilePic != nil {
		user.ProfilePic = *update.ProfilePic
	}
	user.LastUpdatedAt = now
	user.LastUpdatedBy = updatedBy
	s.users[userID] = user
	return &user, nil
}
