// internal/application/user_service.go
package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

const defaultProfileName = "MeetMeds User"

type UserService struct {
	remote ports.RemoteStorePort
	auth   ports.AuthPort
	log    *zap.Logger
}

func NewUserService(remote ports.RemoteStorePort, auth ports.AuthPort, log *zap.Logger) *UserService {
	return &UserService{remote: remote, auth: auth, log: log}
}

// Profile fetches the profile document. An absent profile is not an error:
// a default one is synthesized from the current session's email, persisted,
// and returned.
func (s *UserService) Profile(ctx context.Context, uid string) (domain.UserProfile, error) {
	profile, err := s.remote.FindProfile(ctx, uid)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile != nil {
		return *profile, nil
	}

	email := ""
	if user, err := s.auth.CurrentUser(ctx); err == nil && user != nil {
		email = user.Email
	}
	created := domain.UserProfile{UID: uid, Email: email, Name: defaultProfileName}
	if err := s.remote.SaveProfile(ctx, created); err != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to create default profile: %w", err)
	}
	s.log.Info("default profile created", zap.String("uid", uid))
	return created, nil
}

// SaveProfile and UpdateProfile are both unconditional full overwrites,
// last write wins.
func (s *UserService) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	if err := s.remote.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, profile domain.UserProfile) error {
	if err := s.remote.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}
