// internal/application/auth_service.go
package application

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
	"github.com/meetmeds/storefront/pkg/auth"
)

// AuthService is the authentication collaborator: it owns the credential
// records, issues a signed session token on login, and keeps the session
// in the local store so a restart does not log the user out.
type AuthService struct {
	remote  ports.RemoteStorePort
	session ports.SessionStorePort
	log     *zap.Logger

	mu      sync.Mutex
	current *domain.User
}

func NewAuthService(remote ports.RemoteStorePort, session ports.SessionStorePort, log *zap.Logger) *AuthService {
	return &AuthService{remote: remote, session: session, log: log}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	existing, err := s.remote.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}
	user, err := s.remote.CreateUser(ctx, email, string(hashed))
	if err != nil {
		return nil, err
	}
	s.openSession(ctx, user)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.remote.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	s.openSession(ctx, user)
	return user, nil
}

// CurrentUser returns the live session, falling back to the persisted
// token. A missing or expired session is not an error, just a nil user.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	if s.current != nil {
		u := *s.current
		s.mu.Unlock()
		return &u, nil
	}
	s.mu.Unlock()

	token, err := s.session.LoadSession(ctx)
	if err != nil {
		s.log.Warn("session load failed", zap.Error(err))
		return nil, nil
	}
	if token == "" {
		return nil, nil
	}
	claims, err := auth.ValidateToken(token)
	if err != nil {
		// stale or tampered token, drop it
		if clearErr := s.session.ClearSession(ctx); clearErr != nil {
			s.log.Warn("session clear failed", zap.Error(clearErr))
		}
		return nil, nil
	}

	user := &domain.User{UID: claims.UID, Email: claims.Email}
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	u := *user
	return &u, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return s.session.ClearSession(ctx)
}

// SendPasswordReset stamps a fresh reset token on the credential record.
// Delivering the token to the user is outside this client; it is logged so
// a developer can complete the flow by hand.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) error {
	user, err := s.remote.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("no account found for that email")
	}
	token := uuid.NewString()
	if err := s.remote.SetResetToken(ctx, user.UID, token); err != nil {
		return err
	}
	s.log.Info("password reset token issued", zap.String("email", email), zap.String("token", token))
	return nil
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) {
	token, err := auth.GenerateToken(user.UID, user.Email)
	if err != nil {
		s.log.Warn("token generation failed", zap.Error(err))
	} else if err := s.session.SaveSession(ctx, token); err != nil {
		// the login itself succeeded, the session just won't survive restart
		s.log.Warn("session persist failed", zap.Error(err))
	}
	s.mu.Lock()
	s.current = &domain.User{UID: user.UID, Email: user.Email}
	s.mu.Unlock()
}
