// internal/application/auth_service_test.go
package application

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetmeds/storefront/internal/adapters/memory"
	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRemote := ports.NewMockRemoteStorePort(ctrl)
	svc := NewAuthService(mockRemote, memory.NewStore(), zap.NewNop())

	tests := []struct {
		name      string
		email     string
		password  string
		mockSetup func()
		wantErr   bool
		errMsg    string
	}{
		{
			name:     "successful registration",
			email:    "testuser@example.com",
			password: "securepass",
			mockSetup: func() {
				mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "testuser@example.com").Return(nil, nil)
				mockRemote.EXPECT().CreateUser(gomock.Any(), "testuser@example.com", gomock.Any()).
					Return(&domain.User{UID: "u1", Email: "testuser@example.com"}, nil)
			},
			wantErr: false,
		},
		{
			name:      "missing email",
			email:     "",
			password:  "securepass",
			mockSetup: func() {},
			wantErr:   true,
			errMsg:    "email and password are required",
		},
		{
			name:     "duplicate email",
			email:    "taken@example.com",
			password: "securepass",
			mockSetup: func() {
				mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "taken@example.com").
					Return(&domain.User{UID: "u2", Email: "taken@example.com"}, nil)
			},
			wantErr: true,
			errMsg:  "email already registered",
		},
		{
			name:     "remote error",
			email:    "testuser@example.com",
			password: "securepass",
			mockSetup: func() {
				mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "testuser@example.com").Return(nil, nil)
				mockRemote.EXPECT().CreateUser(gomock.Any(), "testuser@example.com", gomock.Any()).
					Return(nil, errors.New("write denied"))
			},
			wantErr: true,
			errMsg:  "write denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := svc.Register(context.Background(), tt.email, tt.password)
			if tt.wantErr {
				if err == nil || err.Error() != tt.errMsg {
					t.Errorf("Register() error = %v, want %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() unexpected error: %v", err)
			}
			if user == nil || user.Email != tt.email {
				t.Errorf("Register() user = %+v, want email %q", user, tt.email)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("securepass"), bcrypt.DefaultCost)
	stored := &domain.User{UID: "u1", Email: "testuser@example.com", PasswordHash: string(hashed)}

	mockRemote := ports.NewMockRemoteStorePort(ctrl)
	svc := NewAuthService(mockRemote, memory.NewStore(), zap.NewNop())

	tests := []struct {
		name      string
		email     string
		password  string
		mockSetup func()
		wantErr   bool
		errMsg    string
	}{
		{
			name:     "successful login",
			email:    "testuser@example.com",
			password: "securepass",
			mockSetup: func() {
				mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "testuser@example.com").Return(stored, nil)
			},
			wantErr: false,
		},
		{
			name:     "wrong password",
			email:    "testuser@example.com",
			password: "wrongpass",
			mockSetup: func() {
				mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "testuser@example.com").Return(stored, nil)
			},
			wantErr: true,
			errMsg:  "invalid credentials",
		},
		{
			name:     "unknown user",
			email:    "nobody@example.com",
			password: "securepass",
			mockSetup: func() {
				mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)
			},
			wantErr: true,
			errMsg:  "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr {
				if err == nil || err.Error() != tt.errMsg {
					t.Errorf("Login() error = %v, want %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error: %v", err)
			}
			if user == nil || user.UID != "u1" {
				t.Errorf("Login() user = %+v, want uid u1", user)
			}
		})
	}
}

func TestAuthService_SessionSurvivesRestart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("securepass"), bcrypt.DefaultCost)
	stored := &domain.User{UID: "u1", Email: "testuser@example.com", PasswordHash: string(hashed)}

	mockRemote := ports.NewMockRemoteStorePort(ctrl)
	mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "testuser@example.com").Return(stored, nil)

	session := memory.NewStore()
	first := NewAuthService(mockRemote, session, zap.NewNop())
	if _, err := first.Login(context.Background(), "testuser@example.com", "securepass"); err != nil {
		t.Fatal(err)
	}

	// a fresh service over the same session store restores the user
	second := NewAuthService(mockRemote, session, zap.NewNop())
	user, err := second.CurrentUser(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user == nil || user.UID != "u1" || user.Email != "testuser@example.com" {
		t.Fatalf("restored user = %+v, want u1", user)
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("securepass"), bcrypt.DefaultCost)
	stored := &domain.User{UID: "u1", Email: "testuser@example.com", PasswordHash: string(hashed)}

	mockRemote := ports.NewMockRemoteStorePort(ctrl)
	mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "testuser@example.com").Return(stored, nil)

	session := memory.NewStore()
	svc := NewAuthService(mockRemote, session, zap.NewNop())
	if _, err := svc.Login(context.Background(), "testuser@example.com", "securepass"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	user, err := svc.CurrentUser(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user != nil {
		t.Fatalf("user after logout = %+v, want nil", user)
	}
	if token, _ := session.LoadSession(context.Background()); token != "" {
		t.Fatal("session token not cleared on logout")
	}
}

func TestAuthService_SendPasswordReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRemote := ports.NewMockRemoteStorePort(ctrl)
	svc := NewAuthService(mockRemote, memory.NewStore(), zap.NewNop())

	mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "testuser@example.com").
		Return(&domain.User{UID: "u1", Email: "testuser@example.com"}, nil)
	mockRemote.EXPECT().SetResetToken(gomock.Any(), "u1", gomock.Any()).Return(nil)

	if err := svc.SendPasswordReset(context.Background(), "testuser@example.com"); err != nil {
		t.Fatal(err)
	}

	mockRemote.EXPECT().FindUserByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)
	err := svc.SendPasswordReset(context.Background(), "nobody@example.com")
	if err == nil || err.Error() != "no account found for that email" {
		t.Fatalf("error = %v, want no-account message", err)
	}
}

func TestAuthService_CurrentUserWithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewAuthService(ports.NewMockRemoteStorePort(ctrl), memory.NewStore(), zap.NewNop())
	user, err := svc.CurrentUser(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user != nil {
		t.Fatalf("user = %+v, want nil without a session", user)
	}
}
