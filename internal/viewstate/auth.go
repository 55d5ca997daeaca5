// internal/viewstate/auth.go
package viewstate

import (
	"context"
	"sync"

	"github.com/meetmeds/storefront/internal/ports"
)

type AuthState struct {
	Phase  Phase
	UserID string
	Error  string

	// password reset gets its own slot so a reset toast cannot trigger
	// the post-login navigation
	ResetPhase Phase
	ResetError string

	Checked  bool
	LoggedIn bool
}

// Auth is the login/register screen holder plus the startup session probe
// that decides whether the app opens on the catalog or the login form.
type Auth struct {
	auth ports.AuthPort

	mu    sync.Mutex
	state AuthState

	changes chan struct{}
}

func NewAuth(auth ports.AuthPort) *Auth {
	return &Auth{auth: auth, changes: make(chan struct{}, 1)}
}

// CheckSession probes for a persisted session. Checked flips once the
// probe finished, logged in or not.
func (a *Auth) CheckSession(ctx context.Context) {
	user, err := a.auth.CurrentUser(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Checked = true
	a.state.LoggedIn = err == nil && user != nil
	if a.state.LoggedIn {
		a.state.UserID = user.UID
	}
	notify(a.changes)
}

func (a *Auth) Login(ctx context.Context, email, password string) {
	a.setPhase(PhaseLoading, "")

	user, err := a.auth.Login(ctx, email, password)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state.Phase = PhaseError
		a.state.Error = err.Error()
	} else {
		a.state.Phase = PhaseSuccess
		a.state.UserID = user.UID
		a.state.LoggedIn = true
	}
	notify(a.changes)
}

func (a *Auth) Register(ctx context.Context, email, password string) {
	a.setPhase(PhaseLoading, "")

	user, err := a.auth.Register(ctx, email, password)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state.Phase = PhaseError
		a.state.Error = err.Error()
	} else {
		a.state.Phase = PhaseSuccess
		a.state.UserID = user.UID
		a.state.LoggedIn = true
	}
	notify(a.changes)
}

func (a *Auth) ResetPassword(ctx context.Context, email string) {
	a.mu.Lock()
	a.state.ResetPhase = PhaseLoading
	a.state.ResetError = ""
	notify(a.changes)
	a.mu.Unlock()

	err := a.auth.SendPasswordReset(ctx, email)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state.ResetPhase = PhaseError
		a.state.ResetError = err.Error()
	} else {
		a.state.ResetPhase = PhaseSuccess
	}
	notify(a.changes)
}

// ClearResetState resets the reset-password slot after the toast is shown.
func (a *Auth) ClearResetState() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.ResetPhase = PhaseIdle
	a.state.ResetError = ""
	notify(a.changes)
}

func (a *Auth) setPhase(p Phase, errMsg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Phase = p
	a.state.Error = errMsg
	notify(a.changes)
}

func (a *Auth) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Auth) Changes() <-chan struct{} { return a.changes }
