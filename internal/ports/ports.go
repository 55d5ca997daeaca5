// internal/ports/ports.go
package ports

import (
	"context"

	"github.com/meetmeds/storefront/internal/domain"
)

// Store ports are implemented by the adapters in internal/adapters. The
// watch operations deliver the current snapshot immediately, then a fresh
// full snapshot after every write. The returned stop function tears the
// subscription down; nothing is delivered after it returns.

type CatalogCachePort interface {
	Medicines(ctx context.Context) ([]domain.Medicine, error)
	ReplaceMedicines(ctx context.Context, medicines []domain.Medicine) error
	WatchMedicines(ctx context.Context) (<-chan []domain.Medicine, func(), error)
}

type CartStorePort interface {
	Items(ctx context.Context) ([]domain.CartItem, error)
	Item(ctx context.Context, medicineID string) (*domain.CartItem, error)
	Put(ctx context.Context, item domain.CartItem) error
	Remove(ctx context.Context, medicineID string) error
	Clear(ctx context.Context) error
	WatchItems(ctx context.Context) (<-chan []domain.CartItem, func(), error)
}

type SessionStorePort interface {
	SaveSession(ctx context.Context, token string) error
	LoadSession(ctx context.Context) (string, error)
	ClearSession(ctx context.Context) error
}

// RemoteStorePort is the document store the storefront syncs against.
type RemoteStorePort interface {
	FetchMedicines(ctx context.Context) ([]domain.Medicine, error)
	CreateOrder(ctx context.Context, order domain.Order) (string, error)
	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindProfile(ctx context.Context, uid string) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
	CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SetResetToken(ctx context.Context, uid, token string) error
}

// Repository ports are implemented by internal/application and consumed by
// the view-state holders.

type MedicineRepositoryPort interface {
	Medicines(ctx context.Context) (<-chan domain.Resource[[]domain.Medicine], func())
}

type CartRepositoryPort interface {
	Items(ctx context.Context) (<-chan []domain.CartItem, func(), error)
	Add(ctx context.Context, medicine domain.Medicine, quantity int) error
	UpdateQuantity(ctx context.Context, medicineID string, newQuantity int) error
	Remove(ctx context.Context, medicineID string) error
	Clear(ctx context.Context) error
}

type OrderRepositoryPort interface {
	PlaceOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	Orders(ctx context.Context) ([]domain.Order, error)
}

type UserRepositoryPort interface {
	Profile(ctx context.Context, uid string) (domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
	UpdateProfile(ctx context.Context, profile domain.UserProfile) error
}

type AuthPort interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
}
