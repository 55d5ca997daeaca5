// internal/adapters/mongo/remote.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meetmeds/storefront/internal/domain"
)

const (
	medicinesCollection = "medicines"
	ordersCollection    = "orders"
	usersCollection     = "users"
	authUsersCollection = "auth_users"
)

// RemoteStore implements ports.RemoteStorePort over the hosted document
// store. Documents win by last write; no optimistic locking is surfaced.
// Credential records live apart from profiles so a profile overwrite can
// never touch a password hash.
type RemoteStore struct {
	medicines *mongo.Collection
	orders    *mongo.Collection
	users     *mongo.Collection
	authUsers *mongo.Collection
}

func NewRemoteStore(db *mongo.Database) *RemoteStore {
	return &RemoteStore{
		medicines: db.Collection(medicinesCollection),
		orders:    db.Collection(ordersCollection),
		users:     db.Collection(usersCollection),
		authUsers: db.Collection(authUsersCollection),
	}
}

func (s *RemoteStore) FetchMedicines(ctx context.Context) ([]domain.Medicine, error) {
	cur, err := s.medicines.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var medicines []domain.Medicine
	if err := cur.All(ctx, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

// SeedMedicines inserts the given catalog only when the collection is still
// empty. Development convenience for fresh databases.
func (s *RemoteStore) SeedMedicines(ctx context.Context, medicines []domain.Medicine) error {
	count, err := s.medicines.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 || len(medicines) == 0 {
		return nil
	}
	docs := make([]interface{}, len(medicines))
	for i, m := range medicines {
		docs[i] = m
	}
	_, err = s.medicines.InsertMany(ctx, docs)
	return err
}

// CreateOrder assigns a fresh document id and persists the full order.
func (s *RemoteStore) CreateOrder(ctx context.Context, order domain.Order) (string, error) {
	order.ID = primitive.NewObjectID().Hex()
	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		return "", err
	}
	return order.ID, nil
}

func (s *RemoteStore) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	cur, err := s.orders.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	var orders []domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *RemoteStore) FindProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	profile := &domain.UserProfile{}
	err := s.users.FindOne(ctx, bson.M{"_id": uid}).Decode(profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveProfile is an unconditional full overwrite, upserting when absent.
func (s *RemoteStore) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.users.ReplaceOne(ctx, bson.M{"_id": profile.UID}, profile, opts)
	return err
}

func (s *RemoteStore) CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	user := &domain.User{
		UID:          primitive.NewObjectID().Hex(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if _, err := s.authUsers.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *RemoteStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := s.authUsers.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *RemoteStore) SetResetToken(ctx context.Context, uid, token string) error {
	_, err := s.authUsers.UpdateByID(ctx, uid, bson.M{"$set": bson.M{"resetToken": token}})
	return err
}
