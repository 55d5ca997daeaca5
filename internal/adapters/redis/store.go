// internal/adapters/redis/store.go
package redis

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/stream"
)

const (
	catalogKey    = "catalog:medicines"
	cartKeyPrefix = "cart:item:"
	sessionKey    = "auth:session"
)

// Store is the on-device cache: a catalog replica replaced wholesale on
// every sync, the cart rows, and the persisted auth session. The catalog
// lives under a single key so a full replace is one SET and a reader never
// observes a half-replaced catalog.
type Store struct {
	client       *redis.Client
	catalogWatch *stream.Hub[[]domain.Medicine]
	cartWatch    *stream.Hub[[]domain.CartItem]
}

func NewStore(addr, username, password string, db int) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})
	return &Store{
		client:       client,
		catalogWatch: stream.NewHub[[]domain.Medicine](),
		cartWatch:    stream.NewHub[[]domain.CartItem](),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// catalog replica

func (s *Store) Medicines(ctx context.Context) ([]domain.Medicine, error) {
	data, err := s.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var medicines []domain.Medicine
	if err := json.Unmarshal(data, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (s *Store) ReplaceMedicines(ctx context.Context, medicines []domain.Medicine) error {
	data, err := json.Marshal(medicines)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, catalogKey, data, 0).Err(); err != nil {
		return err
	}
	s.catalogWatch.Publish(medicines)
	return nil
}

func (s *Store) WatchMedicines(ctx context.Context) (<-chan []domain.Medicine, func(), error) {
	current, err := s.Medicines(ctx)
	if err != nil {
		return nil, nil, err
	}
	ch, stop := s.catalogWatch.Subscribe(current)
	return ch, stop, nil
}

// cart rows, one key per medicine id

func (s *Store) Items(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	iter := s.client.Scan(ctx, 0, cartKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var item domain.CartItem
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MedicineID < items[j].MedicineID })
	return items, nil
}

func (s *Store) Item(ctx context.Context, medicineID string) (*domain.CartItem, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+medicineID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item := &domain.CartItem{}
	if err := json.Unmarshal(data, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Store) Put(ctx context.Context, item domain.CartItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, cartKeyPrefix+item.MedicineID, data, 0).Err(); err != nil {
		return err
	}
	return s.publishCart(ctx)
}

func (s *Store) Remove(ctx context.Context, medicineID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+medicineID).Err(); err != nil {
		return err
	}
	return s.publishCart(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, cartKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return s.publishCart(ctx)
}

func (s *Store) WatchItems(ctx context.Context) (<-chan []domain.CartItem, func(), error) {
	current, err := s.Items(ctx)
	if err != nil {
		return nil, nil, err
	}
	ch, stop := s.cartWatch.Subscribe(current)
	return ch, stop, nil
}

func (s *Store) publishCart(ctx context.Context) error {
	items, err := s.Items(ctx)
	if err != nil {
		return err
	}
	s.cartWatch.Publish(items)
	return nil
}

// persisted auth session

func (s *Store) SaveSession(ctx context.Context, token string) error {
	return s.client.Set(ctx, sessionKey, token, 0).Err()
}

func (s *Store) LoadSession(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey).Err()
}
