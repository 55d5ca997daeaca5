// internal/viewstate/catalog.go
package viewstate

import (
	"context"
	"strings"
	"sync"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

type CatalogState struct {
	Loading   bool
	Medicines []domain.Medicine
	Error     string
}

// Catalog is the medicine-list screen holder. It keeps the full catalog
// snapshot for in-memory search filtering and merges the repository's
// loading/success/error stream into one displayable state.
type Catalog struct {
	repo ports.MedicineRepositoryPort

	mu    sync.Mutex
	all   []domain.Medicine
	query string
	state CatalogState

	changes chan struct{}
	stop    func()
	done    chan struct{}
}

func NewCatalog(repo ports.MedicineRepositoryPort) *Catalog {
	return &Catalog{
		repo:    repo,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (c *Catalog) Start(ctx context.Context) {
	updates, stop := c.repo.Medicines(ctx)
	c.stop = stop
	go func() {
		defer close(c.done)
		for res := range updates {
			c.apply(res)
		}
	}()
}

// Stop tears down the repository subscription and waits for the consumer
// goroutine to drain, so no state changes land afterwards.
func (c *Catalog) Stop() {
	if c.stop == nil {
		return
	}
	c.stop()
	<-c.done
}

func (c *Catalog) apply(res domain.Resource[[]domain.Medicine]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch res.State {
	case domain.StateSuccess:
		c.all = res.Data
		c.state = CatalogState{Medicines: c.filteredLocked()}
	case domain.StateError:
		msg := res.Message
		if msg == "" {
			msg = genericErrorMessage
		}
		if len(c.all) > 0 {
			// keep showing cached data, just flag the sync failure
			c.state.Error = msg
			c.state.Loading = false
		} else {
			c.state = CatalogState{Error: msg}
		}
	case domain.StateLoading:
		if len(c.all) == 0 {
			c.state = CatalogState{Loading: true}
		}
	}
	notify(c.changes)
}

// OnSearch filters the in-memory snapshot case-insensitively against name
// and description. An empty query restores the full set.
func (c *Catalog) OnSearch(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	c.state.Medicines = c.filteredLocked()
	notify(c.changes)
}

func (c *Catalog) filteredLocked() []domain.Medicine {
	if c.query == "" {
		return c.all
	}
	q := strings.ToLower(c.query)
	var filtered []domain.Medicine
	for _, m := range c.all {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Description), q) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func (c *Catalog) State() CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Catalog) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Catalog) Changes() <-chan struct{} { return c.changes }
