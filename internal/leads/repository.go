package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is a delivered lead with delivery metadata, kept for the admin
// listing. The process keeps no other lead state.
type Record struct {
	ID        string    `json:"id"`
	Lead      Lead      `json:"lead"`
	Message   string    `json:"message,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository stores delivered leads.
type Repository interface {
	Create(ctx context.Context, lead Lead, message, source string) (*Record, error)
	GetByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit int) ([]*Record, error)
}

// InMemoryRepository keeps delivered leads in process memory, newest first.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []*Record
	byID    map[string]*Record
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[string]*Record)}
}

// Create records a delivered lead.
func (r *InMemoryRepository) Create(ctx context.Context, lead Lead, message, source string) (*Record, error) {
	rec := &Record{
		ID:        uuid.New().String(),
		Lead:      lead,
		Message:   message,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.records = append([]*Record{rec}, r.records...)
	r.byID[rec.ID] = rec
	r.mu.Unlock()

	return rec, nil
}

// GetByID retrieves a delivered lead by ID.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	return rec, nil
}

// List returns up to limit delivered leads, newest first. limit <= 0 means
// all.
func (r *InMemoryRepository) List(ctx context.Context, limit int) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Record, n)
	copy(out, r.records[:n])
	return out, nil
}

var _ Repository = (*InMemoryRepository)(nil)
