package memory

import (
	"context"
	"errors"
	"sync"

	"birds-api/internal/domain/birds"
)

var (
	ErrDuplicateID = errors.New("bird already exists")
)

// birdRepo guarda los birds en orden de inserción; los IDs son crecientes,
// así que el orden de inserción es también el orden por ID.
type birdRepo struct {
	mu     sync.RWMutex
	items  []birds.Bird
	byID   map[int64]struct{}
	nextID int64
}

func NewBirdRepo() birds.Repository {
	return &birdRepo{
		byID:   make(map[int64]struct{}),
		nextID: 1,
	}
}

func (r *birdRepo) List(ctx context.Context) ([]birds.Bird, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]birds.Bird, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *birdRepo) Insert(ctx context.Context, b birds.Bird) (birds.Bird, error) {
	out, err := r.InsertAll(ctx, []birds.Bird{b})
	if err != nil {
		return birds.Bird{}, err
	}
	return out[0], nil
}

// InsertAll valida el lote completo antes de tocar el store: si un registro
// falla no se agrega ninguno.
func (r *birdRepo) InsertAll(ctx context.Context, items []birds.Bird) ([]birds.Bird, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make([]birds.Bird, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	next := r.nextID
	last := int64(0)
	if n := len(r.items); n > 0 {
		last = r.items[n-1].ID
	}

	for _, b := range items {
		if b.ID == 0 {
			b.ID = next
		}
		if _, exists := r.byID[b.ID]; exists {
			return nil, ErrDuplicateID
		}
		if _, dup := seen[b.ID]; dup {
			return nil, ErrDuplicateID
		}
		// IDs explícitos menores al último romperían el orden; se rechazan igual que duplicados.
		if b.ID < last {
			return nil, ErrDuplicateID
		}

		seen[b.ID] = struct{}{}
		staged = append(staged, b)
		last = b.ID
		next = b.ID + 1
	}

	for _, b := range staged {
		r.items = append(r.items, b)
		r.byID[b.ID] = struct{}{}
	}
	r.nextID = next

	out := make([]birds.Bird, len(staged))
	copy(out, staged)
	return out, nil
}
