package birds

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock reemplaza el reloj (tests / seeds deterministas).
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]Bird, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list birds: %w", err)
	}
	if items == nil {
		items = []Bird{}
	}
	return items, nil
}

// Seed inserta todo el lote en una sola operación del repo (transacción en
// los stores SQL): o quedan todos los registros o ninguno. Si el store ya tiene
// datos no hace nada, así re-ejecutar contra una DB persistente no duplica filas.
// Devuelve la cantidad insertada.
func (s *Service) Seed(ctx context.Context, seeds []SeedBird) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed birds: %w", err)
	}
	if len(existing) > 0 || len(seeds) == 0 {
		return 0, nil
	}

	batch := make([]Bird, 0, len(seeds))
	for _, sb := range seeds {
		ts := sb.CreatedAt
		if ts.IsZero() {
			ts = s.now()
		}
		ts = ts.UTC().Truncate(time.Millisecond)

		// name/species no se validan: se guardan tal cual vienen.
		batch = append(batch, Bird{
			Name:      sb.Name,
			Species:   sb.Species,
			CreatedAt: ts,
			UpdatedAt: ts,
		})
	}

	inserted, err := s.repo.InsertAll(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("seed birds: %w", err)
	}
	return len(inserted), nil
}
