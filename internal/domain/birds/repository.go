package birds

import "context"

type Repository interface {
	// List devuelve todos los birds en orden ascendente de ID.
	List(ctx context.Context) ([]Bird, error)
	// Insert asigna ID si viene en cero.
	Insert(ctx context.Context, b Bird) (Bird, error)
	// InsertAll inserta el lote completo o nada. Lo usa el seed.
	InsertAll(ctx context.Context, items []Bird) ([]Bird, error)
}
