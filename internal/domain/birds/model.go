package birds

import "time"

// Bird es el único registro del sistema. El ID lo asigna el store al insertar
// y no cambia durante la vida del registro.
type Bird struct {
	ID      int64
	Name    string
	Species string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultMessages acompaña a los birds en modo envelope. Es un literal fijo,
// no depende del contenido del store.
var DefaultMessages = []string{"Hello birds", "Goodbye birds"}
