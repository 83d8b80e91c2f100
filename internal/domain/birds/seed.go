package birds

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SeedBird es una entrada del seed. CreatedAt es opcional; en cero se usa el
// reloj del servicio.
type SeedBird struct {
	Name      string    `koanf:"name"`
	Species   string    `koanf:"species"`
	CreatedAt time.Time `koanf:"created_at"`
}

func DefaultSeed() []SeedBird {
	return []SeedBird{
		{Name: "Black-Capped Chickadee", Species: "Poecile Atricapillus"},
		{Name: "Grackle", Species: "Quiscalus Quiscula"},
		{Name: "Common Starling", Species: "Sturnus Vulgaris"},
		{Name: "Mourning Dove", Species: "Zenaida Macroura"},
	}
}

// LoadSeedFile lee un YAML con la forma:
//
//	birds:
//	  - name: Grackle
//	    species: Quiscalus Quiscula
func LoadSeedFile(path string) ([]SeedBird, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("load seed: %w: empty path", ErrInvalidInput)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load seed %s: %w", path, err)
	}

	var out []SeedBird
	if err := k.UnmarshalWithConf("birds", &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("load seed %s: %w", path, err)
	}
	return out, nil
}
