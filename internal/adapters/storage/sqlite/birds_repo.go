package sqlite

import (
	"context"
	"fmt"
	"time"

	"birds-api/internal/domain/birds"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// birdRow es el mapeo GORM de la tabla birds. El dominio no lleva tags.
type birdRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null;default:''"`
	Species   string `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (birdRow) TableName() string {
	return "birds"
}

// Open abre (o crea) el archivo SQLite y migra la tabla birds.
// path=":memory:" sirve para tests.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// SQLite serializa escrituras; una conexión evita "database is locked"
	// y mantiene vivo un :memory: entre queries.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&birdRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate birds: %w", err)
	}
	return db, nil
}

type BirdsRepo struct {
	db *gorm.DB
}

func NewBirdsRepo(db *gorm.DB) *BirdsRepo {
	return &BirdsRepo{db: db}
}

func (r *BirdsRepo) List(ctx context.Context) ([]birds.Bird, error) {
	var rows []birdRow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]birds.Bird, 0, len(rows))
	for _, row := range rows {
		out = append(out, birds.Bird{
			ID:        row.ID,
			Name:      row.Name,
			Species:   row.Species,
			CreatedAt: row.CreatedAt.UTC(),
			UpdatedAt: row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *BirdsRepo) Insert(ctx context.Context, b birds.Bird) (birds.Bird, error) {
	return insertBird(r.db.WithContext(ctx), b)
}

// InsertAll corre el lote dentro de db.Transaction: un error hace rollback de todo.
func (r *BirdsRepo) InsertAll(ctx context.Context, items []birds.Bird) ([]birds.Bird, error) {
	out := make([]birds.Bird, 0, len(items))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range items {
			inserted, err := insertBird(tx, b)
			if err != nil {
				return err
			}
			out = append(out, inserted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close libera la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func insertBird(db *gorm.DB, b birds.Bird) (birds.Bird, error) {
	row := birdRow{
		ID:        b.ID,
		Name:      b.Name,
		Species:   b.Species,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return birds.Bird{}, fmt.Errorf("insert bird: %w", err)
	}
	b.ID = row.ID
	return b, nil
}
