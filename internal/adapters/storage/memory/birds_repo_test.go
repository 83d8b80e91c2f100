package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"birds-api/internal/domain/birds"
)

func TestBirdRepo_InsertAssignsAscendingIDs(t *testing.T) {
	repo := NewBirdRepo()
	ctx := context.Background()

	for _, name := range []string{"Grackle", "Common Starling", "Mourning Dove"} {
		if _, err := repo.Insert(ctx, birds.Bird{Name: name}); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, b := range items {
		if b.ID != int64(i+1) {
			t.Fatalf("expected id %d, got %d", i+1, b.ID)
		}
	}
}

func TestBirdRepo_RejectsDuplicateID(t *testing.T) {
	repo := NewBirdRepo()
	ctx := context.Background()

	if _, err := repo.Insert(ctx, birds.Bird{ID: 5, Name: "Grackle"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(ctx, birds.Bird{ID: 5, Name: "Other"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	b, err := repo.Insert(ctx, birds.Bird{Name: "Next"})
	if err != nil || b.ID != 6 {
		t.Fatalf("expected id 6, got %d (%v)", b.ID, err)
	}
}

func TestBirdRepo_ListReturnsCopy(t *testing.T) {
	repo := NewBirdRepo()
	ctx := context.Background()
	_, _ = repo.Insert(ctx, birds.Bird{Name: "Grackle"})

	items, _ := repo.List(ctx)
	items[0].Name = "mutated"

	again, _ := repo.List(ctx)
	if again[0].Name != "Grackle" {
		t.Fatalf("store was mutated through List result")
	}
}

func TestBirdRepo_ConcurrentReads(t *testing.T) {
	repo := NewBirdRepo()
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, _ = repo.Insert(ctx, birds.Bird{Name: "Dove"})
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := repo.List(ctx)
			if err != nil || len(items) != 10 {
				t.Errorf("unexpected list: %d %v", len(items), err)
			}
		}()
	}
	wg.Wait()
}

func TestBirdRepo_InsertAllIsAllOrNothing(t *testing.T) {
	repo := NewBirdRepo()
	ctx := context.Background()
	_, _ = repo.Insert(ctx, birds.Bird{ID: 2, Name: "Grackle"})

	_, err := repo.InsertAll(ctx, []birds.Bird{
		{Name: "Common Starling"},
		{ID: 2, Name: "clash"},
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	items, _ := repo.List(ctx)
	if len(items) != 1 {
		t.Fatalf("failed batch left partial data: %#v", items)
	}

	out, err := repo.InsertAll(ctx, []birds.Bird{{Name: ""}, {Name: "Mourning Dove"}})
	if err != nil {
		t.Fatalf("insert all: %v", err)
	}
	if out[0].ID != 3 || out[0].Name != "" || out[1].ID != 4 {
		t.Fatalf("unexpected batch result: %#v", out)
	}
}
