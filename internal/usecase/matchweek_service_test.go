package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	"github.com/matchweek/fantasy-api/internal/infrastructure/repository/memory"
	idgen "github.com/matchweek/fantasy-api/internal/platform/id"
)

func newMatchweekService(weeks []matchweek.Matchweek) (*MatchweekService, *memory.MatchweekRepository) {
	repo := memory.NewMatchweekRepository(weeks)
	return NewMatchweekService(repo, idgen.NewRandomGenerator()), repo
}

func TestMatchweekService_Create(t *testing.T) {
	t.Parallel()

	service, _ := newMatchweekService(nil)

	mw, err := service.Create(context.Background(), CreateMatchweekInput{
		Name:      "Matchweek 1",
		StartDate: time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if mw.ID == "" {
		t.Fatal("matchweek id not generated")
	}
	if mw.IsActive {
		t.Fatal("new matchweek created active")
	}
}

func TestMatchweekService_Create_RejectsReversedDates(t *testing.T) {
	t.Parallel()

	service, _ := newMatchweekService(nil)

	_, err := service.Create(context.Background(), CreateMatchweekInput{
		Name:      "Matchweek 1",
		StartDate: time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unexpected error: got=%v want=ErrInvalidInput", err)
	}
}

func TestMatchweekService_Activate_SwapsActiveFlag(t *testing.T) {
	t.Parallel()

	service, repo := newMatchweekService([]matchweek.Matchweek{
		{ID: "mw1", Name: "Matchweek 1", IsActive: true},
		{ID: "mw2", Name: "Matchweek 2"},
	})
	ctx := context.Background()

	if err := service.Activate(ctx, "mw2"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}

	active, found, err := repo.GetActive(ctx)
	if err != nil || !found {
		t.Fatalf("GetActive: found=%v err=%v", found, err)
	}
	if active.ID != "mw2" {
		t.Fatalf("unexpected active matchweek: got=%s want=mw2", active.ID)
	}

	old, _, err := repo.GetByID(ctx, "mw1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if old.IsActive {
		t.Fatal("previous matchweek still active after swap")
	}
}

func TestMatchweekService_Activate_UnknownMatchweek(t *testing.T) {
	t.Parallel()

	service, repo := newMatchweekService([]matchweek.Matchweek{
		{ID: "mw1", Name: "Matchweek 1", IsActive: true},
	})
	ctx := context.Background()

	err := service.Activate(ctx, "mw-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error: got=%v want=ErrNotFound", err)
	}

	// A failed activation leaves the current active matchweek in place.
	active, found, err := repo.GetActive(ctx)
	if err != nil || !found {
		t.Fatalf("GetActive: found=%v err=%v", found, err)
	}
	if active.ID != "mw1" {
		t.Fatalf("active matchweek changed: got=%s want=mw1", active.ID)
	}
}

func TestMatchweekService_Activate_AtMostOneActiveUnderConcurrency(t *testing.T) {
	t.Parallel()

	weeks := []matchweek.Matchweek{
		{ID: "mw1", Name: "Matchweek 1", IsActive: true},
		{ID: "mw2", Name: "Matchweek 2"},
		{ID: "mw3", Name: "Matchweek 3"},
	}
	service, repo := newMatchweekService(weeks)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"mw1", "mw2", "mw3", "mw2", "mw1"} {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = service.Activate(ctx, id)
		}()
	}
	wg.Wait()

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	active := 0
	for _, mw := range all {
		if mw.IsActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("active matchweeks after concurrent swaps: got=%d want=1", active)
	}
}

func TestMatchweekService_GetActive_NoneActive(t *testing.T) {
	t.Parallel()

	service, _ := newMatchweekService([]matchweek.Matchweek{
		{ID: "mw1", Name: "Matchweek 1"},
	})

	_, err := service.GetActive(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error: got=%v want=ErrNotFound", err)
	}
}
