package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/doughtobread/server/internal/badge"
	"github.com/doughtobread/server/internal/model"
)

func TestAwardIfEligible_FirstAward(t *testing.T) {
	svc, repo := newTestBadgeService(t)

	awarded, err := svc.AwardIfEligible(context.Background(), "user-1", badge.ForCalculatorUse(1))
	if err != nil {
		t.Fatalf("AwardIfEligible() error = %v", err)
	}
	if !awarded {
		t.Error("first award should return true")
	}

	if len(repo.badges) != 1 {
		t.Fatalf("stored %d badges, want 1", len(repo.badges))
	}
	b := repo.badges[0]
	if b.ID == "" {
		t.Error("stored badge has no ID")
	}
	if b.DateEarned.IsZero() {
		t.Error("stored badge has no DateEarned")
	}
	if b.Name != "Calculator Novice" {
		t.Errorf("Name = %q, want %q", b.Name, "Calculator Novice")
	}
	if b.Level != model.LevelBeginner {
		t.Errorf("Level = %q, want %q", b.Level, model.LevelBeginner)
	}
}

func TestAwardIfEligible_DuplicateIsNoOp(t *testing.T) {
	svc, repo := newTestBadgeService(t)
	def := badge.ForCalculatorUse(2)

	if _, err := svc.AwardIfEligible(context.Background(), "user-1", def); err != nil {
		t.Fatalf("setup: %v", err)
	}
	awarded, err := svc.AwardIfEligible(context.Background(), "user-1", def)
	if err != nil {
		t.Fatalf("AwardIfEligible() error = %v", err)
	}
	if awarded {
		t.Error("second award of the same badge should return false")
	}
	if len(repo.badges) != 1 {
		t.Errorf("stored %d badges, want 1", len(repo.badges))
	}
}

func TestAwardIfEligible_ConcurrentAwardsStoreOne(t *testing.T) {
	svc, repo := newTestBadgeService(t)
	def := badge.ForCalculatorUse(3)

	const workers = 8
	results := make([]bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			awarded, err := svc.AwardIfEligible(context.Background(), "user-1", def)
			if err != nil {
				t.Errorf("AwardIfEligible() error = %v", err)
				return
			}
			results[i] = awarded
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, r := range results {
		if r {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("%d goroutines reported a new award, want exactly 1", wins)
	}
	if len(repo.badges) != 1 {
		t.Errorf("stored %d badges, want 1", len(repo.badges))
	}
}

func TestAwardIfEligible_StoreFailurePropagates(t *testing.T) {
	svc, repo := newTestBadgeService(t)
	repo.err = errors.New("disk on fire")

	_, err := svc.AwardIfEligible(context.Background(), "user-1", badge.ForCalculatorUse(1))
	if err == nil {
		t.Fatal("AwardIfEligible() should propagate the store failure")
	}
	if !errors.Is(err, repo.err) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}

func TestList_ScopedToUser(t *testing.T) {
	svc, _ := newTestBadgeService(t)

	if _, err := svc.AwardIfEligible(context.Background(), "user-1", badge.ForCalculatorUse(1)); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := svc.AwardIfEligible(context.Background(), "user-2", badge.ForCalculatorUse(1)); err != nil {
		t.Fatalf("setup: %v", err)
	}

	badges, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(badges) != 1 {
		t.Errorf("List() returned %d badges, want 1", len(badges))
	}
}
