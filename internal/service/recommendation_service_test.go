package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"caseforge_backend/internal/model"
)

func TestTargetDifficulty(t *testing.T) {
	tests := []struct {
		avg  float64
		want int
	}{
		{0, 1},
		{59.9, 1},
		{60, 2},
		{79.9, 2},
		{80, 3},
		{100, 3},
	}
	for _, tt := range tests {
		if got := TargetDifficulty(tt.avg); got != tt.want {
			t.Errorf("TargetDifficulty(%v) = %d, want %d", tt.avg, got, tt.want)
		}
	}
}

// flakyCases 在真实仓库之上注入指定查询的失败
type flakyCases struct {
	CaseStore
	unexploredErr error
	popularErr    error
}

func (f *flakyCases) Unexplored(ctx context.Context, excluded []string, difficulty, limit int) ([]model.Case, error) {
	if f.unexploredErr != nil {
		return nil, f.unexploredErr
	}
	return f.CaseStore.Unexplored(ctx, excluded, difficulty, limit)
}

func (f *flakyCases) Popular(ctx context.Context, limit int) ([]model.Case, error) {
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	return f.CaseStore.Popular(ctx, limit)
}

type failingSubmissions struct {
	SubmissionStore
}

func (failingSubmissions) CompletedByUser(ctx context.Context, userID string) ([]model.SubmissionWithCase, error) {
	return nil, errors.New("connection reset")
}

func TestRecommendNewUserGetsTopPicks(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 6; i++ {
		f.seedCase(t, i, string(rune('a'+i-1)), "Strategy", 1)
	}

	svc := NewRecommendationService(f.cases, f.submissions)
	got := caseTitles(svc.Recommend(context.Background(), "new-user", 0))
	if !sameStrings(got, []string{"f", "e", "d", "c"}) {
		t.Errorf("Recommend() = %v, want four newest", got)
	}
}

func TestRecommendAverageEightyRoutesToTierThree(t *testing.T) {
	f := newFixture(t)
	tried := f.seedCase(t, 1, "tried", "Strategy", 1)
	f.seedCase(t, 2, "strategy-hard", "Strategy", 3)
	f.seedCase(t, 3, "finance-easy", "Finance", 1)
	f.seedCase(t, 4, "finance-hard", "Finance", 3)

	f.seedSubmission(t, "u1", tried, ptr(90.0), epoch)
	f.seedSubmission(t, "u1", tried, ptr(70.0), epoch)

	svc := NewRecommendationService(f.cases, f.submissions)
	got := caseTitles(svc.Recommend(context.Background(), "u1", 4))
	if !sameStrings(got, []string{"finance-hard"}) {
		t.Errorf("Recommend() = %v, want [finance-hard]", got)
	}
}

func TestRecommendUnscoredCountsAsZero(t *testing.T) {
	f := newFixture(t)
	tried := f.seedCase(t, 1, "tried", "Strategy", 2)
	f.seedCase(t, 2, "ops-easy", "Operations", 1)
	f.seedCase(t, 3, "ops-medium", "Operations", 2)

	f.seedSubmission(t, "u1", tried, ptr(100.0), epoch)
	f.seedSubmission(t, "u1", tried, nil, epoch)

	svc := NewRecommendationService(f.cases, f.submissions)
	got := caseTitles(svc.Recommend(context.Background(), "u1", 4))
	if !sameStrings(got, []string{"ops-easy"}) {
		t.Errorf("average 50 should route to tier 1, got %v", got)
	}
}

func TestRecommendFallbacks(t *testing.T) {
	f := newFixture(t)
	tried := f.seedCase(t, 1, "tried", "Strategy", 1)
	f.seedCase(t, 2, "fresh", "Strategy", 1)
	f.seedSubmission(t, "u1", tried, ptr(50.0), epoch.Add(-time.Hour))

	ctx := context.Background()

	t.Run("no unexplored falls back to popular", func(t *testing.T) {
		svc := NewRecommendationService(f.cases, f.submissions)
		got := caseTitles(svc.Recommend(ctx, "u1", 4))
		if !sameStrings(got, []string{"tried"}) {
			t.Errorf("Recommend() = %v, want popular [tried]", got)
		}
	})

	t.Run("query failures fall back to top picks", func(t *testing.T) {
		cases := &flakyCases{CaseStore: f.cases, unexploredErr: errors.New("boom"), popularErr: errors.New("boom")}
		svc := NewRecommendationService(cases, f.submissions)
		got := caseTitles(svc.Recommend(ctx, "u1", 4))
		if !sameStrings(got, []string{"fresh", "tried"}) {
			t.Errorf("Recommend() = %v, want top picks", got)
		}
	})

	t.Run("history failure goes to popular", func(t *testing.T) {
		svc := NewRecommendationService(f.cases, failingSubmissions{})
		got := caseTitles(svc.Recommend(ctx, "u1", 4))
		if !sameStrings(got, []string{"tried"}) {
			t.Errorf("Recommend() = %v, want popular [tried]", got)
		}
	})
}
