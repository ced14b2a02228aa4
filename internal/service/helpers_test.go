package service

import (
	"testing"
	"time"

	"caseforge_backend/internal/model"
	"caseforge_backend/internal/repository"
	"caseforge_backend/internal/testutil"

	"gorm.io/gorm"
)

var epoch = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

type fixture struct {
	db           *gorm.DB
	cases        *repository.CaseRepository
	submissions  *repository.SubmissionRepository
	stats        *repository.StatsRepository
	profiles     *repository.ProfileRepository
	streaks      *repository.StreakRepository
	challenges   *repository.DailyChallengeRepository
	achievements *repository.AchievementRepository
	progress     *repository.CaseProgressRepository
	users        *repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:           db,
		cases:        repository.NewCaseRepository(db),
		submissions:  repository.NewSubmissionRepository(db),
		stats:        repository.NewStatsRepository(db),
		profiles:     repository.NewProfileRepository(db),
		streaks:      repository.NewStreakRepository(db),
		challenges:   repository.NewDailyChallengeRepository(db),
		achievements: repository.NewAchievementRepository(db),
		progress:     repository.NewCaseProgressRepository(db),
		users:        repository.NewUserRepository(db),
	}
}

// seedCase n 决定创建时间的先后，n 越大越新
func (f *fixture) seedCase(t *testing.T, n int, title, domain string, difficulty int, tags ...string) model.Case {
	t.Helper()
	c := model.Case{
		Title:              title,
		Slug:               title,
		Domain:             domain,
		Brief:              "brief",
		EvaluationCriteria: "criteria",
		Difficulty:         difficulty,
		Tags:               tags,
		IsActive:           true,
	}
	c.CreatedAt = epoch.Add(-time.Duration(100-n) * time.Hour)
	if err := f.db.Create(&c).Error; err != nil {
		t.Fatalf("seed case: %v", err)
	}
	return c
}

func (f *fixture) seedStats(t *testing.T, stats model.UserStats) {
	t.Helper()
	if err := f.db.Create(&stats).Error; err != nil {
		t.Fatalf("seed stats: %v", err)
	}
}

func (f *fixture) seedSubmission(t *testing.T, userID string, c model.Case, score *float64, at time.Time) {
	t.Helper()
	sub := model.Submission{
		CaseID:      c.ID,
		UserID:      userID,
		Response:    "answer",
		Score:       score,
		Status:      model.SubmissionCompleted,
		SubmittedAt: at,
		TimeSpent:   600,
	}
	if err := f.db.Create(&sub).Error; err != nil {
		t.Fatalf("seed submission: %v", err)
	}
}

func (f *fixture) count(t *testing.T, m interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(m).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T {
	return &v
}

func caseTitles(cases []model.Case) []string {
	out := make([]string, len(cases))
	for i, c := range cases {
		out[i] = c.Title
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
