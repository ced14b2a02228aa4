package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"caseforge_backend/internal/config"
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/util"
)

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Ada Lovelace":          "AL",
		"grace brewster hopper": "GB",
		"Plato":                 "P",
		"   ":                   "CS",
		"élodie durand":         "ÉD",
	}
	for name, want := range tests {
		if got := Initials(name); got != want {
			t.Errorf("Initials(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestNewLevelView(t *testing.T) {
	empty := NewLevelView(nil)
	if empty.Level != 1 || empty.Progress.Required != 1000 || empty.NextLevel != 2 {
		t.Errorf("nil stats view = %+v", empty)
	}

	// 缓存等级优先于经验推导的等级
	cached := NewLevelView(&model.UserStats{XP: 2600, Level: 2})
	if cached.Level != 2 || cached.Percent != 100 {
		t.Errorf("cached level view = %+v", cached)
	}

	derived := NewLevelView(&model.UserStats{XP: 1750})
	if derived.Level != 2 || derived.Progress.Current != 750 || derived.Percent != 50 {
		t.Errorf("derived level view = %+v", derived)
	}
}

func newProfileService(t *testing.T, f *fixture) *ProfileService {
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()}})
	return NewProfileService(f.profiles, f.stats, f.submissions, NewAchievementService(f.achievements), storage)
}

func TestProfileView(t *testing.T) {
	f := newFixture(t)
	c := f.seedCase(t, 1, "pricing", "Marketing", 1)
	f.seedStats(t, model.UserStats{UserID: "u1", XP: 1200, Level: 2, CasesSolved: 1})
	f.profiles.Create(context.Background(), &model.UserProfile{UserID: "u1", DisplayName: "Ada Lovelace"})
	f.seedSubmission(t, "u1", c, ptr(88.0), epoch)

	view := newProfileService(t, f).View(context.Background(), "u1")
	if view.Initials != "AL" || view.Stats == nil || view.Level.Level != 2 {
		t.Errorf("view = %+v", view)
	}
	if len(view.Submissions) != 1 || view.Submissions[0].Case.Title != "pricing" {
		t.Errorf("submissions = %+v", view.Submissions)
	}

	missing := newProfileService(t, f).View(context.Background(), "nobody")
	if missing.Profile != nil || missing.Stats != nil || missing.Initials != "CS" || missing.Submissions == nil {
		t.Errorf("missing user view = %+v", missing)
	}
}

func TestProfileUpdateAndAvatar(t *testing.T) {
	f := newFixture(t)
	svc := newProfileService(t, f)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "u1", &UpdateProfileRequest{DisplayName: "Ada"}); !errors.Is(err, util.ErrProfileNotFound) {
		t.Errorf("Update(no profile) error = %v", err)
	}

	f.profiles.Create(ctx, &model.UserProfile{UserID: "u1", DisplayName: "Ada"})

	if _, err := svc.Update(ctx, "u1", &UpdateProfileRequest{DisplayName: "  "}); !errors.Is(err, util.ErrDisplayNameEmpty) {
		t.Errorf("Update(blank) error = %v", err)
	}

	p, err := svc.Update(ctx, "u1", &UpdateProfileRequest{DisplayName: " Ada L. ", Bio: "Analyst"})
	if err != nil || p.DisplayName != "Ada L." || p.Bio != "Analyst" {
		t.Fatalf("Update() = %+v, %v", p, err)
	}

	_, err = svc.UploadAvatar(ctx, "u1", &FileUpload{Filename: "me.pdf", ContentType: util.MimePDF, Reader: bytes.NewReader(nil)})
	if !errors.Is(err, util.ErrUnsupportedFile) {
		t.Errorf("pdf avatar error = %v", err)
	}

	p, err = svc.UploadAvatar(ctx, "u1", &FileUpload{Filename: "me.png", ContentType: "image/png", Size: 4, Reader: bytes.NewReader([]byte("png!"))})
	if err != nil || !strings.HasPrefix(p.AvatarURL, "/uploads/avatars/u1/") {
		t.Errorf("UploadAvatar() = %+v, %v", p, err)
	}
}

func TestLeaderboardWithoutRedis(t *testing.T) {
	f := newFixture(t)
	for i, score := range []int{10, 50, 30} {
		f.seedStats(t, model.UserStats{UserID: string(rune('a' + i)), TotalScore: score, Level: 1})
	}

	svc := NewLeaderboardService(f.stats, nil)
	top := svc.Top(context.Background(), 0)
	if len(top) != 3 || top[0].UserID != "b" || top[0].Rank != 1 || top[2].Rank != 3 {
		t.Errorf("Top() = %+v", top)
	}

	if got := svc.Top(context.Background(), 2); len(got) != 2 {
		t.Errorf("Top(2) len = %d", len(got))
	}
	svc.Invalidate(context.Background())
}
