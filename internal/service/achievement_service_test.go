package service

import (
	"context"
	"errors"
	"testing"

	"caseforge_backend/internal/model"
	"caseforge_backend/internal/session"
	"caseforge_backend/internal/util"
)

func TestAwardAndBadges(t *testing.T) {
	f := newFixture(t)
	svc := NewAchievementService(f.achievements)
	ctx := context.Background()

	catalog := svc.Catalog(ctx)
	if len(catalog) == 0 || catalog[0].Code != model.FirstCaseAchievement {
		t.Fatalf("catalog should start with the cheapest achievement, got %+v", catalog)
	}

	if _, err := svc.Award(ctx, "u1", "streak-3"); err != nil {
		t.Fatalf("Award() error = %v", err)
	}
	if _, err := svc.Award(ctx, "u1", "streak-3"); !errors.Is(err, util.ErrAlreadyAwarded) {
		t.Errorf("duplicate Award() error = %v", err)
	}
	if _, err := svc.Award(ctx, "u1", "moonshot"); !errors.Is(err, util.ErrAchievementUnknown) {
		t.Errorf("unknown Award() error = %v", err)
	}

	earned := 0
	for _, b := range svc.Badges(ctx, "u1") {
		if b.Earned {
			earned++
			if b.Code != "streak-3" || b.EarnedAt == nil {
				t.Errorf("unexpected earned badge %+v", b)
			}
		}
	}
	if earned != 1 {
		t.Errorf("earned badges = %d, want 1", earned)
	}
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewOnboardingService(f.profiles, f.stats, NewAchievementService(f.achievements))
	ctx := context.Background()
	sess := &session.Session{UserID: "u1", Metadata: model.UserMetadata{FullName: "Ada Lovelace"}}

	svc.EnsureUser(ctx, sess)
	svc.EnsureUser(ctx, sess)

	profile, err := f.profiles.FindByUserID(ctx, "u1")
	if err != nil || profile.DisplayName != "Ada Lovelace" || profile.Bio != defaultBio {
		t.Fatalf("profile = %+v, %v", profile, err)
	}
	stats, err := f.stats.FindByUserID(ctx, "u1")
	if err != nil || stats.XP != 0 || stats.Level != 1 {
		t.Fatalf("stats = %+v, %v", stats, err)
	}
	if n := f.count(t, &model.UserProfile{}, "user_id = ?", "u1"); n != 1 {
		t.Errorf("profiles = %d, want 1", n)
	}
	if n := f.count(t, &model.UserAchievement{}, "user_id = ?", "u1"); n != 1 {
		t.Errorf("first-case awards = %d, want 1", n)
	}
}

func TestEnsureUserDefaultName(t *testing.T) {
	f := newFixture(t)
	svc := NewOnboardingService(f.profiles, f.stats, nil)
	svc.EnsureUser(context.Background(), &session.Session{UserID: "u2"})

	profile, err := f.profiles.FindByUserID(context.Background(), "u2")
	if err != nil || profile.DisplayName != "Case Solver" {
		t.Fatalf("profile = %+v, %v", profile, err)
	}
}

func TestOnboardingConsumesSignedIn(t *testing.T) {
	f := newFixture(t)
	svc := NewOnboardingService(f.profiles, f.stats, nil)

	hub := session.NewHub(4)
	events, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		svc.Run(events)
		close(done)
	}()

	hub.Publish(session.Event{Type: session.SignedOut, Session: session.Session{UserID: "ignored"}})
	hub.Publish(session.Event{Type: session.SignedIn, Session: session.Session{UserID: "u3"}})
	hub.Close()
	<-done

	if n := f.count(t, &model.UserProfile{}, "user_id = ?", "u3"); n != 1 {
		t.Errorf("profiles for signed-in user = %d, want 1", n)
	}
	if n := f.count(t, &model.UserProfile{}, "user_id = ?", "ignored"); n != 0 {
		t.Errorf("sign-out should not onboard, got %d", n)
	}
}

func TestEnsureUserRepairsMissingStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.profiles.Create(ctx, &model.UserProfile{UserID: "u4", DisplayName: "Grace"}); err != nil {
		t.Fatal(err)
	}

	svc := NewOnboardingService(f.profiles, f.stats, nil)
	svc.EnsureUser(ctx, &session.Session{UserID: "u4"})

	stats, err := f.stats.FindByUserID(ctx, "u4")
	if err != nil || stats.Level != 1 {
		t.Fatalf("stats = %+v, %v", stats, err)
	}
	if n := f.count(t, &model.UserProfile{}, "user_id = ?", "u4"); n != 1 {
		t.Errorf("profiles = %d, want 1", n)
	}
}
