package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"caseforge_backend/internal/model"
	"caseforge_backend/internal/service"
)

func TestListAndGetCases(t *testing.T) {
	e := newEnv(t)
	pricing := e.seedCase(t, "Pricing Power", "Marketing", 2)
	e.seedCase(t, "Market Entry", "Strategy", 1)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "all", target: "/api/cases", want: 2},
		{name: "all domains keyword", target: "/api/cases?domain=all", want: 2},
		{name: "by domain", target: "/api/cases?domain=Marketing", want: 1},
		{name: "by difficulty", target: "/api/cases?difficulty=1", want: 1},
		{name: "search", target: "/api/cases?search=entry", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(httptest.NewRequest(http.MethodGet, tt.target, nil), "u1", false)
			var cases []model.Case
			decode(t, w, &cases)
			if w.Code != http.StatusOK || len(cases) != tt.want {
				t.Errorf("GET %s = %d, %d cases; want %d", tt.target, w.Code, len(cases), tt.want)
			}
		})
	}

	w := e.do(httptest.NewRequest(http.MethodGet, "/api/cases/pricing-power", nil), "u1", false)
	var got model.Case
	decode(t, w, &got)
	if w.Code != http.StatusOK || got.ID != pricing.ID {
		t.Errorf("GET by slug = %d, %+v", w.Code, got)
	}

	w = e.do(httptest.NewRequest(http.MethodGet, "/api/cases/missing", nil), "u1", false)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET missing = %d, want 404", w.Code)
	}

	w = e.do(httptest.NewRequest(http.MethodGet, "/api/cases", nil), "", false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous GET = %d, want 401", w.Code)
	}
}

func TestSubmitAPI(t *testing.T) {
	e := newEnv(t)
	c := e.seedCase(t, "Pricing Power", "Marketing", 2)
	e.db.Create(&model.UserStats{UserID: "u1", Level: 1})

	w := e.do(jsonRequest(http.MethodPost, "/api/submissions", service.SubmitRequest{CaseID: c.ID, Response: "  "}), "u1", false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank response = %d, want 400", w.Code)
	}

	w = e.do(jsonRequest(http.MethodPost, "/api/cases/"+c.ID+"/start", nil), "u1", false)
	if w.Code != http.StatusOK {
		t.Fatalf("start = %d: %s", w.Code, w.Body.String())
	}

	w = e.do(jsonRequest(http.MethodPut, "/api/cases/"+c.ID+"/draft", map[string]string{"draft": "first thoughts"}), "u1", false)
	if w.Code != http.StatusOK {
		t.Fatalf("draft = %d: %s", w.Code, w.Body.String())
	}

	w = e.do(jsonRequest(http.MethodPost, "/api/submissions", service.SubmitRequest{CaseID: c.ID, Response: "raise prices"}), "u1", false)
	var result service.SubmitResult
	decode(t, w, &result)
	if w.Code != http.StatusOK || result.State != service.StateSucceeded || result.XPGained != 20 || !result.StreakCreated {
		t.Fatalf("submit = %d, %+v", w.Code, result)
	}
	if result.Stats == nil || result.Stats.CasesSolved != 1 || result.Stats.TotalScore != 20 {
		t.Errorf("stats = %+v", result.Stats)
	}

	var subs int64
	e.db.Model(&model.Submission{}).Where("user_id = ?", "u1").Count(&subs)
	if subs != 1 {
		t.Errorf("submissions = %d, want 1", subs)
	}

	w = e.do(jsonRequest(http.MethodPost, "/api/submissions", service.SubmitRequest{CaseID: "missing", Response: "x"}), "u1", false)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown case = %d, want 404", w.Code)
	}
}

func TestLeaderboardAndProfileAPI(t *testing.T) {
	e := newEnv(t)
	e.db.Create(&model.UserStats{UserID: "u1", TotalScore: 30})
	e.db.Create(&model.UserStats{UserID: "u2", TotalScore: 50})
	e.db.Create(&model.UserProfile{UserID: "u1", DisplayName: "Ada"})

	w := e.do(httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=500", nil), "u1", false)
	var entries []model.LeaderboardEntry
	decode(t, w, &entries)
	if len(entries) != 2 || entries[0].UserID != "u2" || entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("leaderboard = %+v", entries)
	}

	w = e.do(jsonRequest(http.MethodPut, "/api/profile", service.UpdateProfileRequest{DisplayName: " "}), "u1", false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty name = %d, want 400", w.Code)
	}

	w = e.do(jsonRequest(http.MethodPut, "/api/profile", service.UpdateProfileRequest{DisplayName: "Ada L", Bio: "hi"}), "u1", false)
	var p model.UserProfile
	decode(t, w, &p)
	if w.Code != http.StatusOK || p.DisplayName != "Ada L" {
		t.Errorf("update = %d, %+v", w.Code, p)
	}

	w = e.do(multipartRequest(t, "/api/profile/avatar", nil, map[string]string{"file": "me.png"}), "u1", false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-image content type = %d, want 400", w.Code)
	}

	w = e.do(httptest.NewRequest(http.MethodGet, "/api/analytics?period=decade", nil), "u1", false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad period = %d, want 400", w.Code)
	}

	w = e.do(httptest.NewRequest(http.MethodGet, "/api/profile", nil), "u1", false)
	var view service.ProfileView
	decode(t, w, &view)
	if view.Initials != "AL" || view.Profile == nil || view.Profile.Bio != "hi" {
		t.Errorf("profile view = %+v", view)
	}
}
