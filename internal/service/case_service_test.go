package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"caseforge_backend/internal/config"
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/util"
)

func TestSearchCases(t *testing.T) {
	cases := []model.Case{
		{Title: "Coffee Chain Expansion", Domain: "Strategy", Tags: []string{"retail", "growth"}},
		{Title: "Plant Throughput", Domain: "Operations", Tags: []string{"lean"}},
		{Title: "Pricing a SaaS tier", Domain: "Marketing"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns input", "", []string{"Coffee Chain Expansion", "Plant Throughput", "Pricing a SaaS tier"}},
		{"blank query returns input", "   ", []string{"Coffee Chain Expansion", "Plant Throughput", "Pricing a SaaS tier"}},
		{"title is case insensitive", "COFFEE", []string{"Coffee Chain Expansion"}},
		{"domain matches", "operations", []string{"Plant Throughput"}},
		{"tag matches", "Lean", []string{"Plant Throughput"}},
		{"substring across fields", "ing", []string{"Pricing a SaaS tier"}},
		{"no match", "biotech", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := caseTitles(SearchCases(cases, tt.query))
			if !sameStrings(got, tt.want) {
				t.Errorf("SearchCases(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterByTags(t *testing.T) {
	cases := []model.Case{
		{Title: "a", Tags: []string{"retail"}},
		{Title: "b", Tags: []string{"lean", "retail"}},
		{Title: "c"},
	}

	if got := caseTitles(FilterByTags(cases, nil)); len(got) != 3 {
		t.Errorf("no tags should keep everything, got %v", got)
	}
	if got := caseTitles(FilterByTags(cases, []string{"LEAN"})); !sameStrings(got, []string{"b"}) {
		t.Errorf("FilterByTags(lean) = %v", got)
	}
	if got := caseTitles(FilterByTags(cases, []string{"retail", "lean"})); !sameStrings(got, []string{"a", "b"}) {
		t.Errorf("FilterByTags(retail, lean) = %v", got)
	}
}

func TestListCasesCombinesFilters(t *testing.T) {
	f := newFixture(t)
	f.seedCase(t, 1, "old-strategy", "Strategy", 2, "growth")
	f.seedCase(t, 2, "new-strategy", "Strategy", 2, "retail")
	f.seedCase(t, 3, "ops", "Operations", 2, "retail")
	f.seedCase(t, 4, "hard-strategy", "Strategy", 3, "retail")

	svc := NewCaseService(f.cases, nil)
	ctx := context.Background()

	got := caseTitles(svc.ListCases(ctx, CaseQuery{Domain: "Strategy", Difficulty: 2}))
	if !sameStrings(got, []string{"new-strategy", "old-strategy"}) {
		t.Errorf("domain+difficulty = %v", got)
	}

	got = caseTitles(svc.ListCases(ctx, CaseQuery{Domain: "Strategy", Tags: []string{"retail"}}))
	if !sameStrings(got, []string{"hard-strategy", "new-strategy"}) {
		t.Errorf("domain+tags = %v", got)
	}

	got = caseTitles(svc.ListCases(ctx, CaseQuery{Search: "OPS"}))
	if !sameStrings(got, []string{"ops"}) {
		t.Errorf("search = %v", got)
	}

	if d := svc.Domains(ctx); !sameStrings(d, []string{"Operations", "Strategy"}) {
		t.Errorf("Domains() = %v", d)
	}
}

func TestGetCase(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedCase(t, 1, "market-entry", "Strategy", 1)
	svc := NewCaseService(f.cases, nil)
	ctx := context.Background()

	byID, err := svc.GetCase(ctx, seeded.ID)
	if err != nil || byID.Title != "market-entry" {
		t.Fatalf("GetCase(id) = %v, %v", byID, err)
	}

	bySlug, err := svc.GetCase(ctx, "market-entry")
	if err != nil || bySlug.ID != seeded.ID {
		t.Fatalf("GetCase(slug) = %v, %v", bySlug, err)
	}

	if _, err := svc.GetCase(ctx, "missing"); !errors.Is(err, util.ErrCaseNotFound) {
		t.Errorf("GetCase(missing) error = %v, want ErrCaseNotFound", err)
	}
}

func TestGetCaseCacheExpires(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedCase(t, 1, "market-entry", "Strategy", 1)
	svc := NewCaseService(f.cases, nil)
	now := epoch
	svc.Now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := svc.GetCase(ctx, seeded.ID); err != nil {
		t.Fatalf("GetCase() error = %v", err)
	}
	f.db.Model(&model.Case{}).Where("id = ?", seeded.ID).Update("title", "Market Entry v2")

	cached, _ := svc.GetCase(ctx, seeded.ID)
	if cached.Title != "market-entry" {
		t.Errorf("within TTL title = %q, want cached value", cached.Title)
	}

	now = now.Add(caseCacheTTL + time.Second)
	fresh, err := svc.GetCase(ctx, seeded.ID)
	if err != nil || fresh.Title != "Market Entry v2" {
		t.Errorf("after TTL = %v, %v, want reloaded title", fresh, err)
	}
	bySlug, _ := svc.GetCase(ctx, "market-entry")
	if bySlug.Title != "Market Entry v2" {
		t.Errorf("slug entry after TTL title = %q", bySlug.Title)
	}
}

func TestCreateCaseValidation(t *testing.T) {
	valid := func() *CreateCaseRequest {
		return &CreateCaseRequest{
			Title:              "Airline Turnaround",
			Domain:             "Operations",
			Brief:              "Cut turnaround time",
			EvaluationCriteria: "Structure, insight",
			Difficulty:         2,
		}
	}

	tests := []struct {
		name   string
		mutate func(r *CreateCaseRequest)
		want   error
	}{
		{"missing title", func(r *CreateCaseRequest) { r.Title = " " }, util.ErrMissingCaseFields},
		{"missing criteria", func(r *CreateCaseRequest) { r.EvaluationCriteria = "" }, util.ErrMissingCaseFields},
		{"missing difficulty", func(r *CreateCaseRequest) { r.Difficulty = 0 }, util.ErrMissingCaseFields},
		{"difficulty out of range", func(r *CreateCaseRequest) { r.Difficulty = 4 }, util.ErrInvalidDifficulty},
	}

	f := newFixture(t)
	svc := NewCaseService(f.cases, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			if _, err := svc.CreateCase(context.Background(), req, nil); !errors.Is(err, tt.want) {
				t.Fatalf("CreateCase() error = %v, want %v", err, tt.want)
			}
		})
	}

	if n := f.count(t, &model.Case{}, "1 = 1"); n != 0 {
		t.Errorf("rejected requests wrote %d cases", n)
	}
}

func TestCreateCaseSlugAndExhibit(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: dir}})
	svc := NewCaseService(f.cases, storage)
	ctx := context.Background()

	req := &CreateCaseRequest{
		Title:              "Airline Turnaround",
		Domain:             "Operations",
		Brief:              "Cut turnaround time",
		EvaluationCriteria: "Structure, insight",
		Difficulty:         2,
		EstimatedTime:      ptr(45),
		Tags:               []string{"aviation, ops", "aviation"},
	}

	first, err := svc.CreateCase(ctx, req, &FileUpload{
		Filename:    "deck.PDF",
		ContentType: util.MimePDF,
		Size:        3,
		Reader:      bytes.NewReader([]byte("pdf")),
	})
	if err != nil {
		t.Fatalf("CreateCase() error = %v", err)
	}
	if first.Slug != "airline-turnaround" {
		t.Errorf("slug = %q", first.Slug)
	}
	if !first.IsActive {
		t.Error("new case should be active")
	}
	if !sameStrings(first.Tags, []string{"aviation", "ops"}) {
		t.Errorf("tags = %v", first.Tags)
	}
	if !strings.HasPrefix(first.ExhibitURL, "/uploads/cases/airline-turnaround/") || !strings.HasSuffix(first.ExhibitURL, ".pdf") {
		t.Errorf("exhibit url = %q", first.ExhibitURL)
	}

	second, err := svc.CreateCase(ctx, req, nil)
	if err != nil {
		t.Fatalf("second CreateCase() error = %v", err)
	}
	if second.Slug == first.Slug || !strings.HasPrefix(second.Slug, "airline-turnaround-") {
		t.Errorf("duplicate title slug = %q", second.Slug)
	}

	_, err = svc.CreateCase(ctx, req, &FileUpload{Filename: "run.exe", Reader: bytes.NewReader(nil)})
	if !errors.Is(err, util.ErrUnsupportedFile) {
		t.Errorf("exe exhibit error = %v", err)
	}
}
