package controller

import (
	"net/http"
	"strings"
	"testing"

	"caseforge_backend/internal/model"
)

func caseForm() map[string]string {
	return map[string]string{
		"title":               "Market Entry",
		"domain":              "Strategy",
		"brief":               "Should we enter Brazil?",
		"evaluation_criteria": "Structure and numbers",
		"difficulty":          "3",
		"estimated_time":      "",
		"tags":                "growth, latam",
	}
}

func TestAdminCreateCaseAPI(t *testing.T) {
	e := newEnv(t)

	w := e.do(multipartRequest(t, "/api/admin/cases", caseForm(), nil), "u1", false)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin = %d, want 403", w.Code)
	}

	missing := caseForm()
	delete(missing, "domain")
	w = e.do(multipartRequest(t, "/api/admin/cases", missing, nil), "root", true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing domain = %d, want 400", w.Code)
	}

	bad := caseForm()
	bad["difficulty"] = "5"
	w = e.do(multipartRequest(t, "/api/admin/cases", bad, nil), "root", true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("difficulty 5 = %d, want 400", w.Code)
	}

	var count int64
	e.db.Model(&model.Case{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected uploads wrote %d cases", count)
	}

	w = e.do(multipartRequest(t, "/api/admin/cases", caseForm(), map[string]string{"exhibit": "deck.pdf"}), "root", true)
	var created model.Case
	decode(t, w, &created)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	if created.Slug != "market-entry" || !created.IsActive || created.EstimatedTime != nil {
		t.Errorf("created = %+v", created)
	}
	if len(created.Tags) != 2 || !strings.HasPrefix(created.ExhibitURL, "/uploads/cases/market-entry/") {
		t.Errorf("tags = %v, exhibit = %q", created.Tags, created.ExhibitURL)
	}
}

func TestAdminPanelPage(t *testing.T) {
	e := newEnv(t)

	w := e.do(newGet("/admin/panel"), "u1", false)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Fatalf("non-admin panel = %d %q", w.Code, w.Header().Get("Location"))
	}

	missing := caseForm()
	missing["brief"] = ""
	w = e.do(multipartRequest(t, "/admin/panel", missing, nil), "root", true)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "please fill in all fields") {
		t.Errorf("missing brief = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="Market Entry"`) {
		t.Error("form values were not preserved")
	}

	w = e.do(multipartRequest(t, "/admin/panel", caseForm(), nil), "root", true)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Case uploaded successfully!") {
		t.Errorf("upload = %d: %s", w.Code, w.Body.String())
	}
}
