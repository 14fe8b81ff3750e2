// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"pressroom/internal/models"
)

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/categories"},
		{http.MethodGet, "/categories/new"},
		{http.MethodPost, "/categories"},
		{http.MethodGet, "/categories/1"},
		{http.MethodGet, "/categories/1/edit"},
		{http.MethodPatch, "/categories/1"},
		{http.MethodDelete, "/categories/1"},
		{http.MethodGet, "/posts"},
		{http.MethodPost, "/posts"},
		{http.MethodDelete, "/posts/1"},
	}

	for _, p := range paths {
		rec := env.do(t, p.method, p.path, nil, nil)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s %s: got status %d, want 303", p.method, p.path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s %s: got redirect to %q, want /login", p.method, p.path, loc)
		}
	}
}

func TestStandardUserForbiddenEverywhere(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "News")
	post := env.seedPost(t, "First", cat.ID)
	cookie := env.loginAs(t, models.RoleStandard)

	paths := []struct {
		method, path string
		form         url.Values
	}{
		{http.MethodGet, "/categories", nil},
		{http.MethodGet, "/categories/new", nil},
		{http.MethodPost, "/categories", url.Values{"name": {"X"}}},
		{http.MethodGet, "/categories/" + itoa(cat.ID), nil},
		{http.MethodGet, "/categories/" + itoa(cat.ID) + "/edit", nil},
		{http.MethodPatch, "/categories/" + itoa(cat.ID), url.Values{"name": {"X"}}},
		{http.MethodDelete, "/categories/" + itoa(cat.ID), nil},
		{http.MethodGet, "/posts", nil},
		{http.MethodGet, "/posts/new", nil},
		{http.MethodPost, "/posts", url.Values{"title": {"X"}, "text": {"X"}, "category_id": {itoa(cat.ID)}}},
		{http.MethodGet, "/posts/" + itoa(post.ID), nil},
		{http.MethodGet, "/posts/" + itoa(post.ID) + "/edit", nil},
		{http.MethodPatch, "/posts/" + itoa(post.ID), url.Values{"title": {"X"}, "text": {"X"}, "category_id": {itoa(cat.ID)}}},
		{http.MethodDelete, "/posts/" + itoa(post.ID), nil},
	}

	for _, p := range paths {
		rec := env.do(t, p.method, p.path, p.form, cookie)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s: got status %d, want 403", p.method, p.path, rec.Code)
		}
	}

	// Nothing was mutated.
	got, _ := env.Mem.Categories().FindByID(context.Background(), cat.ID)
	if got == nil || got.Name != "News" {
		t.Errorf("category changed by forbidden request: %+v", got)
	}
	gotPost, _ := env.Mem.Posts().FindByID(context.Background(), post.ID)
	if gotPost == nil || gotPost.Title != "First" {
		t.Errorf("post changed by forbidden request: %+v", gotPost)
	}
}

func TestAdminCreatesCategory(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAs(t, models.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/categories", url.Values{"name": {"Test Category"}}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/categories" {
		t.Fatalf("got redirect to %q, want /categories", loc)
	}

	cats, _ := env.Mem.Categories().List(context.Background())
	if len(cats) != 1 || cats[0].Name != "Test Category" {
		t.Fatalf("stored categories = %+v, want one named Test Category", cats)
	}

	// Success flash is shown on the next page load and then consumed.
	list := env.do(t, http.MethodGet, "/categories", nil, cookie)
	if !strings.Contains(list.Body.String(), "Category created successfully.") {
		t.Error("flash message missing from list page")
	}
	again := env.do(t, http.MethodGet, "/categories", nil, cookie)
	if strings.Contains(again.Body.String(), "Category created successfully.") {
		t.Error("flash message shown twice")
	}
}

func TestCategoryCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAs(t, models.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/categories", url.Values{"name": {""}}, cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Name is required.") {
		t.Error("name error missing from re-rendered form")
	}

	cats, _ := env.Mem.Categories().List(context.Background())
	if len(cats) != 0 {
		t.Fatalf("invalid form created a category: %+v", cats)
	}
}

func TestPostCreateValidationReportsOnlyViolatedFields(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "News")
	cookie := env.loginAs(t, models.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/posts", url.Values{
		"title":       {""},
		"text":        {"some body"},
		"category_id": {itoa(cat.ID)},
	}, cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Title is required.") {
		t.Error("title error missing")
	}
	if strings.Contains(body, "Text is required.") {
		t.Error("text error reported although text was valid")
	}
	if strings.Contains(body, "Category is required.") || strings.Contains(body, "does not exist") {
		t.Error("category error reported although category was valid")
	}
}

func TestPostCreateRejectsMissingCategory(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAs(t, models.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/posts", url.Values{
		"title":       {"Hello"},
		"text":        {"World"},
		"category_id": {"9999"},
	}, cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The selected category does not exist.") {
		t.Error("missing-category error not shown")
	}

	posts, _ := env.Mem.Posts().ListWithCategory(context.Background())
	if len(posts) != 0 {
		t.Fatalf("invalid form created a post: %+v", posts)
	}
}

func TestDeleteCategoryBlockedByPosts(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "News")
	post := env.seedPost(t, "First", cat.ID)
	cookie := env.loginAs(t, models.RoleAdmin)

	rec := env.do(t, http.MethodDelete, "/categories/"+itoa(cat.ID), nil, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want 303", rec.Code)
	}

	// Category and post both survive.
	gotCat, _ := env.Mem.Categories().FindByID(context.Background(), cat.ID)
	if gotCat == nil {
		t.Fatal("category was deleted despite dependents")
	}
	gotPost, _ := env.Mem.Posts().FindByID(context.Background(), post.ID)
	if gotPost == nil {
		t.Fatal("post disappeared")
	}

	list := env.do(t, http.MethodGet, "/categories", nil, cookie)
	if !strings.Contains(list.Body.String(), "Category cannot be deleted because it still has posts.") {
		t.Error("blocked-delete flash missing")
	}
}

func TestDeleteEmptyCategorySucceeds(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "Empty")
	cookie := env.loginAs(t, models.RoleAdmin)

	rec := env.do(t, http.MethodDelete, "/categories/"+itoa(cat.ID), nil, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want 303", rec.Code)
	}

	got, _ := env.Mem.Categories().FindByID(context.Background(), cat.ID)
	if got != nil {
		t.Fatalf("category still exists after delete: %+v", got)
	}
}

func TestUpdatePostChangesOnlyTargetRow(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "News")
	target := env.seedPost(t, "Target", cat.ID)
	bystander := env.seedPost(t, "Bystander", cat.ID)
	cookie := env.loginAs(t, models.RoleAdmin)

	form := url.Values{
		"title":       {"Renamed"},
		"text":        {"new body"},
		"category_id": {itoa(cat.ID)},
	}
	rec := env.do(t, http.MethodPatch, "/posts/"+itoa(target.ID), form, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want 303", rec.Code)
	}

	gotTarget, _ := env.Mem.Posts().FindByID(context.Background(), target.ID)
	if gotTarget.Title != "Renamed" || gotTarget.Text != "new body" {
		t.Errorf("target not updated: %+v", gotTarget)
	}
	gotBystander, _ := env.Mem.Posts().FindByID(context.Background(), bystander.ID)
	if gotBystander.Title != "Bystander" {
		t.Errorf("bystander changed: %+v", gotBystander)
	}

	// Applying the same update again leaves the same state behind.
	rec = env.do(t, http.MethodPatch, "/posts/"+itoa(target.ID), form, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("repeat update: got status %d, want 303", rec.Code)
	}
	posts, _ := env.Mem.Posts().ListWithCategory(context.Background())
	if len(posts) != 2 {
		t.Fatalf("repeat update changed row count: %d", len(posts))
	}
	gotTarget, _ = env.Mem.Posts().FindByID(context.Background(), target.ID)
	if gotTarget.Title != "Renamed" || gotTarget.Text != "new body" {
		t.Errorf("repeat update altered state: %+v", gotTarget)
	}
}

func TestMissingAndMalformedIDs(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAs(t, models.RoleAdmin)

	rec := env.do(t, http.MethodGet, "/categories/9999", nil, cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing category: got %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/posts/abc", nil, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: got %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/posts/9999", nil, cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleting missing post: got %d, want 404", rec.Code)
	}
}

func TestHTMXDeleteGetsRedirectHeader(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory(t, "Empty")
	cookie := env.loginAs(t, models.RoleAdmin)

	rec := env.doHTMX(t, http.MethodDelete, "/categories/"+itoa(cat.ID), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if loc := rec.Header().Get("HX-Redirect"); loc != "/categories" {
		t.Fatalf("got HX-Redirect %q, want /categories", loc)
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
