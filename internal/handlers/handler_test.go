// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against the in-memory store and a miniredis-backed session
// store, so no external services are needed.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pressroom/internal/actions"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/render"
	"pressroom/internal/session"
	"pressroom/internal/store"
)

// testEnv bundles everything a handler test needs.
type testEnv struct {
	Mem      *store.Memory
	Sessions *session.Store
	Mux      *chi.Mux
}

// newTestEnv wires an Admin handler group over in-memory repositories and
// mounts its routes the same way the real router does.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := session.NewStore(client, false)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	mem := store.NewMemory()
	cats := mem.Categories()
	posts := mem.Posts()
	acts := actions.New(cats, posts)
	admin := NewAdmin(renderer, sessions, cats, posts, acts)

	mux := chi.NewRouter()
	mux.Use(middleware.LoadSession(sessions))

	mux.Get("/categories", admin.CategoriesList)
	mux.Get("/categories/new", admin.CategoryNew)
	mux.Post("/categories", admin.CategoryCreate)
	mux.Get("/categories/{id}", admin.CategoryShow)
	mux.Get("/categories/{id}/edit", admin.CategoryEdit)
	mux.Patch("/categories/{id}", admin.CategoryUpdate)
	mux.Delete("/categories/{id}", admin.CategoryDelete)

	mux.Get("/posts", admin.PostsList)
	mux.Get("/posts/new", admin.PostNew)
	mux.Post("/posts", admin.PostCreate)
	mux.Get("/posts/{id}", admin.PostShow)
	mux.Get("/posts/{id}/edit", admin.PostEdit)
	mux.Patch("/posts/{id}", admin.PostUpdate)
	mux.Delete("/posts/{id}", admin.PostDelete)

	return &testEnv{Mem: mem, Sessions: sessions, Mux: mux}
}

// loginAs creates a real session in the store and returns its cookie.
func (e *testEnv) loginAs(t *testing.T, role models.Role) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	_, err := e.Sessions.Create(context.Background(), rec, &session.Data{
		UserID:      uuid.New(),
		Email:       string(role) + "@pressroom.local",
		DisplayName: "Test " + string(role),
		Role:        string(role),
		TwoFADone:   true,
	})
	if err != nil {
		t.Fatalf("session create: %v", err)
	}

	cookies := rec.Result().Cookies()
	for _, c := range cookies {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

// do performs a request against the test mux.
func (e *testEnv) do(t *testing.T, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.Mux.ServeHTTP(rec, req)
	return rec
}

// doHTMX performs a request with the HX-Request header set.
func (e *testEnv) doHTMX(t *testing.T, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("HX-Request", "true")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.Mux.ServeHTTP(rec, req)
	return rec
}

// seedCategory inserts a category directly into the memory store.
func (e *testEnv) seedCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := e.Mem.Categories().Insert(context.Background(), &models.Category{Name: name})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

// seedPost inserts a post directly into the memory store.
func (e *testEnv) seedPost(t *testing.T, title string, categoryID int64) *models.Post {
	t.Helper()
	p, err := e.Mem.Posts().Insert(context.Background(), &models.Post{
		Title:      title,
		Text:       "body of " + title,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}
