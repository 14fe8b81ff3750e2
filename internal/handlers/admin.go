// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Pressroom admin
// panel. Handlers are grouped by concern (admin, auth) and receive their
// dependencies through the handler struct. Every mutating handler runs
// the same pipeline: authorize against the gate, parse and load the
// target, validate the form, then call the mutation action.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pressroom/internal/actions"
	"pressroom/internal/authz"
	"pressroom/internal/forms"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/render"
	"pressroom/internal/session"
	"pressroom/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer   *render.Renderer
	sessions   *session.Store
	categories actions.CategoryRepo
	posts      actions.PostRepo
	actions    *actions.Actions
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, categories actions.CategoryRepo, posts actions.PostRepo, acts *actions.Actions) *Admin {
	return &Admin{
		renderer:   renderer,
		sessions:   sessions,
		categories: categories,
		posts:      posts,
		actions:    acts,
	}
}

// authorize runs the gate for the current principal. On denial it writes
// the response (redirect for anonymous, 403 otherwise) and returns false.
func (a *Admin) authorize(w http.ResponseWriter, r *http.Request, op authz.Operation, entity authz.Entity) bool {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		redirect(w, r, "/login")
		return false
	}

	if authz.Decide(models.Role(sess.Role), op, entity) != authz.Allowed {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}

	return true
}

// redirect sends a 303 See Other, or an HX-Redirect header for HTMX
// requests so the browser performs a full navigation.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// pathID parses the {id} route parameter. Writes a 400 and returns false
// when the value is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// flash queues a one-time message; a lost flash never blocks the response.
func (a *Admin) flash(r *http.Request, kind, msg string) {
	if err := a.sessions.AddFlash(r.Context(), r, session.Flash{Type: kind, Message: msg}); err != nil {
		slog.Warn("flash not stored", "error", err)
	}
}

// --- Categories CRUD ---

// CategoriesList renders the category management page.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpList, authz.EntityCategory) {
		return
	}

	cats, err := a.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "categories_list", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Flashes: a.sessions.PopFlashes(r.Context(), r),
		Data:    map[string]any{"Categories": cats},
	})
}

// CategoryNew renders the empty category form.
func (a *Admin) CategoryNew(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpCreateForm, authz.EntityCategory) {
		return
	}

	a.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "New Category",
		Section: "categories",
		Data:    map[string]any{"Heading": "New category", "Name": ""},
	})
}

// CategoryCreate validates the submitted form and inserts the category.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpCreate, authz.EntityCategory) {
		return
	}

	form := forms.CategoryForm{Name: r.FormValue("name")}
	in, errs := form.Validate()
	if errs.Any() {
		a.renderer.PageWithStatus(w, r, http.StatusUnprocessableEntity, "category_form", &render.PageData{
			Title:   "New Category",
			Section: "categories",
			Errors:  errs,
			Data:    map[string]any{"Heading": "New category", "Name": form.Name},
		})
		return
	}

	if _, err := a.actions.CreateCategory(r.Context(), in); err != nil {
		slog.Error("create category failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.flash(r, "success", "Category created successfully.")
	redirect(w, r, "/categories")
}

// CategoryShow renders a single category.
func (a *Admin) CategoryShow(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpView, authz.EntityCategory) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	cat, err := a.findCategory(w, r, id)
	if cat == nil || err != nil {
		return
	}

	a.renderer.Page(w, r, "category_show", &render.PageData{
		Title:   cat.Name,
		Section: "categories",
		Flashes: a.sessions.PopFlashes(r.Context(), r),
		Data:    map[string]any{"Category": cat},
	})
}

// CategoryEdit renders the edit form pre-filled with the category.
func (a *Admin) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpEditForm, authz.EntityCategory) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	cat, err := a.findCategory(w, r, id)
	if cat == nil || err != nil {
		return
	}

	a.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "Edit Category",
		Section: "categories",
		Data:    map[string]any{"Heading": "Edit category", "Category": cat, "Name": cat.Name},
	})
}

// CategoryUpdate validates the form and applies the update.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpUpdate, authz.EntityCategory) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	cat, err := a.findCategory(w, r, id)
	if cat == nil || err != nil {
		return
	}

	form := forms.CategoryForm{Name: r.FormValue("name")}
	in, errs := form.Validate()
	if errs.Any() {
		a.renderer.PageWithStatus(w, r, http.StatusUnprocessableEntity, "category_form", &render.PageData{
			Title:   "Edit Category",
			Section: "categories",
			Errors:  errs,
			Data:    map[string]any{"Heading": "Edit category", "Category": cat, "Name": form.Name},
		})
		return
	}

	if err := a.actions.EditCategory(r.Context(), cat, in); err != nil {
		slog.Error("update category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.flash(r, "success", "Category updated successfully.")
	redirect(w, r, "/categories")
}

// CategoryDelete removes a category unless posts still reference it.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpDelete, authz.EntityCategory) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	cat, err := a.findCategory(w, r, id)
	if cat == nil || err != nil {
		return
	}

	outcome, err := a.actions.DeleteCategory(r.Context(), cat)
	if err != nil {
		slog.Error("delete category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if outcome == store.BlockedByDependents {
		a.flash(r, "error", "Category cannot be deleted because it still has posts.")
	} else {
		a.flash(r, "success", "Category deleted successfully.")
	}
	redirect(w, r, "/categories")
}

// findCategory loads the category or writes a 404. Errors are logged and
// answered with a 500; both failure modes return a nil category.
func (a *Admin) findCategory(w http.ResponseWriter, r *http.Request, id int64) (*models.Category, error) {
	cat, err := a.categories.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, err
	}
	if cat == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, nil
	}
	return cat, nil
}

// --- Posts CRUD ---

// PostsList renders the post management page.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpList, authz.EntityPost) {
		return
	}

	posts, err := a.posts.ListWithCategory(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "posts_list", &render.PageData{
		Title:   "Posts",
		Section: "posts",
		Flashes: a.sessions.PopFlashes(r.Context(), r),
		Data:    map[string]any{"Posts": posts},
	})
}

// PostNew renders the empty post form with the category dropdown.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpCreateForm, authz.EntityPost) {
		return
	}

	cats, err := a.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "New Post",
		Section: "posts",
		Data: map[string]any{
			"Heading": "New post", "Categories": cats,
			"Title": "", "Text": "", "CategoryID": "",
		},
	})
}

// PostCreate validates the submitted form and inserts the post.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpCreate, authz.EntityPost) {
		return
	}

	form := forms.PostForm{
		Title:      r.FormValue("title"),
		Text:       r.FormValue("text"),
		CategoryID: r.FormValue("category_id"),
	}

	in, errs, err := form.Validate(r.Context(), a.categories)
	if err != nil {
		slog.Error("post validation lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if errs.Any() {
		a.renderPostForm(w, r, http.StatusUnprocessableEntity, "New Post", "New post", nil, form, errs)
		return
	}

	if _, err := a.actions.CreatePost(r.Context(), in); err != nil {
		slog.Error("create post failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.flash(r, "success", "Post created successfully.")
	redirect(w, r, "/posts")
}

// PostShow renders a single post.
func (a *Admin) PostShow(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpView, authz.EntityPost) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := a.findPost(w, r, id)
	if post == nil || err != nil {
		return
	}

	a.renderer.Page(w, r, "post_show", &render.PageData{
		Title:   post.Title,
		Section: "posts",
		Flashes: a.sessions.PopFlashes(r.Context(), r),
		Data:    map[string]any{"Post": post},
	})
}

// PostEdit renders the edit form pre-filled with the post.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpEditForm, authz.EntityPost) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := a.findPost(w, r, id)
	if post == nil || err != nil {
		return
	}

	form := forms.PostForm{
		Title:      post.Title,
		Text:       post.Text,
		CategoryID: strconv.FormatInt(post.CategoryID, 10),
	}
	a.renderPostForm(w, r, http.StatusOK, "Edit Post", "Edit post", post, form, nil)
}

// PostUpdate validates the form and applies the update.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpUpdate, authz.EntityPost) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := a.findPost(w, r, id)
	if post == nil || err != nil {
		return
	}

	form := forms.PostForm{
		Title:      r.FormValue("title"),
		Text:       r.FormValue("text"),
		CategoryID: r.FormValue("category_id"),
	}

	in, errs, err := form.Validate(r.Context(), a.categories)
	if err != nil {
		slog.Error("post validation lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if errs.Any() {
		a.renderPostForm(w, r, http.StatusUnprocessableEntity, "Edit Post", "Edit post", post, form, errs)
		return
	}

	if err := a.actions.EditPost(r.Context(), post, in); err != nil {
		slog.Error("update post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.flash(r, "success", "Post updated successfully.")
	redirect(w, r, "/posts")
}

// PostDelete removes a post.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r, authz.OpDelete, authz.EntityPost) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := a.findPost(w, r, id)
	if post == nil || err != nil {
		return
	}

	if err := a.actions.DeletePost(r.Context(), post); err != nil {
		slog.Error("delete post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.flash(r, "success", "Post deleted successfully.")
	redirect(w, r, "/posts")
}

// findPost loads the post or writes a 404.
func (a *Admin) findPost(w http.ResponseWriter, r *http.Request, id int64) (*models.Post, error) {
	post, err := a.posts.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, err
	}
	if post == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, nil
	}
	return post, nil
}

// renderPostForm renders the post form with the category dropdown and the
// submitted values preserved.
func (a *Admin) renderPostForm(w http.ResponseWriter, r *http.Request, status int, title, heading string, post *models.Post, form forms.PostForm, errs forms.Errors) {
	cats, err := a.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.PageWithStatus(w, r, status, "post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Errors:  errs,
		Data: map[string]any{
			"Heading":    heading,
			"Categories": cats,
			"Post":       post,
			"Title":      form.Title,
			"Text":       form.Text,
			"CategoryID": form.CategoryID,
		},
	})
}
