// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package actions implements the mutation layer between handlers and
// the store. Each action takes already-validated input, performs exactly
// one atomic store mutation, and holds no state across calls. Actions
// depend on repository interfaces rather than the concrete Postgres
// stores, so tests can substitute in-memory fakes.
package actions

import (
	"context"

	"pressroom/internal/forms"
	"pressroom/internal/models"
	"pressroom/internal/store"
)

// CategoryRepo is the category persistence surface the admin panel needs.
// Implemented by store.CategoryStore.
type CategoryRepo interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id int64) (store.DeleteOutcome, error)
}

// PostRepo is the post persistence surface the admin panel needs.
// Implemented by store.PostStore.
type PostRepo interface {
	ListWithCategory(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	Insert(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id int64) error
}

// Actions bundles the mutation actions for categories and posts.
type Actions struct {
	categories CategoryRepo
	posts      PostRepo
}

// New creates the action set over the given repositories.
func New(categories CategoryRepo, posts PostRepo) *Actions {
	return &Actions{categories: categories, posts: posts}
}

// CreateCategory inserts a new category from validated input and returns
// the stored row.
func (a *Actions) CreateCategory(ctx context.Context, in forms.CategoryInput) (*models.Category, error) {
	return a.categories.Insert(ctx, &models.Category{Name: in.Name})
}

// EditCategory applies validated field updates to an already-fetched category.
func (a *Actions) EditCategory(ctx context.Context, cat *models.Category, in forms.CategoryInput) error {
	cat.Name = in.Name
	return a.categories.Update(ctx, cat)
}

// DeleteCategory removes a category. When posts still reference it the
// store reports BlockedByDependents and nothing is deleted.
func (a *Actions) DeleteCategory(ctx context.Context, cat *models.Category) (store.DeleteOutcome, error) {
	return a.categories.Delete(ctx, cat.ID)
}

// CreatePost inserts a new post from validated input and returns the
// stored row.
func (a *Actions) CreatePost(ctx context.Context, in forms.PostInput) (*models.Post, error) {
	return a.posts.Insert(ctx, &models.Post{
		Title:      in.Title,
		Text:       in.Text,
		CategoryID: in.CategoryID,
	})
}

// EditPost applies validated field updates to an already-fetched post.
func (a *Actions) EditPost(ctx context.Context, post *models.Post, in forms.PostInput) error {
	post.Title = in.Title
	post.Text = in.Text
	post.CategoryID = in.CategoryID
	return a.posts.Update(ctx, post)
}

// DeletePost removes a post. Posts have no dependents, so the delete is
// unconditional.
func (a *Actions) DeletePost(ctx context.Context, post *models.Post) error {
	return a.posts.Delete(ctx, post.ID)
}
