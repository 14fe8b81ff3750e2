// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"pressroom/internal/models"
)

func TestPostCRUD(t *testing.T) {
	db := testDB(t)
	cats := NewCategoryStore(db)
	posts := NewPostStore(db)
	ctx := context.Background()

	cat, err := cats.Insert(ctx, &models.Category{Name: "Post CRUD Category"})
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM categories WHERE id = $1`, cat.ID) })

	created, err := posts.Insert(ctx, &models.Post{
		Title:      "Integration Post",
		Text:       "post body",
		CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("insert post: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM posts WHERE id = $1`, created.ID) })

	found, err := posts.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.Title != "Integration Post" || found.CategoryID != cat.ID {
		t.Fatalf("found = %+v", found)
	}

	found.Title = "Renamed Post"
	found.Text = "new body"
	if err := posts.Update(ctx, found); err != nil {
		t.Fatalf("update: %v", err)
	}
	found, _ = posts.FindByID(ctx, created.ID)
	if found.Title != "Renamed Post" || found.Text != "new body" {
		t.Fatalf("update not applied: %+v", found)
	}

	if err := posts.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	found, err = posts.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if found != nil {
		t.Fatalf("post still present after delete: %+v", found)
	}
}

func TestPostListJoinsCategoryName(t *testing.T) {
	db := testDB(t)
	cats := NewCategoryStore(db)
	posts := NewPostStore(db)
	ctx := context.Background()

	cat, err := cats.Insert(ctx, &models.Category{Name: "Joined Category"})
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	post, err := posts.Insert(ctx, &models.Post{
		Title:      "Joined Post",
		Text:       "body",
		CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("insert post: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM posts WHERE id = $1`, post.ID)
		db.Exec(`DELETE FROM categories WHERE id = $1`, cat.ID)
	})

	list, err := posts.ListWithCategory(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	for _, p := range list {
		if p.ID == post.ID {
			if p.CategoryName != "Joined Category" {
				t.Fatalf("CategoryName = %q, want Joined Category", p.CategoryName)
			}
			return
		}
	}
	t.Fatal("inserted post missing from list")
}
