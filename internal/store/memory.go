// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// memory.go provides an in-memory implementation of the category and
// post repositories. It mirrors the Postgres stores' behavior —
// including the dependents check on category deletion — so action and
// handler tests run without a database.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"pressroom/internal/models"
)

// Memory holds categories and posts in process memory behind one mutex.
type Memory struct {
	mu             sync.Mutex
	categories     map[int64]models.Category
	posts          map[int64]models.Post
	nextCategoryID int64
	nextPostID     int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		categories:     make(map[int64]models.Category),
		posts:          make(map[int64]models.Post),
		nextCategoryID: 1,
		nextPostID:     1,
	}
}

// Categories returns a view implementing the category repository surface.
func (m *Memory) Categories() *MemoryCategoryStore { return &MemoryCategoryStore{m: m} }

// Posts returns a view implementing the post repository surface.
func (m *Memory) Posts() *MemoryPostStore { return &MemoryPostStore{m: m} }

// MemoryCategoryStore implements the same method set as CategoryStore.
type MemoryCategoryStore struct {
	m *Memory
}

func (s *MemoryCategoryStore) List(_ context.Context) ([]models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	items := make([]models.Category, 0, len(s.m.categories))
	for _, c := range s.m.categories {
		for _, p := range s.m.posts {
			if p.CategoryID == c.ID {
				c.PostCount++
			}
		}
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *MemoryCategoryStore) FindByID(_ context.Context, id int64) (*models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	c, ok := s.m.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *MemoryCategoryStore) CategoryExists(_ context.Context, id int64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	_, ok := s.m.categories[id]
	return ok, nil
}

func (s *MemoryCategoryStore) Insert(_ context.Context, c *models.Category) (*models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	now := time.Now()
	stored := models.Category{
		ID:        s.m.nextCategoryID,
		Name:      c.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.m.nextCategoryID++
	s.m.categories[stored.ID] = stored
	return &stored, nil
}

func (s *MemoryCategoryStore) Update(_ context.Context, c *models.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	stored, ok := s.m.categories[c.ID]
	if !ok {
		return nil
	}
	stored.Name = c.Name
	stored.UpdatedAt = time.Now()
	s.m.categories[c.ID] = stored
	return nil
}

func (s *MemoryCategoryStore) Delete(_ context.Context, id int64) (DeleteOutcome, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, p := range s.m.posts {
		if p.CategoryID == id {
			return BlockedByDependents, nil
		}
	}
	delete(s.m.categories, id)
	return Deleted, nil
}

// MemoryPostStore implements the same method set as PostStore.
type MemoryPostStore struct {
	m *Memory
}

func (s *MemoryPostStore) ListWithCategory(_ context.Context) ([]models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	items := make([]models.Post, 0, len(s.m.posts))
	for _, p := range s.m.posts {
		if c, ok := s.m.categories[p.CategoryID]; ok {
			p.CategoryName = c.Name
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (s *MemoryPostStore) FindByID(_ context.Context, id int64) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	p, ok := s.m.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryPostStore) Insert(_ context.Context, p *models.Post) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	now := time.Now()
	stored := models.Post{
		ID:         s.m.nextPostID,
		Title:      p.Title,
		Text:       p.Text,
		CategoryID: p.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.m.nextPostID++
	s.m.posts[stored.ID] = stored
	return &stored, nil
}

func (s *MemoryPostStore) Update(_ context.Context, p *models.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	stored, ok := s.m.posts[p.ID]
	if !ok {
		return nil
	}
	stored.Title = p.Title
	stored.Text = p.Text
	stored.CategoryID = p.CategoryID
	stored.UpdatedAt = time.Now()
	s.m.posts[p.ID] = stored
	return nil
}

func (s *MemoryPostStore) Delete(_ context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	delete(s.m.posts, id)
	return nil
}
