// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forms validates admin form submissions. Each form type checks
// its raw string values and returns either a typed input struct ready
// for a mutation action, or a map of per-field error messages. Every
// violated field is reported, not just the first one, so forms can show
// all problems at once.
package forms

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation limits for category and post fields.
const (
	maxNameLen  = 255
	maxTitleLen = 255
)

// Errors maps a form field name to its validation error message.
type Errors map[string]string

// Any reports whether at least one field failed validation.
func (e Errors) Any() bool { return len(e) > 0 }

// CategoryChecker answers referential-existence checks during validation.
// Satisfied by store.CategoryStore and by in-memory fakes in tests.
type CategoryChecker interface {
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

// CategoryInput is a validated category payload.
type CategoryInput struct {
	Name string
}

// CategoryForm holds raw form values for creating or updating a category.
// Create and update validate the same payload shape.
type CategoryForm struct {
	Name string
}

// Validate checks the category form and returns the validated input or
// the set of field errors.
func (f CategoryForm) Validate() (CategoryInput, Errors) {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required."
	} else if utf8.RuneCountInString(f.Name) > maxNameLen {
		errs["name"] = "Name is too long (max 255 characters)."
	}

	if errs.Any() {
		return CategoryInput{}, errs
	}
	return CategoryInput{Name: f.Name}, nil
}

// PostInput is a validated post payload.
type PostInput struct {
	Title      string
	Text       string
	CategoryID int64
}

// PostForm holds raw form values for creating or updating a post.
// CategoryID stays a string until validation so a non-numeric value is
// reported as a field error rather than a parse failure upstream.
type PostForm struct {
	Title      string
	Text       string
	CategoryID string
}

// Validate checks the post form. The category reference is verified
// against the store through the checker; a store failure is returned as
// the error value and is not a validation outcome.
func (f PostForm) Validate(ctx context.Context, categories CategoryChecker) (PostInput, Errors, error) {
	errs := Errors{}

	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required."
	} else if utf8.RuneCountInString(f.Title) > maxTitleLen {
		errs["title"] = "Title is too long (max 255 characters)."
	}

	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Text is required."
	}

	var categoryID int64
	if strings.TrimSpace(f.CategoryID) == "" {
		errs["category_id"] = "Category is required."
	} else if id, err := strconv.ParseInt(f.CategoryID, 10, 64); err != nil {
		errs["category_id"] = "Category must be a number."
	} else {
		exists, err := categories.CategoryExists(ctx, id)
		if err != nil {
			return PostInput{}, nil, err
		}
		if !exists {
			errs["category_id"] = "The selected category does not exist."
		} else {
			categoryID = id
		}
	}

	if errs.Any() {
		return PostInput{}, errs, nil
	}
	return PostInput{Title: f.Title, Text: f.Text, CategoryID: categoryID}, nil, nil
}
