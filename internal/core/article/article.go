// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package article manages the articles written by editors and administrators.

# Architecture

  - Entities: Article, AuthorSummary, Deleted (DTO).
  - Repository: ArticleRepository, implemented over PostgreSQL.
  - Authors: every article belongs to an existing account; the author is always
    the authenticated caller, never a client-supplied field.

Reading is public. Drafts are only hidden from the default listing.
*/
package article

import (
	"context"
	"time"

	"github.com/taibuivan/scribe/internal/users/account"
)

// # Domain Entities

// Article is a piece of content authored by an account.
type Article struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Content     string         `json:"content"`
	IsPublished bool           `json:"is_published"`
	AuthorID    int64          `json:"author_id"`
	Author      *AuthorSummary `json:"author,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AuthorSummary is the public projection of the author embedded in reads.
type AuthorSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Deleted is the summary returned after an article is removed.
type Deleted struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Filter narrows the article listing.
type Filter struct {
	// Published selects published (true) or draft (false) articles.
	Published bool
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldContent     = "content"
	FieldIsPublished = "is_published"
)

// # Constraints

const (
	TitleMaxLength = 255

	// fallbackSlug is used when a title has no ASCII-representable characters.
	fallbackSlug = "article"
)

// # Repository Contracts

// ArticleRepository defines the persistence contract for articles.
type ArticleRepository interface {
	// Create inserts article and fills ID and timestamps.
	Create(context context.Context, article *Article) error

	// FindByID returns the article with its author summary, or NOT_FOUND.
	FindByID(context context.Context, id int64) (*Article, error)

	// List returns one page matching filter, newest first, plus the total count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Article, int, error)

	// Update persists title, slug, content and publication state.
	Update(context context.Context, article *Article) error

	// Delete removes the article. NOT_FOUND if it did not exist.
	Delete(context context.Context, id int64) error
}

// AuthorDirectory confirms that an author account exists.
type AuthorDirectory interface {
	FindByID(context context.Context, id int64) (*account.User, error)
}
