// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/ctxutil"
	"github.com/taibuivan/scribe/pkg/pagination"
	"github.com/taibuivan/scribe/pkg/pointer"
	"github.com/taibuivan/scribe/pkg/slug"
)

// # Service Layer

// Service orchestrates business logic for articles.
type Service struct {
	articleRepository ArticleRepository
	authors           AuthorDirectory
}

// NewService constructs a new [Service] with its dependencies.
func NewService(articleRepo ArticleRepository, authors AuthorDirectory) *Service {
	return &Service{
		articleRepository: articleRepo,
		authors:           authors,
	}
}

// CreateInput holds the client-supplied fields of a new article.
type CreateInput struct {
	Title       string
	Content     string
	IsPublished *bool
}

/*
Create stores a new article written by authorID.

Description: The author must still exist; a deleted account holding a valid
token gets NOT_FOUND. Articles are drafts unless IsPublished is set.

Parameters:
  - context: context.Context
  - authorID: int64 (the authenticated caller)
  - input: CreateInput

Returns:
  - *Article: The created article
  - error: NOT_FOUND if the author is gone, or storage failures
*/
func (service *Service) Create(context context.Context, authorID int64, input CreateInput) (*Article, error) {

	// 1. Author existence check
	author, err := service.authors.FindByID(context, authorID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound("Author")
		}
		return nil, fmt.Errorf("article_service_author_lookup_failed: %w", err)
	}

	// 2. Persistence
	article := &Article{
		Title:       input.Title,
		Slug:        slugOf(input.Title),
		Content:     input.Content,
		IsPublished: pointer.Fallback(input.IsPublished, false),
		AuthorID:    author.ID,
	}
	if err := service.articleRepository.Create(context, article); err != nil {
		return nil, fmt.Errorf("article_service_create_failed: %w", err)
	}
	article.Author = &AuthorSummary{ID: author.ID, Name: author.Name}

	ctxutil.GetLogger(context).Info("article_created",
		slog.Int64("article_id", article.ID),
		slog.Bool("is_published", article.IsPublished),
	)

	return article, nil
}

// List returns one page of articles matching filter, newest first.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Article, int, error) {
	articles, total, err := service.articleRepository.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("article_service_list_failed: %w", err)
	}
	return articles, total, nil
}

// Get returns a single article with its author summary.
func (service *Service) Get(context context.Context, id int64) (*Article, error) {
	article, err := service.articleRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("article_service_get_failed: %w", err)
	}
	return article, nil
}

// UpdateInput defines the mutable subset of article fields. Nil means unchanged.
type UpdateInput struct {
	Title       *string
	Content     *string
	IsPublished *bool
}

/*
Update applies a partial set of changes to an article.

Description: A new title regenerates the slug. Authorship never changes.
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Article, error) {
	article, err := service.articleRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("article_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if pointer.Apply(&article.Title, input.Title) {
		article.Slug = slugOf(article.Title)
	}
	pointer.Apply(&article.Content, input.Content)
	pointer.Apply(&article.IsPublished, input.IsPublished)

	// Persist changes
	if err := service.articleRepository.Update(context, article); err != nil {
		return nil, fmt.Errorf("article_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("article_updated", slog.Int64("article_id", id))

	return article, nil
}

// Remove deletes an article and returns its id and title.
func (service *Service) Remove(context context.Context, id int64) (*Deleted, error) {
	article, err := service.articleRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("article_service_remove_lookup_failed: %w", err)
	}

	if err := service.articleRepository.Delete(context, id); err != nil {
		return nil, fmt.Errorf("article_service_remove_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("article_deleted", slog.Int64("article_id", id))

	return &Deleted{ID: article.ID, Title: article.Title}, nil
}

func slugOf(title string) string {
	if value := slug.From(title); value != "" {
		return value
	}
	return fallbackSlug
}
