// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/scribe/internal/core/article"
	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/users/account"
)

// memoryArticles is an in-memory [article.ArticleRepository].
type memoryArticles struct {
	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	articles map[int64]article.Article
	authors  *authorMap
}

func newMemoryArticles(authors *authorMap) *memoryArticles {
	return &memoryArticles{
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		articles: make(map[int64]article.Article),
		authors:  authors,
	}
}

func (repository *memoryArticles) Create(_ context.Context, item *article.Article) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	// Each insert is one minute newer than the previous one.
	repository.nextID++
	repository.clock = repository.clock.Add(time.Minute)

	item.ID = repository.nextID
	item.CreatedAt = repository.clock
	item.UpdatedAt = repository.clock

	stored := *item
	stored.Author = nil
	repository.articles[item.ID] = stored
	return nil
}

func (repository *memoryArticles) FindByID(_ context.Context, id int64) (*article.Article, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item, ok := repository.articles[id]
	if !ok {
		return nil, apperr.NotFound("Article")
	}
	return repository.withAuthor(item), nil
}

func (repository *memoryArticles) List(_ context.Context, filter article.Filter, limit, offset int) ([]*article.Article, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var matching []article.Article
	for _, item := range repository.articles {
		if item.IsPublished == filter.Published {
			matching = append(matching, item)
		}
	}
	sort.Slice(matching, func(i, j int) bool { return matching[i].CreatedAt.After(matching[j].CreatedAt) })

	var page []*article.Article
	for index := offset; index < len(matching) && index < offset+limit; index++ {
		page = append(page, repository.withAuthor(matching[index]))
	}
	return page, len(matching), nil
}

func (repository *memoryArticles) Update(_ context.Context, item *article.Article) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.articles[item.ID]; !ok {
		return apperr.NotFound("Article")
	}
	stored := *item
	stored.Author = nil
	repository.articles[item.ID] = stored
	return nil
}

func (repository *memoryArticles) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.articles[id]; !ok {
		return apperr.NotFound("Article")
	}
	delete(repository.articles, id)
	return nil
}

func (repository *memoryArticles) withAuthor(item article.Article) *article.Article {
	if author, ok := repository.authors.users[item.AuthorID]; ok {
		item.Author = &article.AuthorSummary{ID: author.ID, Name: author.Name}
	}
	return &item
}

// authorMap is an in-memory [article.AuthorDirectory].
type authorMap struct {
	users map[int64]*account.User
}

func (directory *authorMap) FindByID(_ context.Context, id int64) (*account.User, error) {
	user, ok := directory.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}
