// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/database/schema"
	"github.com/taibuivan/scribe/internal/platform/dberr"
)

// # PostgreSQL Repositories

// articleRepository implements the [ArticleRepository] interface using pgx.
type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository constructs a PostgreSQL backed article store.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

// selectArticle projects an article with its author summary.
var selectArticle = fmt.Sprintf(`
	SELECT
		ar.%s, ar.%s, ar.%s, ar.%s, ar.%s, ar.%s, ar.%s, ar.%s,
		ac.%s
	FROM %s ar
	JOIN %s ac ON ac.%s = ar.%s`,
	schema.Article.ID,
	schema.Article.Title,
	schema.Article.Slug,
	schema.Article.Content,
	schema.Article.IsPublished,
	schema.Article.AuthorID,
	schema.Article.CreatedAt,
	schema.Article.UpdatedAt,
	schema.Account.Name,
	schema.Article.Table,
	schema.Account.Table,
	schema.Account.ID,
	schema.Article.AuthorID,
)

// Create inserts the article; the author foreign key guards against races with account removal.
func (repository *articleRepository) Create(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s`,
		schema.Article.Table,
		schema.Article.Title,
		schema.Article.Slug,
		schema.Article.Content,
		schema.Article.IsPublished,
		schema.Article.AuthorID,
		schema.Article.ID,
		schema.Article.CreatedAt,
		schema.Article.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		article.Title,
		article.Slug,
		article.Content,
		article.IsPublished,
		article.AuthorID,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "Article")
	}
	return nil
}

// FindByID returns the article joined with its author name.
func (repository *articleRepository) FindByID(context context.Context, id int64) (*Article, error) {
	query := selectArticle + fmt.Sprintf(" WHERE ar.%s = $1", schema.Article.ID)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query article: %w", err)
	}

	article, err := pgx.CollectExactlyOneRow(rows, scanArticle)
	if err != nil {
		return nil, dberr.Wrap(err, "Article")
	}
	return article, nil
}

/*
List retrieves one page of articles by publication state.

Description: Ordered newest first; id breaks ties between rows created in the
same instant. COUNT(*) OVER() carries the total on every row.

Returns:
  - []*Article: The page
  - int: Total matching articles
*/
func (repository *articleRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {
	query := fmt.Sprintf(`
		SELECT
			ar.%s, ar.%s, ar.%s, ar.%s, ar.%s, ar.%s, ar.%s, ar.%s,
			ac.%s,
			COUNT(*) OVER() AS total_count
		FROM %s ar
		JOIN %s ac ON ac.%s = ar.%s
		WHERE ar.%s = $1
		ORDER BY ar.%s DESC, ar.%s DESC
		LIMIT $2 OFFSET $3`,
		schema.Article.ID,
		schema.Article.Title,
		schema.Article.Slug,
		schema.Article.Content,
		schema.Article.IsPublished,
		schema.Article.AuthorID,
		schema.Article.CreatedAt,
		schema.Article.UpdatedAt,
		schema.Account.Name,
		schema.Article.Table,
		schema.Account.Table,
		schema.Account.ID,
		schema.Article.AuthorID,
		schema.Article.IsPublished,
		schema.Article.CreatedAt,
		schema.Article.ID,
	)

	rows, err := repository.pool.Query(context, query, filter.Published, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []*Article
	var totalCount int

	for rows.Next() {
		article := &Article{Author: &AuthorSummary{}}
		err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Slug,
			&article.Content,
			&article.IsPublished,
			&article.AuthorID,
			&article.CreatedAt,
			&article.UpdatedAt,
			&article.Author.Name,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan article: %w", err)
		}
		article.Author.ID = article.AuthorID
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate articles: %w", err)
	}

	// A page past the end carries no window total.
	if len(articles) == 0 && offset > 0 {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", schema.Article.Table, schema.Article.IsPublished)
		if err := repository.pool.QueryRow(context, countQuery, filter.Published).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to count articles: %w", err)
		}
	}

	return articles, totalCount, nil
}

// Update persists the mutable columns of article and refreshes UpdatedAt.
func (repository *articleRepository) Update(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.Article.Table,
		schema.Article.Title,
		schema.Article.Slug,
		schema.Article.Content,
		schema.Article.IsPublished,
		schema.Article.UpdatedAt,
		schema.Article.ID,
		schema.Article.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Content,
		article.IsPublished,
	).Scan(&article.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "Article")
	}
	return nil
}

// Delete removes an article by id.
func (repository *articleRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Article.Table, schema.Article.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Article")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Article")
	}
	return nil
}

func scanArticle(row pgx.CollectableRow) (*Article, error) {
	article := &Article{Author: &AuthorSummary{}}

	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Content,
		&article.IsPublished,
		&article.AuthorID,
		&article.CreatedAt,
		&article.UpdatedAt,
		&article.Author.Name,
	)
	if err != nil {
		return nil, err
	}

	article.Author.ID = article.AuthorID
	return article, nil
}
