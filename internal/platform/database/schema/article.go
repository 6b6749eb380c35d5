// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ArticleTable represents the 'article' table
type ArticleTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Content     string
	IsPublished string
	AuthorID    string
	CreatedAt   string
	UpdatedAt   string
}

// Article is the schema definition for article
var Article = ArticleTable{
	Table:       "article",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Content:     "content",
	IsPublished: "is_published",
	AuthorID:    "author_id",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names
func (t ArticleTable) Columns() []string {
	return []string{t.ID, t.Title, t.Slug, t.Content, t.IsPublished, t.AuthorID, t.CreatedAt, t.UpdatedAt}
}
