// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"net/http"

	"github.com/taibuivan/scribe/internal/platform/middleware"
	requestutil "github.com/taibuivan/scribe/internal/platform/request"
	"github.com/taibuivan/scribe/internal/platform/respond"
	"github.com/taibuivan/scribe/internal/platform/sec"
	"github.com/taibuivan/scribe/internal/platform/validate"
	"github.com/taibuivan/scribe/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /articles endpoints.
type Handler struct {
	articleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{articleService: service}
}

// Routes returns the access table of the /articles endpoints.
//
// # Endpoints
//   - POST   /     : ADMIN, EDITOR.
//   - GET    /     : Public.
//   - GET    /{id} : Public.
//   - PATCH  /{id} : ADMIN, EDITOR.
//   - DELETE /{id} : ADMIN.
func (handler *Handler) Routes() []middleware.Route {
	staff := []sec.Permission{sec.PermissionAdmin, sec.PermissionEditor}

	return []middleware.Route{
		{Method: http.MethodPost, Pattern: "/", Handler: handler.create, Permissions: staff},
		{Method: http.MethodGet, Pattern: "/", Handler: handler.list, Public: true},
		{Method: http.MethodGet, Pattern: "/{id}", Handler: handler.get, Public: true},
		{Method: http.MethodPatch, Pattern: "/{id}", Handler: handler.update, Permissions: staff},
		{Method: http.MethodDelete, Pattern: "/{id}", Handler: handler.remove, Permissions: []sec.Permission{sec.PermissionAdmin}},
	}
}

// # Request Payloads

type createRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"is_published"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

// # Endpoints

/*
POST /articles.

Description: Creates an article authored by the caller. An author_id in the
body is rejected as an unknown field.

Response:
  - 201: Article
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND: The caller's account no longer exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLength).
		Required(FieldContent, input.Content)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Create(request.Context(), identity.ID, CreateInput{
		Title:       input.Title,
		Content:     input.Content,
		IsPublished: input.IsPublished,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

/*
GET /articles.

Description: Lists articles newest first. ?published=false lists drafts;
any other value, or none, lists published articles.

Response:
  - 200: []Article with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Published: request.URL.Query().Get("published") != "false"}

	articles, total, err := handler.articleService.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if articles == nil {
		articles = []*Article{}
	}
	respond.Paginated(writer, articles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /articles/{id}.

Response:
  - 200: Article with author summary
  - 404: NOT_FOUND
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
PATCH /articles/{id}.

Request:
  - Body: updateRequest (Partial JSON)

Response:
  - 200: Article
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, TitleMaxLength)
	}
	if input.Content != nil {
		validator.Required(FieldContent, *input.Content)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Update(request.Context(), id, UpdateInput{
		Title:       input.Title,
		Content:     input.Content,
		IsPublished: input.IsPublished,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
DELETE /articles/{id}.

Response:
  - 200: Deleted: id and title of the removed article
  - 404: NOT_FOUND
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.articleService.Remove(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleted)
}
