// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"strings"

	"github.com/taibuivan/scribe/internal/platform/middleware"
	requestutil "github.com/taibuivan/scribe/internal/platform/request"
	"github.com/taibuivan/scribe/internal/platform/respond"
	"github.com/taibuivan/scribe/internal/platform/sec"
	"github.com/taibuivan/scribe/internal/platform/validate"
	"github.com/taibuivan/scribe/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /users endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the access table of the /users endpoints.
//
// # Endpoints
//   - POST   /     : Public self-registration.
//   - GET    /     : ADMIN, EDITOR.
//   - GET    /{id} : Any authenticated caller.
//   - PATCH  /{id} : ADMIN.
//   - DELETE /{id} : ADMIN.
func (handler *Handler) Routes() []middleware.Route {
	staff := []sec.Permission{sec.PermissionAdmin, sec.PermissionEditor}
	adminOnly := []sec.Permission{sec.PermissionAdmin}

	return []middleware.Route{
		{Method: http.MethodPost, Pattern: "/", Handler: handler.register, Public: true},
		{Method: http.MethodGet, Pattern: "/", Handler: handler.list, Permissions: staff},
		{Method: http.MethodGet, Pattern: "/{id}", Handler: handler.get},
		{Method: http.MethodPatch, Pattern: "/{id}", Handler: handler.update, Permissions: adminOnly},
		{Method: http.MethodDelete, Pattern: "/{id}", Handler: handler.remove, Permissions: adminOnly},
	}
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	PermissionName *string `json:"permission_name"`
}

// # Endpoints

/*
POST /users.

Description: Creates a new account with the READER permission.

Request:
  - Body: registerRequest (Name, Email, Password)

Response:
  - 201: User: Created account (no password)
  - 400: VALIDATION_ERROR: Bad input or unknown field
  - 409: CONFLICT: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validateName(validator, input.Name)
	validateEmail(validator, input.Email)
	validatePassword(validator, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /users.

Description: Lists accounts page by page (?page, ?limit).

Response:
  - 200: []User with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.accountService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if users == nil {
		users = []*User{}
	}
	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /users/{id}.

Response:
  - 200: User
  - 404: NOT_FOUND
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /users/{id}.

Description: Applies partial updates. permission_name must name an existing permission.

Request:
  - Body: updateRequest (Partial JSON)

Response:
  - 200: User: The updated account
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND: Unknown account or permission
  - 409: CONFLICT: Email already registered
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
	if input.Name != nil {
		validateName(validator, *input.Name)
	}
	if input.Email != nil {
		trimmed := strings.TrimSpace(*input.Email)
		input.Email = &trimmed
		validateEmail(validator, trimmed)
	}
	if input.Password != nil {
		validatePassword(validator, *input.Password)
	}
	if input.PermissionName != nil {
		validator.Required(FieldPermissionName, *input.PermissionName)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Update(request.Context(), id, UpdateInput{
		Name:           input.Name,
		Email:          input.Email,
		Password:       input.Password,
		PermissionName: input.PermissionName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /users/{id}.

Response:
  - 200: Removed: id and email of the deleted account
  - 404: NOT_FOUND
  - 409: CONFLICT: The account still authors articles
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.accountService.Remove(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, removed)
}

// # Validation Rules

func validateName(validator *validate.Validator, name string) {
	validator.Required(FieldName, name).
		MinLen(FieldName, name, NameMinLength).
		MaxLen(FieldName, name, NameMaxLength)
}

func validateEmail(validator *validate.Validator, email string) {
	validator.Required(FieldEmail, email).
		MaxLen(FieldEmail, email, EmailMaxLength).
		Email(FieldEmail, email)
}

func validatePassword(validator *validate.Validator, password string) {
	validator.Required(FieldPassword, password).
		MinLen(FieldPassword, password, PasswordMinLength).
		MaxLen(FieldPassword, password, PasswordMaxLength)
}
