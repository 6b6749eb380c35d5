// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"

	"github.com/taibuivan/scribe/internal/platform/middleware"
	requestutil "github.com/taibuivan/scribe/internal/platform/request"
	"github.com/taibuivan/scribe/internal/platform/respond"
	"github.com/taibuivan/scribe/internal/platform/validate"
)

// Field names accepted by the login endpoint.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Handler implements the /auth endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns the access table of the /auth endpoints.
//
// # Endpoints
//   - POST /login : Public. Exchanges credentials for an access token.
func (handler *Handler) Routes() []middleware.Route {
	return []middleware.Route{
		{Method: http.MethodPost, Pattern: "/login", Handler: handler.login, Public: true},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /auth/login.

Description: Verifies credentials and returns a bearer token. The body is
the bare token object, not the data envelope.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: {"access_token": "..."}
  - 400: VALIDATION_ERROR: Missing fields
  - 401: INVALID_CREDENTIALS: Unknown email or wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, session)
}
