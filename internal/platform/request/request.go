// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/scribe/internal/platform/apperr"
	"github.com/taibuivan/scribe/internal/platform/ctxutil"
	"github.com/taibuivan/scribe/internal/platform/sec"
	"github.com/taibuivan/scribe/internal/platform/validate"
)

// unknownFieldPrefix is how encoding/json reports a field rejected by DisallowUnknownFields.
const unknownFieldPrefix = "json: unknown field "

/*
DecodeJSON reads the request body and decodes it into the target structure.

Fields that the target does not declare are rejected, so clients cannot
smuggle attributes (author ids, permissions) past the payload definitions.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: VALIDATION_ERROR naming the unknown field, validate.ErrInvalidJSON
    for any other decoding failure, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if field, ok := strings.CutPrefix(err.Error(), unknownFieldPrefix); ok {
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   strings.Trim(field, `"`),
				Message: "This field is not allowed",
			})
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID parses a named URL parameter as a positive numeric identifier.

Returns:
  - int64: The identifier
  - error: VALIDATION_ERROR when the parameter is not a positive integer
*/
func IntID(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   name,
			Message: "Must be a positive integer",
		})
	}
	return id, nil
}

/*
Identity extracts the authenticated caller from the request context.

Returns nil if the request is not authenticated.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the caller.

Returns:
  - *sec.Identity: The authenticated caller
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}
