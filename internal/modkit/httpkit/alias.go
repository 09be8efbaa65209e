// Package httpkit is the handler-facing surface of the platform http package.
// Modules import httpkit instead of internal/platform/net/http so the
// transport types stay swappable in one place
package httpkit

import (
	"net/http"

	phttp "fadet/internal/platform/net/http"
)

// Re-exports of the platform transport types
type (
	Envelope = phttp.Envelope // response frame every endpoint returns
	Page     = phttp.Page     // pagination metadata
	Response = phttp.Response // return-style handler result
	Handler  = phttp.Handler  // platform handler
	Router   = phttp.Router   // router seam
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Data is an alias for OK
func Data(v any) Response { return phttp.Data(v) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// List returns a 200 response with items and pagination
func List(items any, total, page, size int, cursor string) Response {
	return phttp.List(items, total, page, size, cursor)
}

// JSON adapts a JSON-body handler. The body is parsed and validated
// through the platform bind layer before fn runs
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(fn)
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
