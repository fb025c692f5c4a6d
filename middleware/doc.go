// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response helpers.

# Logging

WithLogging wraps a handler and logs request start/completion with method,
path, duration and a per-request UUID:

	mux.HandleFunc("GET /p/{code}", middleware.WithLogging(handler.GetProject))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "rating must be 1-10")
	err := middleware.ParseJSONBody(r, &req)

# CORS

CORS wraps the whole mux and answers preflight requests.

# Client Signals

GetClientIP resolves the caller's IP through proxy headers; ClientLocale
returns the preferred Accept-Language tag. Both feed the anonymous
reviewer fingerprint, never authentication.
*/
package middleware
