// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyUserEmail ctxKey = "user_email"

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithUser annotates context with the session-resolved user email
func WithUser(ctx context.Context, email string) context.Context {
	if email != "" {
		ctx = context.WithValue(ctx, keyUserEmail, email)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// UserEmail returns the user email on the context if present
func UserEmail(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserEmail).(string); ok {
		return v
	}
	return ""
}
