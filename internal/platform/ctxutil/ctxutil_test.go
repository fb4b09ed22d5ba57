// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edora-dev/edora/internal/platform/ctxutil"
)

/*
TestRequestID tests injection and retrieval of the Request ID.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()

	// 1. Empty context should return empty string
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Attach and retrieve
	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestLogger tests injection and retrieval of the request-scoped logger.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()

	// 1. Empty context falls back to the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Attach and retrieve a custom logger
	custom := slog.Default().With("request_id", "req-123")
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}
