package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestWithBlockID(t *testing.T) {
	ctx := WithBlockID(context.Background(), 7)

	id, ok := GetBlockID(ctx)
	assert.True(t, ok)
	assert.Equal(t, 7, id)
}

func TestContextValues_NotPresent(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))

	_, ok := GetBlockID(ctx)
	assert.False(t, ok)
}
