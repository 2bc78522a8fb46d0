package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestContainer_GetAllAndClear(t *testing.T) {
	mc := NewContainer()
	noop := func(ctx huma.Context, next func(huma.Context)) { next(ctx) }

	mc.Add(noop)
	mc.Add(noop)

	first := mc.GetAllAndClear()
	assert.Len(t, first, 2)
	assert.Empty(t, mc.GetAllAndClear())

	mc.Add(noop)
	assert.Len(t, mc.GetAllAndClear(), 1)
	assert.Len(t, first, 2, "returned slice is not reused")
}
