// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	for _, limit := range []string{"1/second", "60/minute", "1000/hour", " 5 / Minute "} {
		t.Run(limit, func(t *testing.T) {
			l, err := Parse(limit)
			require.NoError(t, err)
			assert.True(t, l.Allow())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, limit := range []string{"fast", "0/second", "-1/minute", "10/fortnight", "ten/second"} {
		t.Run(limit, func(t *testing.T) {
			_, err := Parse(limit)
			assert.Error(t, err)
		})
	}
}

func TestParseEmptyIsUnlimited(t *testing.T) {
	l, err := Parse("")
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		require.True(t, l.Allow())
	}
}

func TestWaitBlocksAtLimit(t *testing.T) {
	l, err := Parse("1/hour")
	require.NoError(t, err)

	// First call consumes the burst; the second must block until the
	// context deadline.
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}
