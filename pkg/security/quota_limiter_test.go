package security

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("Should apply defaults", func(t *testing.T) {
		q := NewQuotaLimiter(nil, 0, 0)
		assert.Equal(t, 50, q.limit)
		assert.Equal(t, 24*time.Hour, q.window)
	})

	t.Run("Should allow everything without redis", func(t *testing.T) {
		q := NewQuotaLimiter(nil, 1, time.Minute)
		for i := 0; i < 3; i++ {
			allowed, retry, err := q.Allow(ctx, "import", "user-1")
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Zero(t, retry)
		}

		remaining, err := q.Remaining(ctx, "import", "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
	})

	t.Run("Should deny when redis fails", func(t *testing.T) {
		client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
		defer client.Close()

		allowed, retry, err := NewQuotaLimiter(client, 5, time.Hour).Allow(ctx, "export", "user-1")

		assert.Error(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 60, retry)
	})

	t.Run("Should namespace keys by scope", func(t *testing.T) {
		assert.Equal(t, "quota:import:user:u1", quotaKey("import", "u1"))
	})
}
