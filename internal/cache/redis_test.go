package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// pingClient 以 FakeCache 提供 Cache 方法，只另外實作 Ping
type pingClient struct {
	FakeCache
	pingErr  error
	deadline bool
	closed   bool
}

func (p *pingClient) Ping(ctx context.Context) *redis.StatusCmd {
	_, p.deadline = ctx.Deadline()
	return redis.NewStatusResult("PONG", p.pingErr)
}

func (p *pingClient) Close() error {
	p.closed = true
	return nil
}

func TestNewRedisClient(t *testing.T) {
	orig := redisNewClient
	t.Cleanup(func() { redisNewClient = orig })

	tests := []struct {
		name    string
		pingErr error
	}{
		{name: "connected"},
		{name: "unreachable", pingErr: errors.New("connection refused")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var opts *redis.Options
			stub := &pingClient{pingErr: tc.pingErr}
			redisNewClient = func(o *redis.Options) redisClient {
				opts = o
				return stub
			}

			c, err := NewRedisClient("cache:6379", "secret", 2)
			require.True(t, stub.deadline)
			require.Equal(t, "cache:6379", opts.Addr)
			require.Equal(t, "secret", opts.Password)
			require.Equal(t, 2, opts.DB)
			require.Equal(t, pingTimeout, opts.DialTimeout)
			require.Equal(t, time.Second, opts.ReadTimeout)

			if tc.pingErr != nil {
				require.ErrorIs(t, err, tc.pingErr)
				require.ErrorContains(t, err, "cache:6379")
				require.Nil(t, c)
				require.True(t, stub.closed)
				return
			}
			require.NoError(t, err)
			require.Same(t, stub, c)
			require.False(t, stub.closed)
		})
	}
}
