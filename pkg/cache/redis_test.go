package cache

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimta/bimta-api/pkg/config"
)

// memoryHook answers counter commands in memory so no server is dialled.
type memoryHook struct {
	values    map[string]int64
	expires   map[string]time.Duration
	commands  []string
	expireErr error
}

func newMemoryHook() *memoryHook {
	return &memoryHook{values: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled")
	}
}

func (h *memoryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.commands = append(h.commands, cmd.Name())
		args := cmd.Args()
		key, _ := args[1].(string)
		switch c := cmd.(type) {
		case *redis.IntCmd:
			switch cmd.Name() {
			case "incr":
				h.values[key]++
				c.SetVal(h.values[key])
			case "del":
				delete(h.values, key)
				delete(h.expires, key)
				c.SetVal(1)
			}
		case *redis.BoolCmd:
			if h.expireErr != nil {
				c.SetErr(h.expireErr)
				return h.expireErr
			}
			seconds, _ := args[2].(int64)
			h.expires[key] = time.Duration(seconds) * time.Second
			c.SetVal(true)
		case *redis.StringCmd:
			value, ok := h.values[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(strconv.FormatInt(value, 10))
		}
		return nil
	}
}

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		return errors.New("pipelines not supported")
	}
}

func newTestCounter(t *testing.T) (*Counter, *memoryHook) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })
	hook := newMemoryHook()
	client.AddHook(hook)
	return NewCounter(client, "login:"), hook
}

func TestCounterStartsWindowOnFirstIncrement(t *testing.T) {
	counter, hook := newTestCounter(t)
	ctx := context.Background()

	n, err := counter.Incr(ctx, "admin|10.0.0.1", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = counter.Incr(ctx, "admin|10.0.0.1", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.Equal(t, []string{"incr", "expire", "incr"}, hook.commands)
	assert.Equal(t, 15*time.Minute, hook.expires["login:admin|10.0.0.1"])

	value, err := counter.Get(ctx, "admin|10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), value)
}

func TestCounterGetMissingAndReset(t *testing.T) {
	counter, _ := newTestCounter(t)
	ctx := context.Background()

	value, err := counter.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, value)

	_, err = counter.Incr(ctx, "admin", time.Minute)
	require.NoError(t, err)
	require.NoError(t, counter.Reset(ctx, "admin"))

	value, err = counter.Get(ctx, "admin")
	require.NoError(t, err)
	assert.Zero(t, value)
}

func TestCounterExpireFailureClearsKey(t *testing.T) {
	counter, hook := newTestCounter(t)
	hook.expireErr = errors.New("ERR unknown command")

	_, err := counter.Incr(context.Background(), "admin", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expire counter")
	assert.NotContains(t, hook.values, "login:admin")
}

func TestNewRedisDisabled(t *testing.T) {
	client, err := NewRedis(context.Background(), config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, client)
}
