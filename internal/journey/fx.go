package journey

import (
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("journey",
	fx.Provide(NewStore),
)

// NewStore picks the redis store when a client is configured, otherwise a
// process-local store.
func NewStore(client *redis.Client) Store {
	if client != nil {
		return NewRedisStore(client, DefaultTTL)
	}
	return NewMemoryStore(DefaultTTL)
}
