package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the Redis API the repositories use. *redis.Client from go-redis
// and the client returned by redismock both satisfy it.
type Client interface {
	redis.UniversalClient
}
