// Package redis connects the Redis client backing the usage ledger's
// counter store. Connection, retry and timeout settings come from
// environment variables via Config.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    panic(err)
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//
//	store := usage.NewRedisStore(client, "")
package redis
