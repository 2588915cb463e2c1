package main

import (
	"fmt"

	"github.com/aretw0/twotruths/internal/adapters/file"
	"github.com/aretw0/twotruths/internal/adapters/memory"
	"github.com/aretw0/twotruths/internal/adapters/redis"
	"github.com/aretw0/twotruths/pkg/ports"
)

// openStore builds the configured batch store and a function releasing it.
func openStore(s StoreSettings) (ports.BatchStore, func() error, error) {
	noop := func() error { return nil }
	switch s.Backend {
	case "", "memory":
		return memory.NewStore(s.TTL), noop, nil
	case "file":
		return file.New(s.Dir), noop, nil
	case "redis":
		ttl := s.TTL
		if ttl < 0 {
			ttl = 0
		}
		st := redis.New(s.RedisAddr, s.RedisPassword, s.RedisDB, redis.WithTTL(ttl))
		return st, st.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q (want memory, file or redis)", s.Backend)
}
