// Package config loads environment variables into typed structs, with
// one cached load per struct type for the process lifetime.
//
// Parsing is caarlos0/env tag syntax; a .env file, if present, is
// loaded once before the first parse via godotenv.
//
//	type RedisConfig struct {
//		URL      string        `env:"REDIS_URL,required"`
//		PoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
//		Timeout  time.Duration `env:"REDIS_TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// or, at startup, fail loudly:
//	config.MustLoad(&cfg)
//
// Load caches by struct type: the first call parses the environment,
// later calls for the same type copy the cached value, so every
// component asking for RedisConfig sees identical settings no matter
// when it asks. Distinct types cache independently.
package config
