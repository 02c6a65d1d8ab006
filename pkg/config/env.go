package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnvironment loads a .env file from the working directory when present,
// then applies the process environment.
func (c *Config) ApplyEnvironment() error {
	_ = godotenv.Load()
	return c.ApplyEnv(os.LookupEnv)
}

// ApplyEnv overrides fields from the variables lookup reports as set and non-empty.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"SEED_SOURCE", &c.Source},
		{"SEED_CACHE_DIR", &c.CacheDir},
		{"SEED_OUT_DIR", &c.OutDir},
		{"SEED_USERS_FILE", &c.UsersFile},
		{"SEED_RELATIONSHIPS_FILE", &c.RelationshipsFile},
		{"SEED_ID_SCHEME", &c.IDScheme},
		{"SEED_HASH", &c.Hash},
		{"SEED_EMAIL_DOMAIN", &c.EmailDomain},
		{"SEED_METRICS_FILE", &c.MetricsFile},
		{"SEED_S3_BUCKET", &c.S3.Bucket},
		{"SEED_S3_PREFIX", &c.S3.Prefix},
		{"SEED_S3_REGION", &c.S3.Region},
		{"SEED_S3_ENDPOINT", &c.S3.Endpoint},
		{"SEED_S3_ACCESS_KEY", &c.S3.AccessKey},
		{"SEED_S3_SECRET_KEY", &c.S3.SecretKey},
		{"KAGGLE_USERNAME", &c.Kaggle.Username},
		{"KAGGLE_KEY", &c.Kaggle.Key},
		{"DATABASE_URL", &c.Postgres.URL},
		{"LOG_LEVEL", &c.LogLevel},
	}
	for _, s := range strs {
		if v, ok := get(s.key); ok {
			*s.dst = v
		}
	}

	var errs []error

	if v, ok := get("SEED_RANDOM_SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("SEED_RANDOM_SEED: invalid integer %q", v))
		} else {
			c.Seed = &seed
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SEED_MAX_FOLLOWS", &c.MaxFollows},
		{"SEED_BCRYPT_COST", &c.BcryptCost},
	}
	for _, n := range ints {
		v, ok := get(n.key)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid integer %q", n.key, v))
			continue
		}
		*n.dst = parsed
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"SEED_SNAPPY", &c.Snappy},
		{"SEED_SKIP_INVALID", &c.SkipInvalid},
		{"SEED_PG_RESET", &c.Postgres.Reset},
		{"SEED_QUIET", &c.Quiet},
	}
	for _, b := range bools {
		v, ok := get(b.key)
		if !ok {
			continue
		}
		parsed, err := parseBool(b.key, v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*b.dst = parsed
	}

	return errors.Join(errs...)
}
