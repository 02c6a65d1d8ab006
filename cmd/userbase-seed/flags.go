package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dd0wney/userbase-seed/pkg/config"
)

var errHelp = errors.New("help requested")

// loadConfig layers the YAML file (--config), .env and environment, then the
// flags the user actually set.
func loadConfig(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("userbase-seed", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := config.Default()
	configFile := fs.String("config", "", "YAML configuration file")
	source := fs.String("source", defaults.Source, "Dataset source: kaggle://owner/dataset, s3://bucket/key, http(s) URL or local path")
	cacheDir := fs.String("cache-dir", defaults.CacheDir, "Download cache directory (empty disables caching)")
	outDir := fs.String("out-dir", defaults.OutDir, "Directory for the written artifacts")
	usersFile := fs.String("users-file", defaults.UsersFile, "Users artifact file name")
	relationshipsFile := fs.String("relationships-file", defaults.RelationshipsFile, "Relationships artifact file name")
	seedValue := fs.Int64("seed", 0, "Random seed (default: time based)")
	maxFollows := fs.Int("max-follows", defaults.MaxFollows, "Maximum follows per user")
	idScheme := fs.String("id-scheme", defaults.IDScheme, "User id scheme: sequential or uuid")
	hash := fs.String("hash", defaults.Hash, "Password hash: md5 or bcrypt")
	bcryptCost := fs.Int("bcrypt-cost", 0, "bcrypt cost (default: library default)")
	emailDomain := fs.String("email-domain", defaults.EmailDomain, "Domain of generated email addresses")
	skipInvalid := fs.Bool("skip-invalid", false, "Skip rows that cannot be mapped instead of failing")
	snappy := fs.Bool("snappy", false, "Write snappy framed artifacts (.sz)")
	s3Bucket := fs.String("s3-bucket", "", "Publish artifacts to this S3 bucket")
	s3Prefix := fs.String("s3-prefix", "", "Key prefix for published artifacts")
	s3Endpoint := fs.String("s3-endpoint", "", "Custom S3 endpoint (MinIO)")
	pgURL := fs.String("pg-url", "", "Load credentials and follows into this PostgreSQL database")
	pgReset := fs.Bool("pg-reset", false, "Truncate the seed tables before loading")
	metricsFile := fs.String("metrics-file", "", "Write Prometheus metrics to this textfile")
	logLevel := fs.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error")
	quiet := fs.Bool("quiet", false, "Do not print the dataset report")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelp
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnvironment(); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = *source
		case "cache-dir":
			cfg.CacheDir = *cacheDir
		case "out-dir":
			cfg.OutDir = *outDir
		case "users-file":
			cfg.UsersFile = *usersFile
		case "relationships-file":
			cfg.RelationshipsFile = *relationshipsFile
		case "seed":
			v := *seedValue
			cfg.Seed = &v
		case "max-follows":
			cfg.MaxFollows = *maxFollows
		case "id-scheme":
			cfg.IDScheme = *idScheme
		case "hash":
			cfg.Hash = *hash
		case "bcrypt-cost":
			cfg.BcryptCost = *bcryptCost
		case "email-domain":
			cfg.EmailDomain = *emailDomain
		case "skip-invalid":
			cfg.SkipInvalid = *skipInvalid
		case "snappy":
			cfg.Snappy = *snappy
		case "s3-bucket":
			cfg.S3.Bucket = *s3Bucket
		case "s3-prefix":
			cfg.S3.Prefix = *s3Prefix
		case "s3-endpoint":
			cfg.S3.Endpoint = *s3Endpoint
		case "pg-url":
			cfg.Postgres.URL = *pgURL
		case "pg-reset":
			cfg.Postgres.Reset = *pgReset
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "log-level":
			cfg.LogLevel = *logLevel
		case "quiet":
			cfg.Quiet = *quiet
		}
	})

	return cfg, nil
}
