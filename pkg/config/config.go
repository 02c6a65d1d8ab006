// Package config holds the settings of a seed run: YAML file, then .env and
// environment variables, then command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/userbase-seed/pkg/dataset"
	"github.com/dd0wney/userbase-seed/pkg/publish"
	"github.com/dd0wney/userbase-seed/pkg/relationships"
	"github.com/dd0wney/userbase-seed/pkg/userbase"
)

const (
	IDSchemeSequential = "sequential"
	IDSchemeUUID       = "uuid"

	HashMD5    = "md5"
	HashBcrypt = "bcrypt"

	snappySuffix = ".sz"
)

// Config is the full configuration of a seed run.
type Config struct {
	Source            string `yaml:"source"`
	CacheDir          string `yaml:"cache_dir"`
	OutDir            string `yaml:"out_dir"`
	UsersFile         string `yaml:"users_file"`
	RelationshipsFile string `yaml:"relationships_file"`

	// Seed pins the random source; nil seeds from the clock.
	Seed        *int64 `yaml:"seed"`
	MaxFollows  int    `yaml:"max_follows"`
	IDScheme    string `yaml:"id_scheme"`
	Hash        string `yaml:"hash"`
	BcryptCost  int    `yaml:"bcrypt_cost"`
	EmailDomain string `yaml:"email_domain"`
	SkipInvalid bool   `yaml:"skip_invalid"`
	Snappy      bool   `yaml:"snappy"`

	Kaggle   KaggleConfig     `yaml:"kaggle"`
	S3       publish.S3Config `yaml:"s3"`
	Postgres PostgresConfig   `yaml:"postgres"`

	MetricsFile string `yaml:"metrics_file"`
	LogLevel    string `yaml:"log_level"`
	Quiet       bool   `yaml:"quiet"`
}

type KaggleConfig struct {
	Username string `yaml:"username"`
	Key      string `yaml:"key"`
}

type PostgresConfig struct {
	URL   string `yaml:"url"`
	Reset bool   `yaml:"reset"`
}

// Default returns the settings that reproduce the classic two-file output in
// the working directory.
func Default() *Config {
	return &Config{
		Source:            "kaggle://" + dataset.DefaultKaggleDataset,
		CacheDir:          defaultCacheDir(),
		OutDir:            ".",
		UsersFile:         "netflix_userbase.json",
		RelationshipsFile: "relationships.json",
		MaxFollows:        relationships.DefaultMaxOutDegree,
		IDScheme:          IDSchemeSequential,
		Hash:              HashMD5,
		EmailDomain:       userbase.DefaultEmailDomain,
		LogLevel:          "info",
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "userbase-seed")
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// UsersPath is the users artifact path, with .sz appended when compressing.
func (c *Config) UsersPath() string {
	return c.artifactPath(c.UsersFile)
}

// RelationshipsPath is the relationships artifact path, with .sz appended when compressing.
func (c *Config) RelationshipsPath() string {
	return c.artifactPath(c.RelationshipsFile)
}

func (c *Config) artifactPath(name string) string {
	if c.Snappy && !strings.HasSuffix(name, snappySuffix) {
		name += snappySuffix
	}
	return filepath.Join(c.OutDir, name)
}

// PublishEnabled reports whether artifacts go to S3.
func (c *Config) PublishEnabled() bool {
	return strings.TrimSpace(c.S3.Bucket) != ""
}

// LoadEnabled reports whether a database load is configured.
func (c *Config) LoadEnabled() bool {
	return strings.TrimSpace(c.Postgres.URL) != ""
}

func parseBool(name, raw string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", name, raw)
	}
	return v, nil
}
