// Package seed runs the userbase seeding pipeline: fetch the dataset, map it to
// user records, synthesize follows, then write, publish and load the artifacts.
package seed

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"

	"github.com/dd0wney/userbase-seed/pkg/config"
	"github.com/dd0wney/userbase-seed/pkg/dataset"
	"github.com/dd0wney/userbase-seed/pkg/logging"
	"github.com/dd0wney/userbase-seed/pkg/metrics"
	"github.com/dd0wney/userbase-seed/pkg/relationships"
	"github.com/dd0wney/userbase-seed/pkg/stats"
	"github.com/dd0wney/userbase-seed/pkg/userbase"
)

// Result is everything a completed (or partially completed) run produced.
type Result struct {
	RunID             string
	Seed              int64
	SourceName        string
	Users             []*userbase.User
	Skipped           []*userbase.RowError
	Edges             []relationships.Edge[string]
	UsersPath         string
	RelationshipsPath string
	Published         []string // object keys
	LoadedCredentials int64
	LoadedFollows     int64
	Report            stats.Report
}

// Runner executes one seed run per Run call.
type Runner struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
	deps    Deps
}

// NewRunner validates cfg and prepares a run. A nil logger or registry is
// replaced by a no-op logger and a private registry.
func NewRunner(cfg *config.Config, logger logging.Logger, reg *metrics.Registry, deps Deps) (*Runner, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	deps.defaults()

	return &Runner{cfg: cfg, logger: logger, metrics: reg, deps: deps}, nil
}

// run carries the state handed from stage to stage.
type run struct {
	result *Result
	rng    *rand.Rand
	source io.ReadCloser
	table  *dataset.Table
}

// Run executes every stage in order and stops at the first failure, returning
// a *StageError. The Result holds whatever the completed stages produced.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	seed := r.deps.Now().UnixNano()
	if r.cfg.Seed != nil {
		seed = *r.cfg.Seed
	}

	st := &run{
		result: &Result{RunID: uuid.NewString(), Seed: seed},
		rng:    rand.New(rand.NewSource(seed)),
	}
	defer func() {
		if st.source != nil {
			st.source.Close()
		}
	}()

	logger := r.logger.With(logging.RunID(st.result.RunID))
	logger.Info("seed run starting",
		logging.String("source", r.cfg.Source),
		logging.Int64("seed", seed),
		logging.Int("max_follows", r.cfg.MaxFollows),
	)

	steps := []struct {
		name    string
		enabled bool
		fn      func(context.Context, logging.Logger, *run) error
	}{
		{StageFetch, true, r.fetch},
		{StageParse, true, r.parse},
		{StageMap, true, r.mapUsers},
		{StageWriteUsers, true, r.writeUsers},
		{StageRelationships, true, r.synthesize},
		{StageWriteRelationships, true, r.writeRelationships},
		{StagePublish, r.cfg.PublishEnabled(), r.publishArtifacts},
		{StageLoad, r.cfg.LoadEnabled(), r.load},
		{StageReport, true, r.report},
	}

	var runErr error
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			runErr = &StageError{Stage: step.name, Cause: err}
			break
		}
		if !step.enabled {
			r.metrics.RecordStage(step.name, metrics.StatusSkipped, 0)
			logger.Debug("stage skipped", logging.Stage(step.name))
			continue
		}
		if err := r.execute(ctx, logger, step.name, st, step.fn); err != nil {
			runErr = err
			break
		}
	}

	r.finish(logger, runErr)
	return st.result, runErr
}

func (r *Runner) execute(ctx context.Context, logger logging.Logger, name string, st *run, fn func(context.Context, logging.Logger, *run) error) error {
	stageLogger := logger.With(logging.Stage(name))
	op := logging.StartTimer(stageLogger, "stage complete")

	if err := fn(ctx, stageLogger, st); err != nil {
		r.metrics.RecordStage(name, metrics.StatusError, op.EndError(err))
		return &StageError{Stage: name, Cause: err}
	}

	r.metrics.RecordStage(name, metrics.StatusSuccess, op.End())
	return nil
}

func (r *Runner) finish(logger logging.Logger, runErr error) {
	r.metrics.FinishRun(runErr == nil, r.deps.Now())

	if r.cfg.MetricsFile != "" {
		if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
			logger.Warn("metrics textfile not written", logging.Path(r.cfg.MetricsFile), logging.Error(err))
		}
	}

	if runErr != nil {
		logger.Error("seed run failed", logging.Stage(FailedStage(runErr)), logging.Error(runErr))
		return
	}
	logger.Info("seed run complete")
}

func (r *Runner) mapper() (*userbase.Mapper, error) {
	opts := []userbase.MapperOption{
		userbase.WithEmailDomain(r.cfg.EmailDomain),
		userbase.WithSkipInvalid(r.cfg.SkipInvalid),
	}

	switch r.cfg.IDScheme {
	case config.IDSchemeSequential:
		opts = append(opts, userbase.WithIDGenerator(userbase.DefaultSequentialIDs()))
	case config.IDSchemeUUID:
		opts = append(opts, userbase.WithIDGenerator(userbase.UUIDs{}))
	default:
		return nil, fmt.Errorf("unknown id scheme %q", r.cfg.IDScheme)
	}

	switch r.cfg.Hash {
	case config.HashMD5:
		opts = append(opts, userbase.WithPasswordHasher(userbase.MD5Hasher{}))
	case config.HashBcrypt:
		opts = append(opts, userbase.WithPasswordHasher(userbase.BcryptHasher{Cost: r.cfg.BcryptCost}))
	default:
		return nil, fmt.Errorf("unknown hash %q", r.cfg.Hash)
	}

	return userbase.NewMapper(opts...), nil
}
