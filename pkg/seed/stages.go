package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/userbase-seed/pkg/dataset"
	"github.com/dd0wney/userbase-seed/pkg/logging"
	"github.com/dd0wney/userbase-seed/pkg/output"
	"github.com/dd0wney/userbase-seed/pkg/pgsink"
	"github.com/dd0wney/userbase-seed/pkg/publish"
	"github.com/dd0wney/userbase-seed/pkg/relationships"
	"github.com/dd0wney/userbase-seed/pkg/stats"
	"github.com/dd0wney/userbase-seed/pkg/userbase"
)

// objectStore returns the configured S3 client, building it on first use.
func (r *Runner) objectStore(ctx context.Context) (ObjectStore, error) {
	if r.deps.ObjectStore != nil {
		return r.deps.ObjectStore, nil
	}
	client, err := publish.NewClient(ctx, r.cfg.S3)
	if err != nil {
		return nil, err
	}
	r.deps.ObjectStore = client
	return client, nil
}

func (r *Runner) fetch(ctx context.Context, logger logging.Logger, st *run) error {
	opts := dataset.SourceOptions{
		KaggleUsername: r.cfg.Kaggle.Username,
		KaggleKey:      r.cfg.Kaggle.Key,
		CacheDir:       r.cfg.CacheDir,
		HTTPClient:     r.deps.HTTPClient,
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(r.cfg.Source)), "s3://") {
		store, err := r.objectStore(ctx)
		if err != nil {
			return err
		}
		opts.S3 = store
	}

	src, err := dataset.ParseSource(r.cfg.Source, opts)
	if err != nil {
		return err
	}

	rc, name, err := src.Open(ctx)
	if err != nil {
		return err
	}
	st.source = rc
	st.result.SourceName = name
	logger.Info("dataset opened", logging.String("file", name))
	return nil
}

func (r *Runner) parse(_ context.Context, logger logging.Logger, st *run) error {
	table, err := dataset.ReadTable(st.source)
	closeErr := st.source.Close()
	st.source = nil
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close dataset: %w", closeErr)
	}

	st.table = table
	r.metrics.RowsTotal.Add(float64(table.Len()))
	logger.Info("dataset parsed", logging.Count(table.Len()), logging.Int("columns", len(table.Header)))
	return nil
}

func (r *Runner) mapUsers(_ context.Context, logger logging.Logger, st *run) error {
	mapper, err := r.mapper()
	if err != nil {
		return err
	}

	users, skipped, err := mapper.MapTable(st.table, st.rng)
	if err != nil {
		var rowErr *userbase.RowError
		if errors.As(err, &rowErr) {
			r.metrics.RecordRowError(rowErr.Column)
		}
		return err
	}

	for _, rowErr := range skipped {
		r.metrics.RecordRowError(rowErr.Column)
		logger.Warn("row skipped", logging.Row(rowErr.Row), logging.String("column", rowErr.Column), logging.Error(rowErr.Cause))
	}

	st.result.Users = users
	st.result.Skipped = skipped
	r.metrics.UsersTotal.Add(float64(len(users)))
	logger.Info("users mapped", logging.Count(len(users)), logging.Int("skipped", len(skipped)))
	return nil
}

func (r *Runner) writeOptions() []output.Option {
	if r.cfg.Snappy {
		return []output.Option{output.WithSnappy()}
	}
	return nil
}

func (r *Runner) writeUsers(_ context.Context, logger logging.Logger, st *run) error {
	path := r.cfg.UsersPath()
	n, err := output.WriteJSON(path, st.result.Users, r.writeOptions()...)
	if err != nil {
		return err
	}
	st.result.UsersPath = path
	r.metrics.RecordArtifact("users", n)
	logger.Info("users written", logging.Path(path), logging.Bytes(n))
	return nil
}

func (r *Runner) synthesize(_ context.Context, logger logging.Logger, st *run) error {
	ids := userbase.IDs(st.result.Users)
	edges, err := relationships.Generate(ids, st.rng, relationships.WithMaxOutDegree(r.cfg.MaxFollows))
	if err != nil {
		return err
	}

	degrees := relationships.OutDegrees(edges)
	perUser := make([]int, len(ids))
	for i, id := range ids {
		perUser[i] = degrees[id]
	}
	r.metrics.RecordOutDegrees(perUser)
	r.metrics.RelationshipsTotal.Add(float64(len(edges)))

	st.result.Edges = edges
	logger.Info("relationships generated", logging.Count(len(edges)))
	return nil
}

func (r *Runner) writeRelationships(_ context.Context, logger logging.Logger, st *run) error {
	path := r.cfg.RelationshipsPath()
	n, err := output.WriteJSON(path, st.result.Edges, r.writeOptions()...)
	if err != nil {
		return err
	}
	st.result.RelationshipsPath = path
	r.metrics.RecordArtifact("relationships", n)
	logger.Info("relationships written", logging.Path(path), logging.Bytes(n))
	return nil
}

func (r *Runner) publishArtifacts(ctx context.Context, logger logging.Logger, st *run) error {
	store, err := r.objectStore(ctx)
	if err != nil {
		return err
	}
	pub, err := publish.New(store, r.cfg.S3.Bucket, r.cfg.S3.Prefix)
	if err != nil {
		return err
	}

	for _, path := range []string{st.result.UsersPath, st.result.RelationshipsPath} {
		key, err := pub.PutFile(ctx, st.result.RunID, path)
		if err != nil {
			return err
		}
		st.result.Published = append(st.result.Published, key)
		logger.Info("artifact published", logging.Path(path), logging.String("key", key), logging.String("bucket", pub.Bucket()))
	}
	return nil
}

func (r *Runner) load(ctx context.Context, logger logging.Logger, st *run) error {
	loader, err := r.deps.OpenLoader(ctx, r.cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer loader.Close()

	if r.cfg.Postgres.Reset {
		if err := loader.Truncate(ctx); err != nil {
			return err
		}
		logger.Info("seed tables truncated")
	}

	creds, err := loader.LoadCredentials(ctx, pgsink.Credentials(st.result.Users))
	if err != nil {
		return err
	}
	follows, err := loader.LoadFollows(ctx, st.result.Edges)
	if err != nil {
		return err
	}

	st.result.LoadedCredentials = creds
	st.result.LoadedFollows = follows
	logger.Info("database loaded", logging.Int64("credentials", creds), logging.Int64("follows", follows))
	return nil
}

func (r *Runner) report(_ context.Context, _ logging.Logger, st *run) error {
	st.result.Report = stats.Collect(st.table, st.result.Users, st.result.Edges)
	if r.cfg.Quiet {
		return nil
	}
	return stats.Render(r.deps.Stdout, st.result.Report)
}
