package seed

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dd0wney/userbase-seed/pkg/dataset"
	"github.com/dd0wney/userbase-seed/pkg/pgsink"
	"github.com/dd0wney/userbase-seed/pkg/publish"
)

// ObjectStore is the S3 surface a run uses: reading an s3:// source and
// publishing artifacts.
type ObjectStore interface {
	dataset.ObjectGetter
	publish.ObjectPutter
}

// Loader is the database surface of the load stage. *pgsink.Store satisfies it.
type Loader interface {
	Truncate(ctx context.Context) error
	LoadCredentials(ctx context.Context, creds []pgsink.CredentialRecord) (int64, error)
	LoadFollows(ctx context.Context, edges []pgsink.FollowRecord) (int64, error)
	Close() error
}

// Deps are the external collaborators of a Runner. Zero values select the
// real implementations.
type Deps struct {
	HTTPClient  *http.Client
	ObjectStore ObjectStore
	OpenLoader  func(ctx context.Context, databaseURL string) (Loader, error)
	Stdout      io.Writer
	Now         func() time.Time
}

func (d *Deps) defaults() {
	if d.OpenLoader == nil {
		d.OpenLoader = func(ctx context.Context, url string) (Loader, error) {
			return pgsink.NewStore(ctx, url)
		}
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}
