package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrNoCSV        = errors.New("no CSV file found")
	ErrEmptyTable   = errors.New("table has no header")
	ErrUnsupported  = errors.New("unsupported source")
	ErrBadKaggleRef = errors.New("kaggle dataset handle must be <owner>/<dataset>")
)

// HTTPError reports a non-2xx response from a download.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("download %s: unexpected status %d", e.URL, e.StatusCode)
}
