// Package stats summarises a seed run for the operator.
package stats

import (
	"github.com/dd0wney/userbase-seed/pkg/dataset"
	"github.com/dd0wney/userbase-seed/pkg/relationships"
	"github.com/dd0wney/userbase-seed/pkg/userbase"
)

// Report is the dataset summary printed at the end of a run.
type Report struct {
	Rows              int                   `json:"rows"`
	Users             int                   `json:"users"`
	SkippedRows       int                   `json:"skipped_rows"`
	Countries         int                   `json:"countries"`
	SubscriptionTypes []string              `json:"subscription_types"`
	Devices           []string              `json:"devices"`
	Relationships     int                   `json:"relationships"`
	Degrees           relationships.Summary `json:"degrees"`
}

// Collect builds the report. Column statistics come from the source table,
// counts from the mapped users and generated edges. table may be nil.
func Collect(table *dataset.Table, users []*userbase.User, edges []relationships.Edge[string]) Report {
	r := Report{
		Users:             len(users),
		SubscriptionTypes: []string{},
		Devices:           []string{},
		Relationships:     len(edges),
		Degrees:           relationships.DegreeSummary(userbase.IDs(users), edges),
	}

	if table != nil {
		r.Rows = table.Len()
		r.SkippedRows = max(r.Rows-r.Users, 0)
		r.Countries = len(table.Unique(userbase.ColumnCountry))
		if v := table.Unique(userbase.ColumnSubscriptionType); v != nil {
			r.SubscriptionTypes = v
		}
		if v := table.Unique(userbase.ColumnDevice); v != nil {
			r.Devices = v
		}
	}

	return r
}
