package seed

import (
	"errors"
	"fmt"
)

// Pipeline stages in execution order.
const (
	StageFetch              = "fetch"
	StageParse              = "parse"
	StageMap                = "map"
	StageWriteUsers         = "write_users"
	StageRelationships      = "relationships"
	StageWriteRelationships = "write_relationships"
	StagePublish            = "publish"
	StageLoad               = "load"
	StageReport             = "report"
)

// Stages lists every stage in the order Run executes them.
var Stages = []string{
	StageFetch,
	StageParse,
	StageMap,
	StageWriteUsers,
	StageRelationships,
	StageWriteRelationships,
	StagePublish,
	StageLoad,
	StageReport,
}

var ErrNilConfig = errors.New("config is nil")

// StageError identifies the stage that stopped a run.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// FailedStage returns the stage name carried by err, or "".
func FailedStage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
