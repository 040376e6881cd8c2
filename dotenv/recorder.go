package dotenv

import "time"

// Load outcomes reported to a Recorder.
const (
	OutcomeLoaded        = "loaded"
	OutcomeAlreadyLoaded = "already_loaded"
	OutcomeNotFound      = "not_found"
	OutcomeReadFailed    = "read_failed"
)

// Insert targets reported to a Recorder.
const (
	TargetEnv    = "env"
	TargetServer = "server"
)

// Recorder receives metrics about load attempts.
type Recorder interface {
	RecordAttempt(outcome string)
	RecordInsert(target string)
	RecordRejectedLine()
	RecordLoadDuration(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordAttempt(string)             {}
func (nopRecorder) RecordInsert(string)              {}
func (nopRecorder) RecordRejectedLine()              {}
func (nopRecorder) RecordLoadDuration(time.Duration) {}
