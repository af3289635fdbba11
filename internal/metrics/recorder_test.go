package metrics

import (
	"time"
)

type testRecorder struct {
	resolutionDurations int
	resolutions         map[OutcomeLabel]int
	exports             map[string]int
	reloads             map[string]int
	lastResolution      time.Time
}

func newTestRecorder() *testRecorder {
	return &testRecorder{resolutions: map[OutcomeLabel]int{}, exports: map[string]int{}, reloads: map[string]int{}}
}

func (t *testRecorder) ObserveResolutionDuration(_ time.Duration) { t.resolutionDurations++ }
func (t *testRecorder) IncResolution(outcome OutcomeLabel)        { t.resolutions[outcome]++ }
func (t *testRecorder) IncExport(result string)                   { t.exports[result]++ }
func (t *testRecorder) IncWatchReload(trigger string)             { t.reloads[trigger]++ }
func (t *testRecorder) SetLastResolutionTime(ts time.Time)        { t.lastResolution = ts }

var _ Recorder = (*testRecorder)(nil)
