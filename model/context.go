package model

import (
	"fmt"
	"log"
	"time"
)

// LogCategory classifies a BuildContext log entry.
type LogCategory int

const (
	LogProgress LogCategory = 1 + iota
	LogWarning
	LogError
)

// TimerLabel names one of the pipeline's named timers.
type TimerLabel int

const (
	TimerVoronoi TimerLabel = iota
	TimerFPVoronoi
	TimerAnnulus
	numTimers
)

func (l TimerLabel) String() string {
	switch l {
	case TimerVoronoi:
		return "nearest Voronoi"
	case TimerFPVoronoi:
		return "farthest-point Voronoi"
	case TimerAnnulus:
		return "annulus finder"
	default:
		return "unknown timer"
	}
}

// BuildContext provides optional logging and per-stage timing for the
// pipeline, mirroring the teacher's own BuildContext: logging and timers are
// enabled or disabled together, messages are tagged by category, and a
// timer's accumulated duration can be read back once stopped.
//
// The default concrete logger writes through the standard log package, the
// same dependency the teacher itself reaches for at this layer; see
// DESIGN.md for why no third-party logging library earns a place here.
type BuildContext struct {
	logEnabled   bool
	timerEnabled bool

	startTime [numTimers]time.Time
	accTime   [numTimers]time.Duration
}

// NewBuildContext returns a BuildContext with logging and timers enabled or
// disabled according to state.
func NewBuildContext(state bool) *BuildContext {
	return &BuildContext{logEnabled: state, timerEnabled: state}
}

func (ctx *BuildContext) log(category LogCategory, msg string) {
	if !ctx.logEnabled {
		return
	}
	switch category {
	case LogProgress:
		log.Println("PROG " + msg)
	case LogWarning:
		log.Println("WARN " + msg)
	case LogError:
		log.Println("ERR " + msg)
	}
}

// Progressf logs a progress message.
func (ctx *BuildContext) Progressf(format string, v ...interface{}) {
	ctx.log(LogProgress, fmt.Sprintf(format, v...))
}

// Warningf logs a warning message.
func (ctx *BuildContext) Warningf(format string, v ...interface{}) {
	ctx.log(LogWarning, fmt.Sprintf(format, v...))
}

// Errorf logs an error message.
func (ctx *BuildContext) Errorf(format string, v ...interface{}) {
	ctx.log(LogError, fmt.Sprintf(format, v...))
}

// StartTimer starts the named timer.
func (ctx *BuildContext) StartTimer(label TimerLabel) {
	if ctx.timerEnabled {
		ctx.startTime[label] = time.Now()
	}
}

// StopTimer stops the named timer and accumulates its elapsed time.
func (ctx *BuildContext) StopTimer(label TimerLabel) {
	if ctx.timerEnabled {
		ctx.accTime[label] += time.Since(ctx.startTime[label])
	}
}

// AccumulatedTime returns the named timer's total accumulated duration, or
// zero if timers are disabled.
func (ctx *BuildContext) AccumulatedTime(label TimerLabel) time.Duration {
	if !ctx.timerEnabled {
		return 0
	}
	return ctx.accTime[label]
}
