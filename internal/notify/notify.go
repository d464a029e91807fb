// Package notify is the user-facing notification boundary. Every
// recoverable failure in the client surfaces here instead of
// propagating; callers plug in their own sink (terminal, UI, tests).
package notify

import (
	"sync"

	"github.com/Shanmukha18/unibuy-client/pkg/logger"
	"go.uber.org/zap"
)

// Notifier receives user-visible notifications
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the structured log
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Get()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info("notification", zap.String("kind", "success"), zap.String("message", msg))
}

func (n *LogNotifier) Error(msg string) {
	n.log.Warn("notification", zap.String("kind", "error"), zap.String("message", msg))
}

// Recorder captures notifications for assertions in tests
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

// LastError returns the most recent error notification, or ""
func (r *Recorder) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[len(r.Errors)-1]
}

// LastSuccess returns the most recent success notification, or ""
func (r *Recorder) LastSuccess() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Successes) == 0 {
		return ""
	}
	return r.Successes[len(r.Successes)-1]
}
