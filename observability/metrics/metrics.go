// Package metrics defines the instrumentation surface for the client. The
// query layer reports through the Recorder interface; the Prometheus
// implementation is provided for applications that scrape, and Nop for
// everything else.
package metrics

import "time"

// Recorder receives instrumentation events from the query layer and the
// transport. Implementations must be safe for concurrent use.
type Recorder interface {
	// RecordRead reports a completed cached read. hit is true when the
	// value was served from cache without reaching the backend.
	RecordRead(resource, operation string, hit bool, duration time.Duration)

	// RecordWrite reports a completed write operation.
	RecordWrite(resource, operation string, failed bool, duration time.Duration)

	// RecordRetry reports one retry attempt for a read.
	RecordRetry(resource, operation string)

	// RecordInvalidation reports cache keys dropped after a write.
	RecordInvalidation(resource string, keys int)
}

// Nop returns a Recorder that discards every event.
func Nop() Recorder { return nopRecorder{} }

type nopRecorder struct{}

func (nopRecorder) RecordRead(string, string, bool, time.Duration)  {}
func (nopRecorder) RecordWrite(string, string, bool, time.Duration) {}
func (nopRecorder) RecordRetry(string, string)                      {}
func (nopRecorder) RecordInvalidation(string, int)                  {}
