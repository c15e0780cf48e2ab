package services

// Generation emits named events to a caller-supplied synchronous observer.
// A nil observer is valid and drops everything.

type ProgressEvent string

const (
	ProgressPoolExpand   ProgressEvent = "pool.expand"
	ProgressEnrichBatch  ProgressEvent = "enrich.batch"
	ProgressDayScheduled ProgressEvent = "day.scheduled"
	ProgressSparseResult ProgressEvent = "attempt.sparse"
)

type ProgressObserver func(event ProgressEvent, params map[string]interface{})

func (o ProgressObserver) emit(event ProgressEvent, params map[string]interface{}) {
	if o != nil {
		o(event, params)
	}
}
