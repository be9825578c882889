package core

import (
	"context"
	"fmt"
)

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// PathFor returns the output path for a topic.
	PathFor func(topic string) string

	// FailFast stops the batch at the first failed topic. By default a failed
	// topic is skipped and the batch continues.
	FailFast bool

	// Started is called before each topic's run. May be nil.
	Started func(index, total int, topic string)

	// Observe receives the events of every run, in order. May be nil.
	Observe Observer
}

// BatchReport summarizes a batch.
type BatchReport struct {
	Results []*RunResult // one per topic run, in order; failed runs carry Err
	Stopped bool         // FailFast or cancellation cut the batch short
}

// Succeeded returns the number of topics that produced a document.
func (r *BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.State == StateDone {
			n++
		}
	}
	return n
}

// Failures returns the number of runs that failed.
func (r *BatchReport) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.State == StateFailed {
			n++
		}
	}
	return n
}

// Err returns a summary error when any topic failed.
func (r *BatchReport) Err() error {
	failed := r.Failures()
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d topics failed", failed, len(r.Results))
}

// RunBatch processes topics one at a time, start to finish, in order.
// A failure aborts only that topic's run unless opts.FailFast is set.
func RunBatch(ctx context.Context, p *Pipeline, topics []string, opts BatchOptions) *BatchReport {
	report := &BatchReport{}

	for i, topic := range topics {
		if ctx.Err() != nil {
			report.Stopped = true
			break
		}
		if opts.Started != nil {
			opts.Started(i, len(topics), topic)
		}

		result, err := p.Run(ctx, topic, opts.PathFor(topic), opts.Observe)
		report.Results = append(report.Results, result)
		if err != nil {
			if opts.FailFast {
				report.Stopped = true
				break
			}
		}
	}

	return report
}
