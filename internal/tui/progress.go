package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/dhabedank/referat/internal/core"
	"github.com/dhabedank/referat/internal/llm"
)

// Reporter prints pipeline progress for non-interactive runs.
type Reporter struct {
	out   io.Writer
	model string
	usage func() llm.Usage

	start      time.Time
	startUsage llm.Usage
	totalCost  float64
}

// NewReporter creates a reporter writing to out. usage may be nil, in which
// case no cost estimate is printed.
func NewReporter(out io.Writer, model string, usage func() llm.Usage) *Reporter {
	return &Reporter{out: out, model: model, usage: usage}
}

// TopicStarted has the signature of core.BatchOptions.Started.
func (r *Reporter) TopicStarted(index, total int, topic string) {
	r.start = time.Now()
	if r.usage != nil {
		r.startUsage = r.usage()
	}
	fmt.Fprintln(r.out, RenderTopicStart(index, total, topic))
}

// Observe has the signature of core.Observer.
func (r *Reporter) Observe(ev core.Event) {
	switch ev.Kind {
	case core.EventOutlineReady:
		fmt.Fprintln(r.out, RenderOutlineReady(ev.Outline))
	case core.EventItemReady:
		fmt.Fprintln(r.out, RenderItemReady(ev.Index, ev.Total, ev.Item))
	case core.EventFinished:
		var cost float64
		if r.usage != nil {
			now := r.usage()
			cost = EstimateCostFromChars(r.model,
				now.InputChars-r.startUsage.InputChars,
				now.OutputChars-r.startUsage.OutputChars)
			r.totalCost += cost
		}
		fmt.Fprintln(r.out, RenderFinished(ev, time.Since(r.start), cost))
	}
}

// Summary renders the end-of-batch summary.
func (r *Reporter) Summary(report *core.BatchReport) string {
	return RenderSummary(report, r.totalCost)
}

// RenderTopicStart returns the line printed before a topic's run.
func RenderTopicStart(index, total int, topic string) string {
	return fmt.Sprintf("%s %s %s",
		SpinnerStyle.Render("→"),
		HelpStyle.Render(fmt.Sprintf("[%d/%d]", index+1, total)),
		ItemStyle.Render(topic),
	)
}

// RenderOutlineReady returns the generated outline, one item per line.
func RenderOutlineReady(outline []string) string {
	s := SubtitleStyle.Render(fmt.Sprintf("  Outline (%d items):", len(outline)))
	for _, item := range outline {
		s += "\n    " + item
	}
	return s
}

// RenderItemReady returns the line for one finished section.
func RenderItemReady(index, total int, item string) string {
	return fmt.Sprintf("  %s %s %s",
		SuccessStyle.Render("✓"),
		HelpStyle.Render(fmt.Sprintf("%d/%d", index+1, total)),
		item,
	)
}

// RenderFinished returns the result line of a run.
func RenderFinished(ev core.Event, elapsed time.Duration, cost float64) string {
	if ev.Err != nil {
		return fmt.Sprintf("  %s %s", ErrorStyle.Render("✗"), ErrorStyle.Render(ev.Message))
	}
	return fmt.Sprintf("  %s %s  %s  %s",
		SuccessStyle.Render("✓"),
		ev.Message,
		HelpStyle.Render(elapsed.Truncate(time.Second).String()),
		CostStyle.Render(FormatCost(cost)),
	)
}

// RenderSummary returns the batch summary.
func RenderSummary(report *core.BatchReport, cost float64) string {
	line := fmt.Sprintf("  Topics: %d  Saved: %d  Failed: %d  Est. cost: %s",
		len(report.Results),
		report.Succeeded(),
		report.Failures(),
		CostStyle.Render(FormatCost(cost)),
	)
	title := TitleStyle.Render("Batch Complete")
	if report.Failures() > 0 {
		title = WarningStyle.Render("Batch Complete With Failures")
	}
	if report.Stopped {
		line += "  " + WarningStyle.Render("(stopped early)")
	}
	return fmt.Sprintf("\n%s\n%s\n", title, line)
}
