package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/soheilrt/play-scraper/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with aligned counters and
// clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether zero-count sets are shown.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show zero-count sets.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the crawl statistics in human-readable format.
func (w *SimpleWriter) Write(stats *model.CrawlStats) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, stats)
	w.writeCounts(&sb, stats)
	w.writeFooter(&sb, stats)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with collection information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, stats *model.CrawlStats) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                  CRAWL PROGRESS\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Collected: %s\n", stats.CollectedAt.Format("2006-01-02 15:04:05 MST")))
	if stats.Exhausted() {
		sb.WriteString("Status:    frontier exhausted\n")
	} else {
		sb.WriteString(fmt.Sprintf("Status:    %d id(s) pending\n", stats.TotalPending()))
	}
	sb.WriteString("\n")
}

// writeCounts writes the per-set counters.
func (w *SimpleWriter) writeCounts(sb *strings.Builder, stats *model.CrawlStats) {
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("SET COUNTS\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")

	rows := []struct {
		label string
		count int
	}{
		{"details-known", stats.DetailsKnown},
		{"similar-pending", stats.SimilarPending},
		{"similar-done", stats.SimilarDone},
		{"developers-pending", stats.DevelopersPending},
		{"developers-done", stats.DevelopersDone},
		{"categories-done", stats.CategoriesDone},
	}

	for _, row := range rows {
		if row.count == 0 && !w.showEmpty {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-20s %d\n", row.label, row.count))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, _ *model.CrawlStats) {
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
}
