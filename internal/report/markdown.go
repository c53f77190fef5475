package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/soheilrt/play-scraper/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the crawl statistics in Markdown format.
func (w *MarkdownWriter) Write(stats *model.CrawlStats) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, stats)
	w.writeCounts(md, stats)
	w.writeAlert(md, stats)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with collection information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, stats *model.CrawlStats) {
	md.H1("Crawl Progress Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Collected", stats.CollectedAt.Format("2006-01-02 15:04:05 MST")},
			{"Status", w.getStatusText(stats)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on frontier state.
func (w *MarkdownWriter) getStatusText(stats *model.CrawlStats) string {
	if stats.Exhausted() {
		return "✅ Frontier exhausted"
	}
	return "🔄 " + strconv.Itoa(stats.TotalPending()) + " id(s) pending"
}

// writeCounts writes the per-set counter table.
func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, stats *model.CrawlStats) {
	md.H2("Set Counts")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Set", "Count"},
		Rows: [][]string{
			{"details-known", strconv.Itoa(stats.DetailsKnown)},
			{"similar-pending", strconv.Itoa(stats.SimilarPending)},
			{"similar-done", strconv.Itoa(stats.SimilarDone)},
			{"developers-pending", strconv.Itoa(stats.DevelopersPending)},
			{"developers-done", strconv.Itoa(stats.DevelopersDone)},
			{"categories-done", strconv.Itoa(stats.CategoriesDone)},
		},
	})
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the frontier state.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, stats *model.CrawlStats) {
	switch {
	case stats.DetailsKnown == 0:
		md.Note("No detail records collected yet. Run the crawl command to start.")
	case stats.Exhausted():
		md.Tip("All discovered ids have been expanded. The crawl is complete.")
	default:
		md.Importantf(
			"%d id(s) still pending. Re-run the crawl command to resume.",
			stats.TotalPending(),
		)
	}
	md.PlainText("")
}
