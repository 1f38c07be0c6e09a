package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ytget/traknab/internal/download"
	"github.com/ytget/traknab/internal/model"
)

// printer writes per-track progress lines and the run summary
type printer struct {
	out     io.Writer
	total   int
	verbose bool

	ok   *color.Color
	skip *color.Color
	warn *color.Color
	fail *color.Color
	dim  *color.Color
}

func newPrinter(out io.Writer, total int, verbose bool) *printer {
	return &printer{
		out:     out,
		total:   total,
		verbose: verbose,
		ok:      color.New(color.FgGreen),
		skip:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
		dim:     color.New(color.Faint),
	}
}

// update is the download service callback
func (p *printer) update(o *model.Outcome) {
	prefix := fmt.Sprintf("[%d/%d]", o.Index+1, p.total)
	name := o.GetDisplayTitle()

	switch o.Status {
	case model.TrackStatusDownloading:
		p.dim.Fprintf(p.out, "%s %s: searching %q\n", prefix, name, o.Query)
	case model.TrackStatusCompleted:
		p.ok.Fprintf(p.out, "%s %s -> %s (%s)\n", prefix, name, o.OutputPath, o.GetElapsedString())
		if o.MatchedTitle != "" && (p.verbose || o.MatchScore < download.LowMatchScore) {
			c := p.dim
			if o.MatchScore < download.LowMatchScore {
				c = p.warn
			}
			c.Fprintf(p.out, "%s   matched %q (score %.2f)\n", prefix, o.MatchedTitle, o.MatchScore)
		}
	case model.TrackStatusSkipped:
		p.skip.Fprintf(p.out, "%s %s: skipped, %s (%s)\n", prefix, name, o.Reason, o.OutputPath)
	case model.TrackStatusStopped:
		p.warn.Fprintf(p.out, "%s %s: stopped\n", prefix, name)
	case model.TrackStatusError:
		p.fail.Fprintf(p.out, "%s %s: %v\n", prefix, name, o.Err)
	}
}

// interrupted announces that the run is being cancelled
func (p *printer) interrupted() {
	p.warn.Fprintln(p.out, "\nInterrupted, cancelling...")
}

// summary prints totals and lists failed tracks
func (p *printer) summary(r *model.Report) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Downloaded: %s  Skipped: %s  Failed: %s",
		p.ok.Sprint(r.Completed()), p.skip.Sprint(r.Skipped()), p.fail.Sprint(r.Failed()))
	if r.Interrupted {
		fmt.Fprintf(p.out, "  Not attempted: %s", p.warn.Sprint(r.Pending()+r.Stopped()))
	}
	fmt.Fprintln(p.out)

	for _, o := range r.Failures() {
		p.fail.Fprintf(p.out, "  %d. %s: %v\n", o.Index+1, o.GetDisplayTitle(), o.Err)
	}
}
