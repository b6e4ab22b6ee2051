package job

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// progress wraps a frame progress bar. The zero value draws nothing.
type progress struct {
	bar *progressbar.ProgressBar
}

// newProgress shows a bar on w when forced or when w is a terminal.
func newProgress(w io.Writer, frames int, force bool) progress {
	if frames <= 0 || !(force || isTerminal(w)) {
		return progress{}
	}
	return progress{bar: progressbar.NewOptions(frames,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("frames"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p progress) step() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
