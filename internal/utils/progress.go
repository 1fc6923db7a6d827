package utils

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// Progress is a single progress bar on stderr. It does nothing when disabled
// or when stderr is not a terminal.
type Progress struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

const labelWidth = 20

// NewProgress creates a progress bar counting up to total
func NewProgress(total int, label string, enabled bool) *Progress {
	if !enabled || !isTerminal() {
		return &Progress{}
	}
	return newProgress(os.Stderr, total, label)
}

func newProgress(w io.Writer, total int, label string) *Progress {
	if len(label) > labelWidth {
		label = label[:labelWidth-2] + ".."
	}

	container := mpb.New(
		mpb.WithOutput(w),
		mpb.WithWidth(64),
		mpb.WithRefreshRate(100*time.Millisecond),
	)
	bar := container.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("█").Tip("█").Padding("░").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: labelWidth, C: decor.DindentRight}),
			decor.CountersNoUnit("%d/%d", decor.WC{C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
		),
	)
	return &Progress{container: container, bar: bar}
}

// Enabled reports whether the bar is being drawn
func (p *Progress) Enabled() bool {
	return p.bar != nil
}

// Update sets the bar to current
func (p *Progress) Update(current int) {
	if p.bar == nil {
		return
	}
	p.bar.SetCurrent(int64(current))
}

// Finish completes the bar and waits for the final render
func (p *Progress) Finish() {
	if p.container == nil {
		return
	}
	p.bar.SetTotal(-1, true)
	p.container.Wait()
}

// isTerminal checks if stderr is a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
