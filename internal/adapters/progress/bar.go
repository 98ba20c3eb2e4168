package progress

import (
	"fmt"
	"io"

	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/schollz/progressbar/v3"
)

// Bar reports item progress on a terminal progress bar.
type Bar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

var _ ports.Progress = (*Bar)(nil)

func NewBar(out io.Writer) *Bar {
	return &Bar{out: out}
}

func (b *Bar) Start(total int) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription("mods"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(b.out)
		}),
	)
}

func (b *Bar) Advance(item domain.Item, action domain.Action) {
	if b.bar == nil {
		return
	}
	b.bar.Describe(fmt.Sprintf("%s: %s", item.Name, action.Label()))
	_ = b.bar.Add(1)
}

func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}
