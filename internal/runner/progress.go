package runner

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// progressBar renders sequential sweep progress on stderr
type progressBar struct {
	noColor bool
	bar     *progressbar.ProgressBar
}

func newProgressBar(noColor bool) *progressBar {
	return &progressBar{noColor: noColor}
}

// Update moves the bar to the target about to be probed
func (p *progressBar) Update(index, total int64, ip string) {
	if p.bar == nil || p.bar.GetMax64() != total {
		p.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(!p.noColor),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	if p.noColor {
		p.bar.Describe(fmt.Sprintf("%-15s", ip))
	} else {
		p.bar.Describe(fmt.Sprintf("[cyan]%-15s[reset]", ip))
	}
	_ = p.bar.Set64(index - 1)
}

// Done completes the bar
func (p *progressBar) Done() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}
