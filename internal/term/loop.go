package term

import (
	"time"

	tb "github.com/nsf/termbox-go"
	"go.uber.org/zap"

	"github.com/inodb/seqview/internal/highlight"
	"github.com/inodb/seqview/internal/view"
)

// tickInterval is the auto-scroll period while the view is playing.
const tickInterval = 100 * time.Millisecond

// Run drives the interactive session: it auto-scrolls one row every tick
// while playing, and responds to Space/Enter (toggle pause), Up/Down
// (manual scroll), resize, and Esc (quit). It returns when the user quits.
// reload, if non-nil, delivers a replacement highlight selection whenever
// the config file watch picks up an edit; the view is redrawn with it
// immediately rather than waiting for the next jump.
func Run(b *Backend, v *view.View, log *zap.Logger, paused bool, reload <-chan highlight.Set) error {
	events := make(chan tb.Event)
	go func() {
		for {
			events <- tb.PollEvent()
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		if !paused {
			if err := v.ScrollDown(1); err != nil {
				return err
			}
			if err := b.Flush(); err != nil {
				return err
			}
		}

		select {
		case ev := <-events:
			if ev.Type != tb.EventKey {
				if ev.Type == tb.EventResize {
					if err := v.Resize(); err != nil {
						return err
					}
					if err := b.Flush(); err != nil {
						return err
					}
				}
				continue
			}
			switch {
			case ev.Key == tb.KeyEsc:
				return nil
			case ev.Key == tb.KeyEnter || ev.Ch == ' ':
				paused = !paused
			case ev.Key == tb.KeyArrowDown:
				if err := v.ScrollDown(1); err != nil {
					return err
				}
				if err := b.Flush(); err != nil {
					return err
				}
			case ev.Key == tb.KeyArrowUp:
				if err := v.ScrollUp(1); err != nil {
					return err
				}
				if err := b.Flush(); err != nil {
					return err
				}
			}
		case hls, ok := <-reload:
			if !ok {
				reload = nil
				continue
			}
			v.Highlights = hls
			log.Info("applied reloaded highlight selection")
			if err := v.Resize(); err != nil {
				return err
			}
			if err := b.Flush(); err != nil {
				return err
			}
		case <-ticker.C:
			continue
		}
	}
}
