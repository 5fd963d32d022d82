package terminal

import (
	"context"
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"github.com/rs/zerolog/log"

	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

var hexColors = map[string]termbox.Attribute{
	"sheep":  termbox.ColorGreen,
	"wood":   termbox.ColorCyan,
	"wheat":  termbox.ColorYellow,
	"brick":  termbox.ColorMagenta,
	"ore":    termbox.ColorBlue,
	"desert": termbox.ColorWhite,
}

// Screen is a termbox renderer. Only the latest frame is kept; frames that
// arrive faster than the terminal redraws are skipped.
type Screen struct {
	mu     sync.Mutex
	latest viewmodel.Page
	dirty  chan struct{}
}

func NewScreen() *Screen {
	return &Screen{dirty: make(chan struct{}, 1)}
}

// Render implements session.Renderer.
func (s *Screen) Render(page viewmodel.Page) {
	s.mu.Lock()
	s.latest = page
	s.mu.Unlock()

	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Screen) current() viewmodel.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Run owns the terminal until ctx is cancelled or the player quits.
func (s *Screen) Run(ctx context.Context, actions Actions) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)

	eventsCh := make(chan termbox.Event)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			select {
			case eventsCh <- ev:
			case <-done:
				return
			}
		}
	}()
	defer func() {
		close(done)
		termbox.Interrupt()
		wg.Wait()
		termbox.Close()
	}()

	s.draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.dirty:
			s.draw()
		case ev := <-eventsCh:
			switch ev.Type {
			case termbox.EventResize:
				s.draw()
			case termbox.EventError:
				return fmt.Errorf("terminal error: %w", ev.Err)
			}

			in, ok := Decode(ev)
			if !ok {
				continue
			}
			if in.Command == CommandQuit {
				return nil
			}
			if err := Execute(in, s.current(), actions); err != nil {
				log.Error().Err(err).Int("command", int(in.Command)).Msg("failed to submit action")
			}
		}
	}
}

func (s *Screen) draw() {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	for y, line := range Lines(s.current()) {
		x := 0
		for _, span := range line {
			fg, bg := spanColors(span)
			for _, r := range span.Text {
				termbox.SetCell(x, y, r, fg, bg)
				x += runewidth.RuneWidth(r)
			}
		}
	}

	if err := termbox.Flush(); err != nil {
		log.Error().Err(err).Msg("failed to flush terminal")
	}
}

func spanColors(span Span) (fg, bg termbox.Attribute) {
	switch span.Kind {
	case KindHeader:
		return termbox.ColorDefault | termbox.AttrBold | termbox.AttrUnderline, termbox.ColorDefault
	case KindHex:
		fg = hexColors[span.Class]
		if span.Active {
			return termbox.ColorRed | termbox.AttrBold | termbox.AttrReverse, termbox.ColorDefault
		}
		return fg, termbox.ColorDefault
	case KindControl:
		return termbox.ColorDefault | termbox.AttrBold, termbox.ColorDefault
	case KindActive:
		return termbox.ColorRed | termbox.AttrBold, termbox.ColorDefault
	default:
		return termbox.ColorDefault, termbox.ColorDefault
	}
}
