package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridtile/pkg/observability"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows the running pipeline stage on a single terminal line. It
// stops on its own when the context is cancelled.
type Spinner struct {
	w       io.Writer
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu      sync.Mutex
	message string
	width   int // widest line written, for clearing
}

// newSpinner creates a spinner writing to w.
func newSpinner(parent context.Context, w io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(parent)
	return &Spinner{
		w:       w,
		parent:  parent,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It may be called more than
// once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

// Cancelled reports whether the parent context ended the spinner.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := fmt.Sprintf("%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprintf(s.w, "\r%s", line)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// =============================================================================
// Stage reporting
// =============================================================================

// spinnerHooks moves a spinner through the pipeline stages.
type spinnerHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

func (h spinnerHooks) OnLoadStart(_ context.Context, source string) {
	h.spinner.SetMessage(fmt.Sprintf("Loading %s...", source))
}

func (h spinnerHooks) OnTileStart(_ context.Context, scene string, rows, cols int) {
	h.spinner.SetMessage(fmt.Sprintf("Tiling %s (%d×%d)...", scene, rows, cols))
}

func (h spinnerHooks) OnRenderStart(_ context.Context, formats []string) {
	h.spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
}

// followStages reports pipeline stages on s until the returned function is
// called.
func followStages(s *Spinner) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(spinnerHooks{spinner: s})
	return func() { observability.SetPipelineHooks(prev) }
}
