package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestRegistryDefaults(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestRegistrySetAndReset(t *testing.T) {
	defer Reset()

	hooks := NewLogHooks(log.New(&bytes.Buffer{}))
	SetPipelineHooks(hooks)
	SetCacheHooks(hooks)
	SetHTTPHooks(&countingHTTPHooks{})

	if _, ok := Pipeline().(LogHooks); !ok {
		t.Errorf("Pipeline() = %T after SetPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(LogHooks); !ok {
		t.Errorf("Cache() = %T after SetCacheHooks", Cache())
	}

	SetPipelineHooks(nil)
	if _, ok := Pipeline().(LogHooks); !ok {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() did not restore the HTTP hooks")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	defer Reset()

	h := &countingHTTPHooks{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetHTTPHooks(h)
			HTTP().OnRequest(context.Background(), "POST", "/v1/tile")
		}()
	}
	wg.Wait()

	if got := h.count(); got != 8 {
		t.Errorf("requests = %d, want 8", got)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnTileStart(ctx, "login", 4, 2)
	h.OnTileComplete(ctx, "login", 1, time.Millisecond, nil)
	h.OnCacheHit(ctx, "layout")
	h.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, errors.New("disk full"))

	out := buf.String()
	for _, want := range []string{
		"tile start", "scene=login", "rows=4",
		"tile done", "rejected=1",
		"cache hit", "type=layout",
		"ERRO", "render failed", "disk full",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output does not contain %q:\n%s", want, out)
		}
	}
}

func TestLogHooksRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))

	h.OnCacheMiss(context.Background(), "artifact")
	h.OnLoadComplete(context.Background(), "login.toml", 6, time.Millisecond, nil)
	if buf.Len() != 0 {
		t.Errorf("debug events logged at info level: %q", buf.String())
	}
}

type countingHTTPHooks struct {
	NoopHTTPHooks
	mu       sync.Mutex
	requests int
}

func (h *countingHTTPHooks) OnRequest(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *countingHTTPHooks) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.requests
}
