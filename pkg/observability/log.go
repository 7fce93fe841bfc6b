package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events as debug log lines. Failed
// stages are logged at error level.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
)

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) LogHooks {
	return LogHooks{Logger: logger}
}

func (h LogHooks) OnLoadStart(_ context.Context, source string) {
	h.Logger.Debug("load start", "source", source)
}

func (h LogHooks) OnLoadComplete(_ context.Context, source string, widgetCount int, d time.Duration, err error) {
	h.complete("load", err, "source", source, "widgets", widgetCount, "duration", d)
}

func (h LogHooks) OnTileStart(_ context.Context, scene string, rows, cols int) {
	h.Logger.Debug("tile start", "scene", scene, "rows", rows, "cols", cols)
}

func (h LogHooks) OnTileComplete(_ context.Context, scene string, rejected int, d time.Duration, err error) {
	h.complete("tile", err, "scene", scene, "rejected", rejected, "duration", d)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.complete("render", err, "formats", formats, "duration", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) complete(stage string, err error, keyvals ...any) {
	if err != nil {
		h.Logger.Error(stage+" failed", append(keyvals, "err", err)...)
		return
	}
	h.Logger.Debug(stage+" done", keyvals...)
}
