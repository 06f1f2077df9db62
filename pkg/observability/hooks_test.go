package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	layoutStarts   int
	layoutFinishes int
}

func (h *recordingPipelineHooks) OnLayoutStart(ctx context.Context, categories, legendKeys int) {
	h.layoutStarts++
}

func (h *recordingPipelineHooks) OnLayoutComplete(ctx context.Context, d time.Duration, err error) {
	h.layoutFinishes++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(ctx context.Context, keyType string) { h.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Pipeline().OnDecodeStart(ctx, "chart.json")
	Pipeline().OnLayoutStart(ctx, 4, 3)
	Pipeline().OnLayoutComplete(ctx, time.Millisecond, nil)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 128)
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnLayoutStart(ctx, 2, 2)
	Pipeline().OnLayoutComplete(ctx, time.Millisecond, nil)

	if h.layoutStarts != 1 || h.layoutFinishes != 1 {
		t.Errorf("recorded %d starts, %d finishes, want 1 and 1", h.layoutStarts, h.layoutFinishes)
	}

	// Nil registration keeps the current hooks.
	SetPipelineHooks(nil)
	Pipeline().OnLayoutStart(ctx, 1, 1)
	if h.layoutStarts != 2 {
		t.Error("nil registration replaced the registered hooks")
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")

	if h.hits != 1 || h.misses != 2 {
		t.Errorf("recorded %d hits, %d misses, want 1 and 2", h.hits, h.misses)
	}
}

func TestReset(t *testing.T) {
	SetPipelineHooks(&recordingPipelineHooks{})
	SetCacheHooks(&recordingCacheHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() did not restore noop pipeline hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() did not restore noop cache hooks")
	}
}
