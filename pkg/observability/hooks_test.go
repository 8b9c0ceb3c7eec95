package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "items.yaml")
	p.OnLoadComplete(ctx, "items.yaml", 100, time.Second, nil)
	p.OnComputeStart(ctx, 100)
	p.OnComputeComplete(ctx, ComputeStats{Items: 100, Rows: 120}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "frame")
	c.OnCacheMiss(ctx, "frame")
	c.OnCacheSet(ctx, "items", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "id", "POST", "/v1/frame")
	s.OnResponse(ctx, "id", "POST", "/v1/frame", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Pipeline().OnComputeStart(context.Background(), 7)
	if customPipeline.started != 7 {
		t.Errorf("started = %d, want 7", customPipeline.started)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

type testPipelineHooks struct {
	NoopPipelineHooks
	started int
}

func (h *testPipelineHooks) OnComputeStart(_ context.Context, n int) { h.started = n }

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

type testServerHooks struct {
	NoopServerHooks
	requests int
}
