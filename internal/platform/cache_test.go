package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func testCache(t *testing.T) *HelperCache {
	t.Helper()
	dir := t.TempDir()
	return &HelperCache{dir: dir}
}

func TestHelperCache_PathStableBySource(t *testing.T) {
	c := testCache(t)
	p1 := c.Path("helper", "source A")
	p2 := c.Path("helper", "source A")
	p3 := c.Path("helper", "source B")
	if p1 != p2 {
		t.Error("same source produced different paths")
	}
	if p1 == p3 {
		t.Error("different sources share a path")
	}
}

func TestHelperCache_EnsureCompilesOnce(t *testing.T) {
	c := testCache(t)
	compiles := 0
	compile := func(ctx context.Context, dst string) error {
		compiles++
		return os.WriteFile(dst, []byte("#!/bin/sh\nexit 0\n"), 0o755)
	}

	p1, err := c.Ensure(context.Background(), "h", "src", compile)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := c.Ensure(context.Background(), "h", "src", compile)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 || compiles != 1 {
		t.Errorf("compiles = %d, paths %q vs %q", compiles, p1, p2)
	}
	if _, err := os.Stat(p1); err != nil {
		t.Errorf("binary missing: %v", err)
	}
	// No temp leftovers.
	entries, _ := os.ReadDir(filepath.Dir(p1))
	for _, e := range entries {
		if e.Name() != filepath.Base(p1) {
			t.Errorf("leftover file %s", e.Name())
		}
	}
}

func TestHelperCache_InvalidateForcesRecompile(t *testing.T) {
	c := testCache(t)
	compiles := 0
	compile := func(ctx context.Context, dst string) error {
		compiles++
		return os.WriteFile(dst, []byte("bin"), 0o755)
	}
	if _, err := c.Ensure(context.Background(), "h", "src", compile); err != nil {
		t.Fatal(err)
	}
	c.Invalidate("h", "src")
	if _, err := c.Ensure(context.Background(), "h", "src", compile); err != nil {
		t.Fatal(err)
	}
	if compiles != 2 {
		t.Errorf("compiles = %d, want 2", compiles)
	}
}

func TestCaptureStats_Merge(t *testing.T) {
	a := NewCaptureStats()
	a.Observe(0, "window")
	a.Observe(1, "button")
	b := NewCaptureStats()
	b.Observe(4, "button")

	a.Merge(b)
	if a.Nodes != 3 || a.MaxDepth != 4 || a.Roles["button"] != 2 {
		t.Errorf("merged stats = %+v", a)
	}
	a.Merge(nil)
	if a.Nodes != 3 {
		t.Error("nil merge changed stats")
	}
}
