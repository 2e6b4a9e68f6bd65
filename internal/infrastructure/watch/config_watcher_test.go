package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestConfigWatcher_FiresOnConfigWrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sitecast.yaml")
	if err := os.WriteFile(configPath, []byte("default_region: de\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var fired atomic.Int32
	watcher, err := NewConfigWatcher(configPath, 20*time.Millisecond, func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("NewConfigWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Give the watch loop time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configPath, []byte("default_region: us\n"), 0600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if fired.Load() == 0 {
		t.Fatal("expected the change callback to fire")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sitecast.yaml")
	if err := os.WriteFile(configPath, []byte("default_region: de\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var fired atomic.Int32
	watcher, err := NewConfigWatcher(configPath, 20*time.Millisecond, func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("NewConfigWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0600); err != nil {
		t.Fatalf("write other file: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatalf("expected no callback for unrelated files, got %d", got)
	}

	cancel()
	<-done
}
