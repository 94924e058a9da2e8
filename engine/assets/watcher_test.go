package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/bubble/engine/config"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestConfigWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bubble.toml")
	if err := os.WriteFile(path, []byte("[bubble]\npreset = \"bubble\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cw, err := NewConfigWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer cw.Close()

	if cw.Poll() != nil {
		t.Fatal("nothing should be pending before a change")
	}

	if err := os.WriteFile(path, []byte("[bubble]\npreset = \"classic\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg *config.Config
	waitFor(t, "reload", func() bool {
		if c := cw.Poll(); c != nil {
			cfg = c
		}
		return cfg != nil && cfg.Bubble.Preset == "classic"
	})
	if cw.Reloads() == 0 {
		t.Fatal("reload counter not advanced")
	}
}

func TestConfigWatcherSkipsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bubble.toml")
	os.WriteFile(path, []byte("[window]\nwidth = 640\n"), 0o644)

	cw, err := NewConfigWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer cw.Close()

	os.WriteFile(path, []byte("[window\n"), 0o644)
	waitFor(t, "parse error", func() bool { return cw.LastError() != nil })
	if cw.Poll() != nil {
		t.Fatal("broken file must not be delivered")
	}
}

func TestConfigWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bubble.toml")
	os.WriteFile(path, []byte(""), 0o644)

	cw, err := NewConfigWatcher(path, 5*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer cw.Close()

	os.WriteFile(filepath.Join(dir, "other.toml"), []byte("[window]\nwidth = 1\n"), 0o644)
	time.Sleep(100 * time.Millisecond)
	if cw.Reloads() != 0 || cw.Poll() != nil {
		t.Fatal("sibling file triggered a reload")
	}
}

func TestConfigWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bubble.toml")
	os.WriteFile(path, nil, 0o644)
	cw, err := NewConfigWatcher(path, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if err := cw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := cw.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Fatalf("expected ErrWatcherClosed, got %v", err)
	}
}
