package version

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFirstRunLifecycle(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if !IsFirstRun() {
		t.Fatal("IsFirstRun() = false in an empty home")
	}

	var buf bytes.Buffer
	PrintFirstRunNotice(&buf)
	if !strings.Contains(buf.String(), "referat setup") {
		t.Errorf("notice = %q", buf.String())
	}

	if IsFirstRun() {
		t.Error("IsFirstRun() = true after the notice was printed")
	}
}

func TestConfigFileMeansNotFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := os.WriteFile(filepath.Join(home, ConfigFileName), []byte("llm: echo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if IsFirstRun() {
		t.Error("IsFirstRun() = true with a config file present")
	}
}

func TestMarkInitialized(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := MarkInitialized(); err != nil {
		t.Fatalf("MarkInitialized() error = %v", err)
	}
	if _, err := os.Stat(markerPath(home)); err != nil {
		t.Errorf("marker not written: %v", err)
	}
	if IsFirstRun() {
		t.Error("IsFirstRun() = true after MarkInitialized")
	}
}

func TestMarkInitializedWriteError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// A regular file where the marker directory should be.
	if err := os.WriteFile(filepath.Join(home, ".referat"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := MarkInitialized(); err == nil {
		t.Error("MarkInitialized() error = nil with a blocked marker dir")
	}
}
