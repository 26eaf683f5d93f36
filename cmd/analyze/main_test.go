package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_RepoRulesets(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, []string{filepath.Join("..", "..", "configs"), "3"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	for _, name := range []string{"classic (10x20)", "mini (6x12)", "sprint (10x20)", "wide (16x22)"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected output to contain %q", name)
		}
	}
	if strings.Contains(out, "skipped") {
		t.Errorf("Expected every repo ruleset to be analyzed, got:\n%s", out)
	}
}

func TestRun_SkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"name":"bad"}`), 0644); err != nil {
		t.Fatalf("Failed to write ruleset: %v", err)
	}

	var buf bytes.Buffer
	if err := run(&buf, []string{dir}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "bad.json: skipped") {
		t.Errorf("Expected bad.json to be skipped, got:\n%s", buf.String())
	}
}

func TestRun_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, []string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("Expected error for missing directory")
	}
	if err := run(&buf, []string{t.TempDir(), "zero"}); err == nil {
		t.Error("Expected error for non-numeric max level")
	}
	if err := run(&buf, []string{t.TempDir(), "0"}); err == nil {
		t.Error("Expected error for max level below 1")
	}
}
