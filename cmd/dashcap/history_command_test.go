package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCLIHistoryRequiresEnabledJournal(t *testing.T) {
	env := setupCLITestEnv(t, false)

	_, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err == nil {
		t.Fatal("expected error while history is disabled")
	}
	if !strings.Contains(err.Error(), "history is disabled") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCLIHistoryEmptyJournal(t *testing.T) {
	env := setupCLITestEnv(t, true)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No conversions recorded yet.")
}

func TestCLIHistoryListsConvertedRuns(t *testing.T) {
	env := setupCLITestEnv(t, true)
	folder := seedRecording(t, filepath.Join(env.baseDir, "trip-020"), twoSamplePayload)

	if _, _, err := runCLI(t, []string{"convert", folder}, env.configPath); err != nil {
		t.Fatalf("convert: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "completed")
	requireContains(t, out, folder)
}
