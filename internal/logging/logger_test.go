package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetLogging(t *testing.T) {
	t.Helper()
	Configure(Settings{})
	t.Cleanup(func() { Configure(Settings{}) })
}

// TestAllCategoriesLog tests that all categories create log files when debug mode is on
func TestAllCategoriesLog(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Initialize(Settings{DebugMode: true, Level: "debug", Dir: dir}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if !IsDebugMode() {
		t.Fatal("Expected debug mode to be enabled")
	}

	for _, cat := range AllCategories {
		if !IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be enabled", cat)
		}
		l := Get(cat)
		l.Info("Test info message for %s", cat)
		l.Debug("Test debug message for %s", cat)
		l.Warn("Test warn message for %s", cat)
		l.Error("Test error message for %s", cat)
	}

	APIDebug("Convenience api log")
	RouterDebug("Convenience router log")
	Panel("Convenience panel log")
	Identity("Convenience identity log")
	Config("Convenience config log")

	CloseAll()

	for _, cat := range AllCategories {
		content, err := os.ReadFile(filepath.Join(dir, string(cat)+".log"))
		if err != nil {
			t.Errorf("No log file for category %s: %v", cat, err)
			continue
		}
		if !strings.Contains(string(content), "Test info message for "+string(cat)) {
			t.Errorf("Log file for %s missing info line: %s", cat, content)
		}
	}
}

// TestDebugModeDisabled tests that nothing is written when debug mode is off
func TestDebugModeDisabled(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Initialize(Settings{DebugMode: false, Level: "debug", Dir: dir}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if IsDebugMode() {
		t.Error("Expected debug mode to be disabled")
	}
	for _, cat := range AllCategories {
		if IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be disabled when debug mode is off", cat)
		}
	}

	Boot("This should NOT be logged")
	Get(CategoryAPI).Error("This should NOT be logged")
	Audit(CategoryAPI, AuditEvent{Event: AuditRequest, Method: "GET", Path: "/api/awards"})
	CloseAll()

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected logs directory not to exist, stat err = %v", err)
	}
}

func TestCategoryFilter(t *testing.T) {
	resetLogging(t)
	dir := t.TempDir()

	err := Initialize(Settings{
		DebugMode:  true,
		Dir:        dir,
		Categories: map[string]bool{"api": false, "router": true},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if IsCategoryEnabled(CategoryAPI) {
		t.Error("api should be disabled")
	}
	if !IsCategoryEnabled(CategoryRouter) {
		t.Error("router should be enabled")
	}
	if !IsCategoryEnabled(CategoryPanel) {
		t.Error("unlisted categories default to enabled")
	}

	if Get(CategoryAPI).Zap() == nil {
		t.Error("Zap() must never return nil")
	}
}

func TestLevelFiltering(t *testing.T) {
	resetLogging(t)
	dir := t.TempDir()

	if err := Initialize(Settings{DebugMode: true, Level: "warn", Dir: dir}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	PanelDebug("debug should be filtered")
	Panel("info should be filtered")
	PanelError("error should be kept")
	CloseAll()

	content, err := os.ReadFile(filepath.Join(dir, "panel.log"))
	if err != nil {
		t.Fatalf("read panel log: %v", err)
	}
	text := string(content)
	if strings.Contains(text, "filtered") {
		t.Errorf("expected lower levels to be filtered, got: %s", text)
	}
	if !strings.Contains(text, "error should be kept") {
		t.Errorf("expected error line, got: %s", text)
	}
}

func TestAuditJSON(t *testing.T) {
	resetLogging(t)
	dir := t.TempDir()

	if err := Initialize(Settings{DebugMode: true, Format: "json", Dir: dir}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Audit(CategoryAPI, AuditEvent{
		Event:     AuditFailure,
		RequestID: "req-1",
		Method:    "DELETE",
		Path:      "/api/achievements/3",
		Status:    404,
		UserID:    "42",
		Duration:  15 * time.Millisecond,
		Err:       errors.New("not found"),
	})
	CloseAll()

	content, err := os.ReadFile(filepath.Join(dir, "api.log"))
	if err != nil {
		t.Fatalf("read api log: %v", err)
	}
	for _, want := range []string{`"event":"api_failure"`, `"req":"req-1"`, `"status":404`, `"user":"42"`, `"error":"not found"`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("audit line missing %s: %s", want, content)
		}
	}
}

func TestInitializeRequiresDirInDebugMode(t *testing.T) {
	resetLogging(t)
	if err := Initialize(Settings{DebugMode: true}); err == nil {
		t.Fatal("expected error for missing logs directory")
	}
}

func TestConfigureKeepsHandlesWorking(t *testing.T) {
	resetLogging(t)
	first := t.TempDir()
	second := t.TempDir()

	if err := Initialize(Settings{DebugMode: true, Level: "debug", Dir: first}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	held := Get(CategoryPanel)
	held.Info("before reload")

	if err := Initialize(Settings{DebugMode: true, Level: "debug", Dir: second}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if Get(CategoryPanel) != held {
		t.Error("expected the same handle after reload")
	}
	held.Info("after reload")

	Configure(Settings{})
	held.Info("after disable")
	CloseAll()

	old, err := os.ReadFile(filepath.Join(first, "panel.log"))
	if err != nil {
		t.Fatalf("read first log: %v", err)
	}
	if !strings.Contains(string(old), "before reload") {
		t.Errorf("first log missing pre-reload line: %s", old)
	}
	if strings.Contains(string(old), "after") {
		t.Errorf("old file written after reload: %s", old)
	}

	cur, err := os.ReadFile(filepath.Join(second, "panel.log"))
	if err != nil {
		t.Fatalf("read second log: %v", err)
	}
	if !strings.Contains(string(cur), "after reload") {
		t.Errorf("second log missing post-reload line: %s", cur)
	}
	if strings.Contains(string(cur), "after disable") {
		t.Errorf("disabled category still wrote: %s", cur)
	}
}

func TestConfigureWhileLogging(t *testing.T) {
	resetLogging(t)
	dirs := []string{t.TempDir(), t.TempDir()}
	if err := Initialize(Settings{DebugMode: true, Dir: dirs[0]}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	held := Get(CategoryAPI)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			held.Info("line %d", i)
			Audit(CategoryAPI, AuditEvent{Event: AuditRequest, Method: "GET", Path: "/api/awards"})
		}
	}()
	for i := 0; i < 20; i++ {
		Configure(Settings{DebugMode: true, Dir: dirs[i%2]})
	}
	<-done
	CloseAll()

	total := 0
	for _, dir := range dirs {
		content, err := os.ReadFile(filepath.Join(dir, "api.log"))
		if err == nil {
			total += strings.Count(string(content), "line ")
		}
	}
	if total != 200 {
		t.Errorf("expected every line in exactly one file, got %d", total)
	}
}
