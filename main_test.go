package main

import (
	"os"
	"path/filepath"
	"testing"

	"lightstation/pkg/game/config"
)

func TestNewLogger_TerminalRendererLogsToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "station.log")

	logger, err := newLogger(cfg, true)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("peer connected")
	_ = logger.Sync()

	raw, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(raw) == 0 {
		t.Error("log file is empty, want the terminal session's log lines")
	}
}

func TestNewLogger_GUIKeepsStderr(t *testing.T) {
	cfg := config.Default()
	cfg.GUI = true
	cfg.Log.File = filepath.Join(t.TempDir(), "station.log")

	if _, err := newLogger(cfg, true); err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if _, err := os.Stat(cfg.Log.File); !os.IsNotExist(err) {
		t.Errorf("Stat(%s) err = %v, want not exist", cfg.Log.File, err)
	}
}
