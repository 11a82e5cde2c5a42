package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetup_Level(t *testing.T) {
	closer, err := Setup("debug", "")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer closer.Close()

	if log.GetLevel() != log.DebugLevel {
		t.Errorf("Expected debug level, got %s", log.GetLevel())
	}
}

func TestSetup_InvalidLevel(t *testing.T) {
	if _, err := Setup("loud", ""); err == nil {
		t.Error("Expected error for invalid level")
	}
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	closer, err := Setup("info", path)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	log.Info("hello file")
	closer.Close()
	log.SetOutput(os.Stderr)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("Log file missing entry: %q", string(data))
	}
}

func TestWA_SubModule(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(log.InfoLevel)
	defer log.SetOutput(os.Stderr)

	WA("Client").Sub("Socket").Infof("connected to %s", "server")

	out := buf.String()
	if !strings.Contains(out, "connected to server") {
		t.Errorf("Missing message: %q", out)
	}
	if !strings.Contains(out, "module=Client/Socket") {
		t.Errorf("Missing module field: %q", out)
	}
}
