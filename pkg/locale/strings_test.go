package locale

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/shirubot/pkg/embedded"
)

func TestParseStrings(t *testing.T) {
	content := `[NEVER_PLAYED]
Никогда

[GAMES_STARTED]
Игр начато
лишняя строка игнорируется

orphan line without key
[RESET]
Сброс
`

	s, err := ParseStrings(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseStrings failed: %v", err)
	}

	tests := []struct {
		key      string
		expected string
	}{
		{"NEVER_PLAYED", "Никогда"},
		{"GAMES_STARTED", "Игр начато"},
		{"RESET", "Сброс"},
		{"MISSING", "[MISSING]"},
	}

	for _, tt := range tests {
		if got := s.GetString(tt.key); got != tt.expected {
			t.Errorf("GetString(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}

	if s.Len() != 3 {
		t.Errorf("Expected 3 strings, got %d", s.Len())
	}
}

func TestParseStrings_Empty(t *testing.T) {
	s, err := ParseStrings(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseStrings failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty table, got %d entries", s.Len())
	}
}

func TestLoadStrings_FromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "strings"), 0755); err != nil {
		t.Fatal(err)
	}
	content := "[APP_TITLE]\nSHIRU BOT\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "strings", "xx-XX.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	embedded.Init(os.DirFS(tmpDir))

	s, err := LoadStrings(StringsPath("xx-XX"))
	if err != nil {
		t.Fatalf("LoadStrings failed: %v", err)
	}
	if got := s.GetString(KeyAppTitle); got != "SHIRU BOT" {
		t.Errorf("APP_TITLE = %q", got)
	}

	if _, err := LoadStrings(StringsPath("yy-YY")); err == nil {
		t.Error("Expected error for missing strings file")
	}
}
