package config

import (
	"image/color"
	"os"
	"strings"
	"testing"

	"github.com/decker502/shirubot/pkg/embedded"
)

func TestLoadGameCatalog_Embedded(t *testing.T) {
	// 使用项目实际的 data 目录
	embedded.Init(os.DirFS("../../data"))

	catalog, err := LoadGameCatalog(GameCatalogPath)
	if err != nil {
		t.Fatalf("LoadGameCatalog failed: %v", err)
	}

	wantIDs := []string{"knb", "casino", "emoji-puzzle", "draw", "hundred-to-one"}
	ids := catalog.IDs()
	if len(ids) != len(wantIDs) {
		t.Fatalf("Expected %d games, got %d (%v)", len(wantIDs), len(ids), ids)
	}
	for i, id := range wantIDs {
		if ids[i] != id {
			t.Errorf("game #%d: expected id %q, got %q", i, id, ids[i])
		}
	}

	knb, ok := catalog.Get("knb")
	if !ok {
		t.Fatal("knb not found")
	}
	if knb.Name != "КНБ" {
		t.Errorf("knb name: expected КНБ, got %q", knb.Name)
	}
	if knb.Description != "Камень, Ножницы, Бумага" {
		t.Errorf("knb description: got %q", knb.Description)
	}
	if knb.Icon != "✂️" {
		t.Errorf("knb icon: got %q", knb.Icon)
	}
}

func TestLoadGameCatalog_MissingFile(t *testing.T) {
	embedded.Init(os.DirFS(t.TempDir()))

	if _, err := LoadGameCatalog(GameCatalogPath); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

func TestParseGameCatalog_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "empty catalog",
			yaml:    "games: []",
			wantErr: "at least one game is required",
		},
		{
			name: "missing id",
			yaml: `
games:
  - name: КНБ
    color: {from: "#000000", to: "#ffffff"}
`,
			wantErr: "id is required",
		},
		{
			name: "id is not a slug",
			yaml: `
games:
  - id: Emoji Puzzle
    name: Эмодзи-пазл
    color: {from: "#000000", to: "#ffffff"}
`,
			wantErr: "lowercase slug",
		},
		{
			name: "duplicate id",
			yaml: `
games:
  - id: knb
    name: КНБ
    color: {from: "#000000", to: "#ffffff"}
  - id: knb
    name: КНБ 2
    color: {from: "#000000", to: "#ffffff"}
`,
			wantErr: "duplicate id",
		},
		{
			name: "missing name",
			yaml: `
games:
  - id: knb
    color: {from: "#000000", to: "#ffffff"}
`,
			wantErr: "name is required",
		},
		{
			name: "bad color",
			yaml: `
games:
  - id: knb
    name: КНБ
    color: {from: "blue-500", to: "#ffffff"}
`,
			wantErr: "color.from",
		},
		{
			name:    "malformed yaml",
			yaml:    "games: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameCatalog([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGameCatalog_Lookup(t *testing.T) {
	catalog, err := ParseGameCatalog([]byte(`
games:
  - id: knb
    name: КНБ
    color: {from: "#3b82f6", to: "#9333ea"}
  - id: casino
    name: Казино
    color: {from: "#ef4444", to: "#db2777"}
`))
	if err != nil {
		t.Fatalf("ParseGameCatalog failed: %v", err)
	}

	if catalog.Len() != 2 {
		t.Errorf("Expected 2 games, got %d", catalog.Len())
	}
	if !catalog.Has("casino") {
		t.Error("Expected casino to exist")
	}
	if catalog.Has("chess") {
		t.Error("Expected chess to be missing")
	}
	if _, ok := catalog.Get("chess"); ok {
		t.Error("Get should report missing id")
	}

	entry, _ := catalog.Get("knb")
	want := color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	if got := entry.Color.FromRGBA(); got != want {
		t.Errorf("FromRGBA: expected %v, got %v", want, got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#000000", color.RGBA{A: 0xff}, false},
		{"#ffffff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"#9333ea", color.RGBA{R: 0x93, G: 0x33, B: 0xea, A: 0xff}, false},
		{"9333ea", color.RGBA{}, true},
		{"#93", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGradientColor_FallbackGray(t *testing.T) {
	g := GradientColor{From: "nope", To: "nope"}
	gray := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	if g.FromRGBA() != gray || g.ToRGBA() != gray {
		t.Error("Expected gray fallback for invalid colors")
	}
}
