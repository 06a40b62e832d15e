package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".vuitrc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `{
  "colorscheme": "green",
  "highlight_color": "yellow",
  "editor": "nvim",
  "shell": "zsh",
  "match_mode": "fuzzy"
}`)

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Colorscheme != "green" {
		t.Fatalf("colorscheme mismatch: %s", cfg.Colorscheme)
	}
	if cfg.HighlightColor != "yellow" {
		t.Fatalf("highlight_color mismatch: %s", cfg.HighlightColor)
	}
	if cfg.Editor != "nvim" {
		t.Fatalf("editor mismatch: %s", cfg.Editor)
	}
	if cfg.Shell != "zsh" {
		t.Fatalf("shell mismatch: %s", cfg.Shell)
	}
	if cfg.MatchMode != MatchFuzzy {
		t.Fatalf("match_mode mismatch: %s", cfg.MatchMode)
	}
}

func TestLoadMissingFieldsFallBack(t *testing.T) {
	path := writeConfig(t, `{"editor": "hx"}`)

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor != "hx" {
		t.Fatalf("editor mismatch: %s", cfg.Editor)
	}
	if cfg.Colorscheme != defaultColorscheme {
		t.Fatalf("colorscheme should default, got %s", cfg.Colorscheme)
	}
	if cfg.HighlightColor != defaultHighlightColor {
		t.Fatalf("highlight_color should default, got %s", cfg.HighlightColor)
	}
}

func TestLoadMalformedUsesDefaultsInFull(t *testing.T) {
	path := writeConfig(t, `{"colorscheme": "green", "editor": `)

	cfg, err := loadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	// all-or-nothing: the parseable prefix must not leak through
	if cfg.Colorscheme != defaultColorscheme {
		t.Fatalf("colorscheme should default, got %s", cfg.Colorscheme)
	}
	if cfg.Editor != defaultEditor {
		t.Fatalf("editor should default, got %s", cfg.Editor)
	}
}

func TestLoadAbsentFile(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("absent file should not error: %v", err)
	}
	if cfg.Colorscheme != defaultColorscheme || cfg.Editor != defaultEditor {
		t.Fatalf("defaults expected, got %+v", cfg)
	}
}

func TestUnknownMatchModeFallsBack(t *testing.T) {
	path := writeConfig(t, `{"match_mode": "regex"}`)

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MatchMode != MatchSubstring {
		t.Fatalf("match_mode should default, got %s", cfg.MatchMode)
	}
}
