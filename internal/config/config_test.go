package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if len(cfg.Tags) != 6 {
		t.Errorf("Default tags = %v, want 6 entries", cfg.Tags)
	}
	for _, want := range []string{"TODO", "FIXME", "HACK", "XXX", "BUG", "NOTE"} {
		found := false
		for _, tag := range cfg.Tags {
			if tag == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Default tags missing %s", want)
		}
	}
	if cfg.Watch.DebounceMs != DefaultDebounceMs {
		t.Errorf("DebounceMs = %d, want %d", cfg.Watch.DebounceMs, DefaultDebounceMs)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() in empty dir failed: %v", err)
	}
	if len(cfg.Tags) != 6 {
		t.Errorf("expected default tags, got %v", cfg.Tags)
	}
}

func TestLoadTomlFile(t *testing.T) {
	dir := t.TempDir()
	content := `tags = ["TODO", "FIXME"]
exclude_dirs = ["build"]
exclude_patterns = ['\.min\.js$']

[check]
max = 10
block_tags = ["BUG"]

[watch]
debounce_ms = 150
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Tags) != 2 {
		t.Errorf("Tags = %v, want [TODO FIXME]", cfg.Tags)
	}
	if cfg.Check.Max == nil || *cfg.Check.Max != 10 {
		t.Errorf("Check.Max = %v, want 10", cfg.Check.Max)
	}
	if len(cfg.Check.BlockTags) != 1 || cfg.Check.BlockTags[0] != "BUG" {
		t.Errorf("BlockTags = %v, want [BUG]", cfg.Check.BlockTags)
	}
	if cfg.Watch.DebounceMs != 150 {
		t.Errorf("DebounceMs = %d, want 150", cfg.Watch.DebounceMs)
	}
	if len(cfg.ExcludeDirs) != 1 || cfg.ExcludeDirs[0] != "build" {
		t.Errorf("ExcludeDirs = %v, want [build]", cfg.ExcludeDirs)
	}
}

func TestLoadYamlFile(t *testing.T) {
	dir := t.TempDir()
	content := "tags:\n  - TODO\nexclude_dirs:\n  - out\n"
	if err := os.WriteFile(filepath.Join(dir, ".todoscan.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Tags) != 1 || cfg.Tags[0] != "TODO" {
		t.Errorf("Tags = %v, want [TODO]", cfg.Tags)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("tags = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	max := 42
	cfg.Check.Max = &max
	cfg.ExcludePatterns = []string{`\.lock$`}

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Check.Max == nil || *loaded.Check.Max != 42 {
		t.Errorf("Check.Max = %v, want 42", loaded.Check.Max)
	}
	if len(loaded.ExcludePatterns) != 1 {
		t.Errorf("ExcludePatterns = %v, want one entry", loaded.ExcludePatterns)
	}
}

func TestCompilePattern(t *testing.T) {
	re, err := Default().CompilePattern()
	if err != nil {
		t.Fatalf("CompilePattern() failed: %v", err)
	}

	m := re.FindStringSubmatch("// TODO(alice): !! fix the parser #42")
	if m == nil {
		t.Fatal("pattern did not match annotated line")
	}
	if m[1] != "TODO" {
		t.Errorf("tag group = %q, want TODO", m[1])
	}
	if m[2] != "alice" {
		t.Errorf("author group = %q, want alice", m[2])
	}
	if m[3] != "!!" {
		t.Errorf("priority group = %q, want !!", m[3])
	}
	if m[4] != "fix the parser #42" {
		t.Errorf("message group = %q", m[4])
	}
}

func TestCompilePatternInvalidTag(t *testing.T) {
	// QuoteMeta keeps user tags from injecting regex syntax.
	cfg := &Config{Tags: []string{"TO(DO"}}
	if _, err := cfg.CompilePattern(); err != nil {
		t.Errorf("quoted tag should still compile: %v", err)
	}
}

func TestExcludeRegexpsDropsInvalid(t *testing.T) {
	cfg := &Config{ExcludePatterns: []string{`\.min\.js$`, `[invalid`, `\.test\.js$`}}
	res := cfg.ExcludeRegexps()
	if len(res) != 2 {
		t.Errorf("ExcludeRegexps() kept %d, want 2 (invalid dropped)", len(res))
	}
}
