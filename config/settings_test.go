package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseGame(t *testing.T) {
	tests := []struct {
		in      string
		want    Game
		wantErr bool
	}{
		{"gta", GameGTA, false},
		{"GTAV", GameGTA, false},
		{" rdr2 ", GameRDR, false},
		{"gow", GameUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseGame(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGame(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseGame(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSettingsOverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(`
game: rdr
apply_transforms: true
split_by_vertex_count: true
logging:
  level: debug
`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Game != GameRDR {
		t.Errorf("game = %v, want rdr", s.Game)
	}
	if !s.ApplyTransforms || !s.SplitByVertexCount {
		t.Errorf("flags not applied: %+v", s)
	}
	if s.JoinSkinnedModels {
		t.Errorf("join_skinned_models should keep default false")
	}
	if s.Encoding != DefaultEncoding {
		t.Errorf("encoding = %q, want default %q", s.Encoding, DefaultEncoding)
	}
	if s.Logging.Level != "debug" {
		t.Errorf("logging level = %q", s.Logging.Level)
	}
}

func TestParseSettingsRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("gamee: gta\n")); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, err := Parse([]byte("game: gow\n")); err == nil {
		t.Error("expected error for unknown game")
	}
	if _, err := Parse([]byte("encoding: Klingon\n")); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestSettingsSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	s := Default()
	s.Game = GameRDR
	s.AutoCalculateVolume = true
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Game != GameRDR || !loaded.AutoCalculateVolume {
		t.Errorf("loaded settings mismatch: %+v", loaded)
	}
}

func TestFindEncoding(t *testing.T) {
	cm, err := FindEncoding("")
	if err != nil || cm == nil {
		t.Fatalf("default encoding: %v", err)
	}
	if _, err := FindEncoding("Windows 1251"); err != nil {
		t.Error(err)
	}
	if len(ListEncodings()) == 0 {
		t.Error("no encodings listed")
	}
}
