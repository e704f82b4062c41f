package shaderdef

import (
	"reflect"
	"testing"

	"github.com/mogaika/drawable_exporter/config"
)

func loadTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := LoadFile("testdata/shaders.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func TestFind(t *testing.T) {
	lib := loadTestLibrary(t)
	tests := []struct {
		game config.Game
		name string
		want string
	}{
		{config.GameGTA, "default.sps", "default"},
		{config.GameGTA, "DEFAULT_NOEDGE.SPS", "default"},
		{config.GameGTA, "normal", "normal"},
		{config.GameGTA, "terrain_uber_4lyr", ""},
		{config.GameRDR, "terrain_uber_4lyr", "terrain_uber_4lyr"},
		{config.GameRDR, "normal.sps", ""},
	}
	for _, tt := range tests {
		got := lib.Find(tt.game, tt.name)
		name := ""
		if got != nil {
			name = got.Name
		}
		if name != tt.want {
			t.Errorf("Find(%v, %q) = %q, want %q", tt.game, tt.name, name, tt.want)
		}
	}

	var nilLib *Library
	if nilLib.Find(config.GameGTA, "default.sps") != nil {
		t.Errorf("nil library should find nothing")
	}
}

func TestParameterOrderAndTypes(t *testing.T) {
	s := loadTestLibrary(t).Find(config.GameGTA, "normal.sps")
	var names []string
	for _, p := range s.Parameters {
		names = append(names, p.Name)
	}
	want := []string{"DiffuseSampler", "BumpSampler", "Bumpiness", "gWindGlobalParams", "gWorldBones"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
	p, ok := s.Parameter("gWindGlobalParams")
	if !ok || !p.IsArray() || p.Count != 3 || p.Type != ParameterFloat4 {
		t.Errorf("array parameter = %+v", p)
	}
	if !s.RequiredTangent() || !s.RequiredNormal() || !s.UsesTexCoord("TexCoord0") || s.UsesColour("Colour1") {
		t.Errorf("vertex needs wrong: %+v", s)
	}
}

func TestCBufferDefaults(t *testing.T) {
	s := loadTestLibrary(t).Find(config.GameRDR, "default")
	p, _ := s.Parameter("emissive")
	if got := p.Defaults(); got != [4]float32{0.5, 2, 0, 0} {
		t.Errorf("defaults = %v", got)
	}
	flag, err := s.DrawBucketFlag()
	if err != nil || !flag {
		t.Errorf("draw bucket flag = %v, %v", flag, err)
	}
	if got := s.BufferSizeString(); got != "64 16" {
		t.Errorf("buffer sizes = %q", got)
	}
}

func TestUnknownParameterTypeFailsLoad(t *testing.T) {
	_, err := Parse([]byte(`
gta:
  - name: broken
    parameters:
      - {name: p, type: float5}
`))
	if err == nil {
		t.Fatal("expected error for unknown parameter type")
	}
}

func TestDuplicateParameter(t *testing.T) {
	_, err := Parse([]byte(`
rdr:
  - name: dup
    parameters:
      - {name: p, type: float}
      - {name: p, type: float2}
`))
	if err == nil {
		t.Fatal("expected error for duplicate parameter")
	}
}
