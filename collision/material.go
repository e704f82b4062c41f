package collision

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/drawable_exporter/config"
)

type Material struct {
	Index   int      `yaml:"-"`
	Name    string   `yaml:"name"`
	Color   [4]uint8 `yaml:"color"`
	Density float32  `yaml:"density"`
}

//go:embed materials.yaml
var materialsYAML []byte

var materials = mustLoadMaterials(materialsYAML)

type materialTable struct {
	GTA []Material `yaml:"gta"`
	RDR []Material `yaml:"rdr"`
}

func mustLoadMaterials(data []byte) map[config.Game][]Material {
	var t materialTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		panic(errors.Wrap(err, "collision materials"))
	}
	for i := range t.GTA {
		t.GTA[i].Index = i
	}
	for i := range t.RDR {
		t.RDR[i].Index = i
	}
	return map[config.Game][]Material{
		config.GameGTA: t.GTA,
		config.GameRDR: t.RDR,
	}
}

// Materials returns the engine material list in index order.
func Materials(game config.Game) []Material {
	return materials[game]
}

func MaterialByIndex(game config.Game, index int) (Material, bool) {
	list := materials[game]
	if index < 0 || index >= len(list) {
		return Material{}, false
	}
	return list[index], true
}

func FindMaterial(game config.Game, name string) (Material, bool) {
	for _, m := range materials[game] {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Material{}, false
}

// DefaultMaterial is the first table entry, used when a name does not resolve.
func DefaultMaterial(game config.Game) Material {
	list := materials[game]
	if len(list) == 0 {
		return Material{Name: "DEFAULT"}
	}
	return list[0]
}
