package config

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Game selects the engine a drawable is exported for. It is carried by the
// export context and never stored globally, so several exports may run at once.
type Game int

const (
	GameUnknown Game = iota
	GameGTA
	GameRDR
)

func (g Game) String() string {
	switch g {
	case GameGTA:
		return "gta"
	case GameRDR:
		return "rdr"
	default:
		return "unknown"
	}
}

func ParseGame(s string) (Game, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gta", "gta5", "gtav":
		return GameGTA, nil
	case "rdr", "rdr2":
		return GameRDR, nil
	}
	return GameUnknown, errors.Errorf("Unknown game %q", s)
}

func (g Game) MarshalYAML() (interface{}, error) {
	return g.String(), nil
}

func (g *Game) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseGame(value.Value)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
