package config

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

const DefaultEncoding = "Windows 1252"

// FindEncoding returns the single byte charset used for fixed size name
// fields of the binary container.
func FindEncoding(name string) (*charmap.Charmap, error) {
	if name == "" {
		return charmap.Windows1252, nil
	}
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if cm.String() == name {
				return cm, nil
			}
		}
	}
	return nil, errors.Errorf("Failed to find encoding %q", name)
}

func ListEncodings() []string {
	list := make([]string, 0)
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			list = append(list, cm.String())
		}
	}
	return list
}
