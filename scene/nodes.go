package scene

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Nodes []Node

type nodeKind struct {
	Kind string `yaml:"kind"`
}

func (ns *Nodes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return errors.Errorf("line %d: nodes must be a sequence", value.Line)
	}
	result := make(Nodes, 0, len(value.Content))
	for _, item := range value.Content {
		var kind nodeKind
		if err := item.Decode(&kind); err != nil {
			return err
		}
		switch kind.Kind {
		case "image":
			n := &ImageNode{}
			if err := item.Decode(n); err != nil {
				return err
			}
			result = append(result, n)
		case "value":
			n := &ValueNode{}
			if err := item.Decode(n); err != nil {
				return err
			}
			result = append(result, n)
		default:
			return errors.Errorf("line %d: unknown node kind %q", item.Line, kind.Kind)
		}
	}
	*ns = result
	return nil
}
