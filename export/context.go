// Package export assembles drawables from scene objects.
package export

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mogaika/drawable_exporter/collision"
	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/schema"
	"github.com/mogaika/drawable_exporter/shaderdef"
)

// BoundsBuilder creates embedded collision for a drawable.
type BoundsBuilder interface {
	Build(obj *scene.BoundObject) (*collision.Bound, error)
}

// Context carries everything one export call reads. Each call owns its
// Context, so exports for different games can run side by side.
type Context struct {
	Settings *config.Settings
	Schema   schema.Schema
	Shaders  *shaderdef.Library
	Bounds   BoundsBuilder
	Log      *zap.SugaredLogger
}

func NewContext(settings *config.Settings, shaders *shaderdef.Library, log *zap.SugaredLogger) (*Context, error) {
	if settings == nil {
		settings = config.Default()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s, err := schema.For(settings.Game)
	if err != nil {
		return nil, errors.Wrap(err, "export context")
	}
	return &Context{
		Settings: settings,
		Schema:   s,
		Shaders:  shaders,
		Bounds:   collision.NewBuilder(settings, log),
		Log:      log,
	}, nil
}
