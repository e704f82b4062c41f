package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/export"
	"github.com/mogaika/drawable_exporter/format/gltfpreview"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/shaderdef"
	"github.com/mogaika/drawable_exporter/utils"
)

func main() {
	var scenePath, shadersPath, configPath, out, game, gltfPath, binPath, logLevel string
	var dump, split, join, applyTransforms bool
	flag.StringVar(&scenePath, "scene", "", "Path to scene yaml")
	flag.StringVar(&shadersPath, "shaders", "", "Path to shader definitions yaml, overrides config")
	flag.StringVar(&configPath, "config", "", "Path to settings yaml")
	flag.StringVar(&out, "out", "", "Output xml path, default <scene name>.ydr.xml next to the scene")
	flag.StringVar(&game, "game", "", "Target game override: gta or rdr")
	flag.StringVar(&gltfPath, "gltf", "", "Also write a gltf/glb preview of the high lod")
	flag.StringVar(&binPath, "bin", "", "Also write the binary geometry container")
	flag.StringVar(&logLevel, "log", "", "Log level override: debug, info, warn, error")
	flag.BoolVar(&dump, "dump", false, "Dump the assembled drawable to stdout")
	flag.BoolVar(&split, "split", false, "Split geometries by vertex count")
	flag.BoolVar(&join, "join", false, "Join skinned models of each lod")
	flag.BoolVar(&applyTransforms, "apply-transforms", false, "Apply the armature world transform to bones")
	flag.Parse()

	if scenePath == "" {
		flag.PrintDefaults()
		return
	}

	settings := config.Default()
	if configPath != "" {
		var err error
		if settings, err = config.LoadFile(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if game != "" {
		g, err := config.ParseGame(game)
		if err != nil {
			log.Fatal(err)
		}
		settings.Game = g
	}
	if shadersPath != "" {
		settings.ShaderDefinitions = shadersPath
	}
	if logLevel != "" {
		settings.Logging.Level = logLevel
	}
	settings.SplitByVertexCount = settings.SplitByVertexCount || split
	settings.JoinSkinnedModels = settings.JoinSkinnedModels || join
	settings.ApplyTransforms = settings.ApplyTransforms || applyTransforms

	var fileCfg utils.LogFileConfig
	if settings.Logging.File != "" {
		fileCfg = utils.DefaultLogFileConfig(settings.Logging.File)
	}
	logger := utils.NewLogger(settings.Logging.Level, fileCfg, true)
	defer logger.Sync()
	sugar := logger.Sugar()

	var shaders *shaderdef.Library
	if settings.ShaderDefinitions != "" {
		var err error
		if shaders, err = shaderdef.LoadFile(settings.ShaderDefinitions); err != nil {
			sugar.Fatalf("Failed to load shader definitions: %v", err)
		}
	} else {
		sugar.Warn("No shader definitions given, every material uses permissive defaults")
	}

	obj, err := scene.LoadFile(scenePath)
	if err != nil {
		sugar.Fatalf("Failed to load scene: %v", err)
	}

	ctx, err := export.NewContext(settings, shaders, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	if out == "" {
		name := obj.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
		}
		out = filepath.Join(filepath.Dir(scenePath), strings.ToLower(name)+".ydr.xml")
	}

	d, err := export.Export(ctx, obj, out)
	if err != nil {
		sugar.Fatalf("Export failed: %v", err)
	}

	if binPath != "" {
		if err := export.ExportBinary(ctx, d, binPath); err != nil {
			sugar.Fatalf("Binary export failed: %v", err)
		}
	}
	if gltfPath != "" {
		if err := gltfpreview.Save(gltfPath, d); err != nil {
			sugar.Fatalf("Preview export failed: %v", err)
		}
	}
	if dump {
		utils.Dump(d)
	}
}
