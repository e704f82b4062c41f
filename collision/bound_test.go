package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/scene"
)

func TestMaterialTable(t *testing.T) {
	if m := DefaultMaterial(config.GameGTA); m.Name != "DEFAULT" || m.Index != 0 {
		t.Errorf("gta default = %+v", m)
	}
	m, ok := FindMaterial(config.GameGTA, "concrete")
	if !ok || m.Index != 1 || m.Density != 7850.5 {
		t.Errorf("concrete = %+v, %v", m, ok)
	}
	if len(Materials(config.GameRDR)) == 0 {
		t.Errorf("rdr table empty")
	}
	if _, ok := MaterialByIndex(config.GameGTA, -1); ok {
		t.Errorf("negative index resolved")
	}
}

func TestBuildBoxVolume(t *testing.T) {
	b := &Builder{Game: config.GameGTA, AutoCalculateVolume: true, AutoCalculateInertia: true}
	bound, err := b.Build(&scene.BoundObject{
		Name:     "box",
		Kind:     scene.BoundBox,
		Material: "CONCRETE",
		Center:   mgl32.Vec3{1, 0, 0},
		Size:     mgl32.Vec3{2, 4, 6},
	})
	if err != nil {
		t.Fatal(err)
	}
	if bound.Volume != 48 {
		t.Errorf("volume = %v", bound.Volume)
	}
	if bound.BoxMin != (mgl32.Vec3{0, -2, -3}) || bound.BoxMax != (mgl32.Vec3{2, 2, 3}) {
		t.Errorf("box = %v %v", bound.BoxMin, bound.BoxMax)
	}
	if want := (mgl32.Vec3{(16 + 36) / 12.0, (4 + 36) / 12.0, (4 + 16) / 12.0}); !bound.Inertia.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("inertia = %v, want %v", bound.Inertia, want)
	}
	if bound.Mass != 48*7850.5 {
		t.Errorf("mass = %v", bound.Mass)
	}
}

func TestBuildCompositeUnion(t *testing.T) {
	shift := mgl32.Translate3D(10, 0, 0)
	b := &Builder{Game: config.GameRDR, AutoCalculateVolume: true}
	bound, err := b.Build(&scene.BoundObject{
		Name: "root",
		Kind: scene.BoundComposite,
		Children: []*scene.BoundObject{
			{Name: "s", Kind: scene.BoundSphere, Radius: 1},
			{Name: "c", Kind: scene.BoundCylinder, Radius: 1, Length: 2, Transform: &shift},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(bound.Children) != 2 {
		t.Fatalf("children = %d", len(bound.Children))
	}
	if bound.BoxMin != (mgl32.Vec3{-1, -1, -1}) || bound.BoxMax != (mgl32.Vec3{11, 1, 1}) {
		t.Errorf("composite box = %v %v", bound.BoxMin, bound.BoxMax)
	}
	want := float32(4.0/3.0*math.Pi + 2*math.Pi)
	if math.Abs(float64(bound.Volume-want)) > 1e-4 {
		t.Errorf("volume = %v, want %v", bound.Volume, want)
	}
}

func TestBuildUnknownKind(t *testing.T) {
	if _, err := (&Builder{}).Build(&scene.BoundObject{Kind: "mesh"}); err == nil {
		t.Errorf("expected error")
	}
}
