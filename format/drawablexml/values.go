package drawablexml

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type xmlValue struct {
	Value string `xml:"value,attr"`
}

type xmlVec3 struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

type xmlVec4 struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
	W string `xml:"w,attr"`
}

type xmlColour struct {
	R uint8 `xml:"r,attr"`
	G uint8 `xml:"g,attr"`
	B uint8 `xml:"b,attr"`
}

func formatFloat(f float32) string {
	if f == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func intValue(v int) *xmlValue       { return &xmlValue{strconv.Itoa(v)} }
func uintValue(v uint32) *xmlValue   { return &xmlValue{strconv.FormatUint(uint64(v), 10)} }
func floatValue(f float32) *xmlValue { return &xmlValue{formatFloat(f)} }
func boolValue(b bool) *xmlValue     { return &xmlValue{strconv.FormatBool(b)} }

func vec3(v mgl32.Vec3) *xmlVec3 {
	return &xmlVec3{formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2])}
}

func vec4(v mgl32.Vec4) *xmlVec4 {
	return &xmlVec4{formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]), formatFloat(v[3])}
}

// quat writes x y z w, the order every engine tool reads quaternions in.
func quat(q mgl32.Quat) *xmlVec4 {
	return vec4(mgl32.Vec4{q.V[0], q.V[1], q.V[2], q.W})
}

func joinInts(vs []int, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
