package vertex

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ComponentType is the storage type of one attribute component.
type ComponentType uint8

const (
	Float32 ComponentType = iota
	UNorm8
	UInt8
	UInt16
)

func (c ComponentType) Size() int {
	switch c {
	case Float32:
		return 4
	case UInt16:
		return 2
	default:
		return 1
	}
}

// MaxUint is the largest integer SetUints stores without truncation.
func (c ComponentType) MaxUint() uint32 {
	switch c {
	case UInt16:
		return math.MaxUint16
	case UInt8, UNorm8:
		return math.MaxUint8
	}
	return math.MaxUint32
}

func (c ComponentType) String() string {
	switch c {
	case Float32:
		return "float32"
	case UNorm8:
		return "unorm8"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	}
	return fmt.Sprintf("ComponentType(%d)", int(c))
}

// Attribute is one named field of a vertex record.
type Attribute struct {
	Name       string
	Type       ComponentType
	Components int
}

func (a Attribute) Size() int {
	return a.Type.Size() * a.Components
}

const (
	MaxTexCoords = 8
	MaxColours   = 2
)

// attributeOrder fixes where every attribute sits inside a record.
var attributeOrder = []string{
	"Position",
	"BlendWeights",
	"BlendIndices",
	"Normal",
	"Colour0", "Colour1",
	"TexCoord0", "TexCoord1", "TexCoord2", "TexCoord3",
	"TexCoord4", "TexCoord5", "TexCoord6", "TexCoord7",
	"Tangent",
	"Tangent0", "Tangent1", "Tangent2",
}

var attributeRank = func() map[string]int {
	r := make(map[string]int, len(attributeOrder))
	for i, name := range attributeOrder {
		r[name] = i
	}
	return r
}()

// AttributeOrder returns every known attribute name in record order.
func AttributeOrder() []string {
	return append([]string(nil), attributeOrder...)
}

func TexCoordName(i int) string { return fmt.Sprintf("TexCoord%d", i) }
func ColourName(i int) string   { return fmt.Sprintf("Colour%d", i) }

func IsTangent(name string) bool  { return strings.HasPrefix(name, "Tangent") }
func IsTexCoord(name string) bool { return strings.HasPrefix(name, "TexCoord") }
func IsColour(name string) bool   { return strings.HasPrefix(name, "Colour") }

// Layout is an ordered attribute list. Layouts created through NewLayout are
// always sorted by the global attribute order.
type Layout []Attribute

// NewLayout validates attrs and sorts them into record order. Unknown names,
// duplicates and component counts outside 1..4 are errors.
func NewLayout(attrs ...Attribute) (Layout, error) {
	l := make(Layout, 0, len(attrs))
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if _, ok := attributeRank[a.Name]; !ok {
			return nil, errors.Errorf("unknown vertex attribute %q", a.Name)
		}
		if seen[a.Name] {
			return nil, errors.Errorf("duplicated vertex attribute %q", a.Name)
		}
		if a.Components <= 0 || a.Components > 4 {
			return nil, errors.Errorf("attribute %q has %d components", a.Name, a.Components)
		}
		seen[a.Name] = true
		l = append(l, a)
	}
	// insertion sort, layouts are tiny
	for i := 1; i < len(l); i++ {
		for j := i; j > 0 && attributeRank[l[j].Name] < attributeRank[l[j-1].Name]; j-- {
			l[j], l[j-1] = l[j-1], l[j]
		}
	}
	return l, nil
}

// MustLayout is NewLayout for layouts fixed in code; it panics on error.
func MustLayout(attrs ...Attribute) Layout {
	l, err := NewLayout(attrs...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Layout) Stride() int {
	stride := 0
	for _, a := range l {
		stride += a.Size()
	}
	return stride
}

// Offset returns the byte offset of the attribute inside a record.
func (l Layout) Offset(name string) (int, bool) {
	off := 0
	for _, a := range l {
		if a.Name == name {
			return off, true
		}
		off += a.Size()
	}
	return 0, false
}

func (l Layout) Find(name string) (Attribute, bool) {
	for _, a := range l {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

func (l Layout) Has(name string) bool {
	_, ok := l.Find(name)
	return ok
}

func (l Layout) Names() []string {
	names := make([]string, len(l))
	for i, a := range l {
		names[i] = a.Name
	}
	return names
}

// Equal reports whether both layouts describe the same record.
func (l Layout) Equal(o Layout) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}
