package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// UnitToByte maps [0,1] to [0,255] with rounding.
func UnitToByte(f float32) uint8 {
	return uint8(math.Round(float64(Clamp(f, 0, 1) * 255)))
}

// DecomposeMat4 splits an affine matrix into translation, rotation and scale.
// A mirrored basis is reported as a negative X scale.
func DecomposeMat4(m mgl32.Mat4) (t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) {
	t = m.Col(3).Vec3()

	basis := mgl32.Ident4()
	for i := 0; i < 3; i++ {
		col := m.Col(i).Vec3()
		s[i] = col.Len()
		if s[i] != 0 {
			col = col.Mul(1 / s[i])
		}
		basis.SetCol(i, col.Vec4(0))
	}
	if basis.Det() < 0 {
		s[0] = -s[0]
		basis.SetCol(0, basis.Col(0).Mul(-1))
	}

	r = mgl32.Mat4ToQuat(basis).Normalize()
	if r.W < 0 {
		r = r.Scale(-1)
	}
	return t, r, s
}

func IsIdentity(m mgl32.Mat4) bool {
	return m.ApproxEqualThreshold(mgl32.Ident4(), 1e-6)
}

func MinVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Min(float64(a[0]), float64(b[0]))),
		float32(math.Min(float64(a[1]), float64(b[1]))),
		float32(math.Min(float64(a[2]), float64(b[2]))),
	}
}

func MaxVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Max(float64(a[0]), float64(b[0]))),
		float32(math.Max(float64(a[1]), float64(b[1]))),
		float32(math.Max(float64(a[2]), float64(b[2]))),
	}
}

// BoxUnion returns the box enclosing every min/max pair. Empty input gives
// zero vectors.
func BoxUnion(mins, maxs []mgl32.Vec3) (bbMin, bbMax mgl32.Vec3) {
	for i := range mins {
		if i == 0 {
			bbMin, bbMax = mins[i], maxs[i]
			continue
		}
		bbMin = MinVec3(bbMin, mins[i])
		bbMax = MaxVec3(bbMax, maxs[i])
	}
	return bbMin, bbMax
}

func BoxCenter(bbMin, bbMax mgl32.Vec3) mgl32.Vec3 {
	return bbMin.Add(bbMax).Mul(0.5)
}

func SphereRadius(bbMax, center mgl32.Vec3) float32 {
	return bbMax.Sub(center).Len()
}
