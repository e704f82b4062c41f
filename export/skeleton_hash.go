package export

import (
	"math"
	"strconv"
	"strings"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/utils"
)

// skeletonHashes fills the three skeleton check values. The engine algorithm
// is unknown; these only have to change whenever tags, flags or the rest pose
// change, which is what tools reading the files compare.
//
// unknown50 is joaat and unknown54 crc32 of "tag flags" per bone, unknown58
// crc32 of "tag flags translation rotation scale". Rotation is written w x y z.
func skeletonHashes(bones []*drawable.Bone) (unknown50, unknown54, unknown58 uint32) {
	if len(bones) == 0 {
		return 0, 0, 0
	}
	short := make([]string, len(bones))
	long := make([]string, len(bones))
	for i, b := range bones {
		tag := strconv.Itoa(int(b.Tag))
		flags := strings.Join(b.Flags, " ")
		short[i] = tag + " " + flags

		r := b.Rotation
		long[i] = strings.Join([]string{
			tag,
			flags,
			joinFloats(b.Translation[0], b.Translation[1], b.Translation[2]),
			joinFloats(r.W, r.V[0], r.V[1], r.V[2]),
			joinFloats(b.Scale[0], b.Scale[1], b.Scale[2]),
		}, " ")
	}
	s50 := strings.Join(short, " ")
	s58 := strings.Join(long, " ")
	return utils.Joaat(s50), utils.Crc32(s50), utils.Crc32(s58)
}

func joinFloats(fs ...float32) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = reprFloat(float64(f))
	}
	return strings.Join(parts, " ")
}

// reprFloat prints the shortest round trip form with a ".0" on integral
// values and exponent form outside 1e-4 <= |f| < 1e16.
func reprFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		// Go already pads the exponent to two digits, "1e-05"
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
