package utils

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// StringToBytesBuffer encodes s into a zero padded field of bufSize bytes.
func StringToBytesBuffer(cm *charmap.Charmap, s string, bufSize int, nilTerminate bool) ([]byte, error) {
	bs, _, err := transform.Bytes(cm.NewEncoder(), []byte(s))
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %q", s)
	}
	if nilTerminate {
		bs = append(bs, 0)
	}
	if len(bs) > bufSize {
		return nil, errors.Errorf("string %q does not fit into %d bytes", s, bufSize)
	}
	r := make([]byte, bufSize)
	copy(r, bs)
	return r, nil
}

func BytesToString(cm *charmap.Charmap, bs []byte) string {
	n := len(bs)
	for i, b := range bs {
		if b == 0 {
			n = i
			break
		}
	}
	s, _, err := transform.Bytes(cm.NewDecoder(), bs[:n])
	if err != nil {
		return string(bs[:n])
	}
	return string(s)
}

func Align(n, align int) int {
	if off := n % align; off != 0 {
		return n + align - off
	}
	return n
}
