// Package drawablexml writes assembled drawables as the xml documents the
// game asset tools import.
package drawablexml

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/drawable"
)

// WriteGTA writes d under a Drawable root.
func WriteGTA(w io.Writer, d *drawable.Drawable) error {
	return write(w, d, flavorGTA)
}

// WriteRDR writes d under a RDR2Drawable root.
func WriteRDR(w io.Writer, d *drawable.Drawable) error {
	return write(w, d, flavorRDR)
}

func write(w io.Writer, d *drawable.Drawable, f flavor) error {
	if d == nil {
		return errors.New("nil drawable")
	}
	b := &builder{flavor: f}
	doc := b.drawable(d)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrapf(err, "encoding drawable %s", d.Name)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
