package browser

import (
	"os"
	"strings"
	"sync"

	"sxredder/internal/log"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

// MetaField is one labelled value shown under a preview
type MetaField struct {
	Label string
	Value string
}

var registerMakerNotes sync.Once

// exifFields are read in display order
var exifFields = []struct {
	name  exif.FieldName
	label string
}{
	{exif.Make, "Make"},
	{exif.Model, "Camera"},
	{exif.DateTimeOriginal, "Taken"},
	{exif.PixelXDimension, "Width"},
	{exif.PixelYDimension, "Height"},
}

// imageMetadata reads EXIF fields from an image. Images without EXIF data,
// or with data that doesn't decode, yield nil.
func (p *Previewer) imageMetadata(path string) []MetaField {
	registerMakerNotes.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		p.logger.With(log.F("path", path)).WithError(err).Debug("no exif data")
		return nil
	}

	var fields []MetaField
	for _, field := range exifFields {
		tag, err := x.Get(field.name)
		if err != nil {
			continue
		}
		value, err := tag.StringVal()
		if err != nil {
			value = tag.String()
		}
		value = strings.TrimSpace(strings.TrimRight(value, "\x00"))
		if value == "" {
			continue
		}
		fields = append(fields, MetaField{Label: field.label, Value: value})
	}
	return fields
}
