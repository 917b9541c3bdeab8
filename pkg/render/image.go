package render

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
)

// DefaultQuality is the JPEG quality used for printed output.
const DefaultQuality = 95

// Open decodes the image file at path.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, rgerrors.WrapIO(err, "%s", path)
	}
	return img, nil
}

// Save encodes img to path. The format follows the file extension; quality
// applies to JPEG only. A failure while writing may leave a partial file.
func Save(path string, img image.Image, quality int) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeInvalidInput, err, "output %s", path)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return rgerrors.WrapIO(err, "save %s", path)
	}
	return nil
}

// Encode writes img to w in the given format ("jpeg", "png", ...).
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeInvalidInput, err, "format %s", format)
	}
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(quality)); err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeProcessing, err, "encode %s", format)
	}
	return nil
}
