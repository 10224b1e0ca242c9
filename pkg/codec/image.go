package codec

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"imgseq/pkg/pixel"
)

// FromImage copies img into an RGBA buffer with straight alpha.
func FromImage(img image.Image) (*pixel.Buffer, error) {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()

	buf, err := pixel.New(b.Dx(), b.Dy(), pixel.RGBA)
	if err != nil {
		return nil, errors.Wrap(err, "empty image")
	}

	n := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		copy(buf.Pix[y*n:(y+1)*n], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+n])
	}
	return buf, nil
}

// ToNRGBA converts buf into an *image.NRGBA anchored at (0, 0).
func ToNRGBA(buf *pixel.Buffer) *image.NRGBA {
	if buf.Format == pixel.RGBA {
		pix := make([]uint8, len(buf.Pix))
		copy(pix, buf.Pix)
		return &image.NRGBA{Pix: pix, Stride: buf.Stride(), Rect: buf.Rect()}
	}
	return imaging.Clone(buf)
}

// Decode reads a still image in any format imaging understands, applying the
// EXIF orientation.
func Decode(r io.Reader) (*pixel.Buffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return FromImage(img)
}

// Encode writes buf in the given format.
func Encode(w io.Writer, buf *pixel.Buffer, format imaging.Format) error {
	if err := imaging.Encode(w, ToNRGBA(buf), format); err != nil {
		return errors.Wrapf(err, "encode %s", format)
	}
	return nil
}

// FormatOf guesses the output format from a file name.
func FormatOf(filename string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return f, errors.Wrap(err, filename)
	}
	return f, nil
}
