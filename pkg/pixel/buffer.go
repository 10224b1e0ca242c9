package pixel

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

var (
	ErrInvalidBuffer = errors.New("invalid pixel buffer")
	ErrInvalidPixel  = errors.New("pixel does not match format")
)

// Format is the sample layout of a buffer. Every channel is 8 bits.
type Format uint8

const (
	Gray Format = iota + 1
	GrayAlpha
	RGB
	RGBA
)

func (f Format) Channels() int {
	switch f {
	case Gray:
		return 1
	case GrayAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

func (f Format) HasAlpha() bool {
	return f == GrayAlpha || f == RGBA
}

func (f Format) String() string {
	switch f {
	case Gray:
		return "Gray"
	case GrayAlpha:
		return "GrayAlpha"
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	}
	return "Unknown"
}

// Pixel holds one sample per channel.
type Pixel []uint8

func New(width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 || format.Channels() == 0 {
		return nil, errors.Wrapf(ErrInvalidBuffer, "%dx%d %s", width, height, format)
	}

	return &Buffer{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]uint8, width*height*format.Channels()),
	}, nil
}

// Buffer is a row-major 8-bit raster. It implements the draw.Image interface
// so it can be handed to image encoders and display drivers directly.
type Buffer struct {
	Width  int
	Height int
	Format Format
	Pix    []uint8
}

func (b *Buffer) Validate() error {
	if b == nil {
		return errors.Wrap(ErrInvalidBuffer, "nil buffer")
	}
	c := b.Format.Channels()
	if b.Width <= 0 || b.Height <= 0 || c == 0 {
		return errors.Wrapf(ErrInvalidBuffer, "%dx%d %s", b.Width, b.Height, b.Format)
	}
	if len(b.Pix) != b.Width*b.Height*c {
		return errors.Wrapf(ErrInvalidBuffer, "want %d samples, have %d", b.Width*b.Height*c, len(b.Pix))
	}
	return nil
}

func (b *Buffer) Stride() int {
	return b.Width * b.Format.Channels()
}

// Offset returns the index of the first sample of (x, y).
func (b *Buffer) Offset(x, y int) int {
	return y*b.Stride() + x*b.Format.Channels()
}

func (b *Buffer) Rect() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) SameShape(o *Buffer) bool {
	return o != nil && b.Width == o.Width && b.Height == o.Height && b.Format == o.Format
}

func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Pix = make([]uint8, len(b.Pix))
	copy(c.Pix, b.Pix)
	return &c
}

// CopyFrom overwrites b with the samples of src, which must have the same shape.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if !b.SameShape(src) {
		return errors.Wrapf(ErrInvalidBuffer, "copy %dx%d into %dx%d", src.Width, src.Height, b.Width, b.Height)
	}
	copy(b.Pix, src.Pix)
	return nil
}

// PixelAt returns a view of the samples at (x, y). The caller must not keep it
// past the next mutation of b.
func (b *Buffer) PixelAt(x, y int) Pixel {
	i := b.Offset(x, y)
	return b.Pix[i : i+b.Format.Channels() : i+b.Format.Channels()]
}

func (b *Buffer) SetPixel(x, y int, p Pixel) {
	copy(b.PixelAt(x, y), p)
}

func (b *Buffer) Fill(p Pixel) error {
	return b.FillRect(b.Rect(), p)
}

// FillRect fills r clipped to the buffer bounds.
func (b *Buffer) FillRect(r image.Rectangle, p Pixel) error {
	c := b.Format.Channels()
	if len(p) != c {
		return errors.Wrapf(ErrInvalidPixel, "%d channels for %s", len(p), b.Format)
	}

	r = r.Intersect(b.Rect())
	if r.Empty() {
		return nil
	}

	// build one row then copy it down
	i0 := b.Offset(r.Min.X, r.Min.Y)
	n := r.Dx() * c
	row := b.Pix[i0 : i0+n]
	for i := 0; i < n; i += c {
		copy(row[i:i+c], p)
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		j := b.Offset(r.Min.X, y)
		copy(b.Pix[j:j+n], row)
	}

	return nil
}

// Bounds implements the image.Image (and draw.Image) interface.
func (b *Buffer) Bounds() image.Rectangle {
	return b.Rect()
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (b *Buffer) ColorModel() color.Model {
	return colorModel(b.Format)
}

// At implements the image.Image (and draw.Image) interface.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return color.NRGBA{}
	}
	return toColor(b.Format, b.PixelAt(x, y))
}

// Set implements the draw.Image interface.
func (b *Buffer) Set(x, y int, c color.Color) {
	if x >= 0 && x < b.Width && y >= 0 && y < b.Height {
		fromColor(b.Format, c, b.PixelAt(x, y))
	}
}
