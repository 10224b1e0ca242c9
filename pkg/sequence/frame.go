package sequence

import (
	"image"
	"time"

	"imgseq/pkg/pixel"
)

// Blend controls how a frame is drawn onto the canvas.
type Blend uint8

const (
	// Over alpha-composites the frame onto the canvas. Formats without an
	// alpha channel are overwritten.
	Over Blend = iota
	// Source overwrites the covered canvas region.
	Source
)

func (b Blend) String() string {
	switch b {
	case Over:
		return "over"
	case Source:
		return "source"
	}
	return "unknown"
}

// Frame is one image of a sequence, placed at (X, Y) on the canvas.
type Frame struct {
	Buffer   *pixel.Buffer
	Delay    time.Duration
	Disposal Disposal
	Blend    Blend
	X        int
	Y        int
}

// Bounds returns the frame's rectangle in canvas coordinates. It may extend
// past the canvas.
func (f *Frame) Bounds() image.Rectangle {
	if f.Buffer == nil {
		return image.Rectangle{}
	}
	return image.Rect(f.X, f.Y, f.X+f.Buffer.Width, f.Y+f.Buffer.Height)
}

// draw composites f onto canvas and returns the canvas region it touched.
func draw(canvas *pixel.Buffer, f *Frame) image.Rectangle {
	area := f.Bounds().Intersect(canvas.Rect())
	if area.Empty() {
		return image.Rectangle{}
	}

	src := f.Buffer
	c := canvas.Format.Channels()
	n := area.Dx() * c
	overwrite := f.Blend == Source || !canvas.Format.HasAlpha()

	for y := area.Min.Y; y < area.Max.Y; y++ {
		d := canvas.Pix[canvas.Offset(area.Min.X, y):][:n]
		s := src.Pix[src.Offset(area.Min.X-f.X, y-f.Y):][:n]
		if overwrite {
			copy(d, s)
			continue
		}
		for i := 0; i < n; i += c {
			over(d[i:i+c], s[i:i+c])
		}
	}

	return area
}

// over blends straight-alpha src onto dst in place. The last channel is alpha.
func over(dst, src pixel.Pixel) {
	a := len(src) - 1
	sa := uint32(src[a])
	da := uint32(dst[a])

	if sa == 0 {
		return
	}
	if sa == 0xFF || da == 0 {
		copy(dst, src)
		return
	}

	df := da * (0xFF - sa)
	total := sa*0xFF + df
	for i := 0; i < a; i++ {
		dst[i] = uint8((uint32(src[i])*sa*0xFF + uint32(dst[i])*df + total/2) / total)
	}
	dst[a] = uint8((total + 0x7F) / 0xFF)
}
