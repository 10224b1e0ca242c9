package codec

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/pkg/errors"

	"imgseq/pkg/pixel"
	"imgseq/pkg/sequence"
)

var ErrNoFrames = errors.New("animation has no frames")

// transparentPalette is Plan9 with full transparency in slot 0.
var transparentPalette = append(color.Palette{color.Transparent}, palette.Plan9[:255]...)

// Animation is a decoded frame sequence ready for composition.
type Animation struct {
	Width      int
	Height     int
	Background pixel.Pixel
	LoopCount  int
	Frames     []sequence.Frame
}

// TotalDuration returns the sum of all frame delays.
func (a *Animation) TotalDuration() time.Duration {
	var total time.Duration
	for i := range a.Frames {
		total += a.Frames[i].Delay
	}
	return total
}

// Disposal maps a GIF disposal byte onto a sequence disposal. Unspecified
// and reserved values keep the canvas.
func Disposal(b byte) sequence.Disposal {
	switch b {
	case gif.DisposalBackground:
		return sequence.Background
	case gif.DisposalPrevious:
		return sequence.Previous
	}
	return sequence.Keep
}

func gifDisposal(d sequence.Disposal) byte {
	switch d {
	case sequence.Background:
		return gif.DisposalBackground
	case sequence.Previous:
		return gif.DisposalPrevious
	}
	return gif.DisposalNone
}

// DecodeGIF reads every frame of a GIF. The background is transparent, which
// is what browsers do regardless of the logical screen background index.
func DecodeGIF(r io.Reader) (*Animation, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode gif")
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	anim := &Animation{
		Width:      g.Config.Width,
		Height:     g.Config.Height,
		Background: pixel.Pixel{0, 0, 0, 0},
		LoopCount:  g.LoopCount,
		Frames:     make([]sequence.Frame, len(g.Image)),
	}

	for i, img := range g.Image {
		buf, err := FromImage(img)
		if err != nil {
			return nil, errors.Wrapf(err, "frame %d", i)
		}

		f := sequence.Frame{
			Buffer: buf,
			X:      img.Rect.Min.X,
			Y:      img.Rect.Min.Y,
		}
		if i < len(g.Delay) {
			f.Delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		if i < len(g.Disposal) {
			f.Disposal = Disposal(g.Disposal[i])
		}
		anim.Frames[i] = f
	}

	// some encoders leave the logical screen at 0x0
	if anim.Width == 0 || anim.Height == 0 {
		var r image.Rectangle
		for i := range anim.Frames {
			r = r.Union(anim.Frames[i].Bounds())
		}
		anim.Width, anim.Height = r.Max.X, r.Max.Y
	}

	return anim, nil
}

// EncodeGIF writes composited outputs as a GIF where every frame covers the
// whole canvas.
func EncodeGIF(w io.Writer, outs []sequence.Output, loopCount int) error {
	if len(outs) == 0 {
		return ErrNoFrames
	}

	g := &gif.GIF{LoopCount: loopCount}
	for _, out := range outs {
		src := ToNRGBA(out.Buffer)
		dst := image.NewPaletted(src.Bounds(), transparentPalette)
		draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})

		g.Image = append(g.Image, dst)
		g.Delay = append(g.Delay, int(out.Delay/(10*time.Millisecond)))
		g.Disposal = append(g.Disposal, gifDisposal(sequence.Keep))
	}

	if err := gif.EncodeAll(w, g); err != nil {
		return errors.Wrap(err, "encode gif")
	}
	return nil
}

// EncodeFrames writes the frames of anim back to a GIF without compositing
// them, keeping offsets and disposal methods.
func EncodeFrames(w io.Writer, anim *Animation) error {
	if len(anim.Frames) == 0 {
		return ErrNoFrames
	}

	g := &gif.GIF{
		LoopCount: anim.LoopCount,
		Config:    image.Config{Width: anim.Width, Height: anim.Height, ColorModel: transparentPalette},
	}
	canvas := image.Rect(0, 0, anim.Width, anim.Height)
	for i, f := range anim.Frames {
		r := f.Bounds().Intersect(canvas)
		if r.Empty() {
			return errors.Errorf("frame %d lies outside the canvas", i)
		}
		src := ToNRGBA(f.Buffer)
		dst := image.NewPaletted(r, transparentPalette)
		draw.FloydSteinberg.Draw(dst, r, src, r.Min.Sub(image.Pt(f.X, f.Y)))

		g.Image = append(g.Image, dst)
		g.Delay = append(g.Delay, int(f.Delay/(10*time.Millisecond)))
		g.Disposal = append(g.Disposal, gifDisposal(f.Disposal))
	}

	if err := gif.EncodeAll(w, g); err != nil {
		return errors.Wrap(err, "encode gif")
	}
	return nil
}
