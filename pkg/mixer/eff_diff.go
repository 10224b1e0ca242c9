package mixer

import (
	"image"
)

// EffectDiff sends only the smallest rectangle covering every pixel that
// changed since the previous image.
func EffectDiff() Effect {
	return diff{}
}

type diff struct{}

func (diff) Name() string {
	return "diff"
}

func (diff) Process(prev, img Image) (<-chan Write, error) {
	r := img.Bounds()
	if prev == nil || prev.Bounds().Size() != r.Size() {
		return emit([]Write{{At: image.Point{}, Img: img}}), nil
	}

	changed := changedRect(prev, img)
	if changed.Empty() {
		return emit(nil), nil
	}

	return emit([]Write{{
		At:  changed.Min.Sub(r.Min),
		Img: img.SubImage(changed),
	}}), nil
}

// changedRect compares a and b pixel by pixel, both walked from their own
// origin, and returns the changed area in b's coordinates.
func changedRect(a, b image.Image) image.Rectangle {
	ra, rb := a.Bounds(), b.Bounds()
	d := ra.Min.Sub(rb.Min)

	var out image.Rectangle
	for y := rb.Min.Y; y < rb.Max.Y; y++ {
		for x := rb.Min.X; x < rb.Max.X; x++ {
			r1, g1, b1, a1 := a.At(x+d.X, y+d.Y).RGBA()
			r2, g2, b2, a2 := b.At(x, y).RGBA()
			if r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2 {
				continue
			}
			out = out.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return out
}
