package pixel

import (
	"image/color"
)

func colorModel(f Format) color.Model {
	if f == Gray {
		return color.GrayModel
	}
	return color.ModelFunc(func(c color.Color) color.Color {
		var p [4]uint8
		fromColor(f, c, p[:f.Channels()])
		return toColor(f, p[:f.Channels()])
	})
}

func toColor(f Format, p Pixel) color.Color {
	switch f {
	case Gray:
		return color.Gray{Y: p[0]}
	case GrayAlpha:
		return color.NRGBA{R: p[0], G: p[0], B: p[0], A: p[1]}
	case RGB:
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xFF}
	case RGBA:
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return color.NRGBA{}
}

// fromColor writes c into dst using the straight (non-premultiplied) layout of f.
func fromColor(f Format, c color.Color, dst Pixel) {
	switch f {
	case Gray:
		dst[0] = color.GrayModel.Convert(c).(color.Gray).Y
	case GrayAlpha:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		dst[0] = color.GrayModel.Convert(color.NRGBA{R: n.R, G: n.G, B: n.B, A: 0xFF}).(color.Gray).Y
		dst[1] = n.A
	case RGB:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		dst[0], dst[1], dst[2] = n.R, n.G, n.B
	case RGBA:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		dst[0], dst[1], dst[2], dst[3] = n.R, n.G, n.B, n.A
	}
}

// FromColor converts c into a Pixel of format f.
func FromColor(f Format, c color.Color) Pixel {
	p := make(Pixel, f.Channels())
	fromColor(f, c, p)
	return p
}
