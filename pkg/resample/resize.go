package resample

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"imgseq/pkg/pixel"
)

var ErrInvalidDimensions = errors.New("invalid target dimensions")

// Resize returns a new buffer of width x height resampled from src with the
// given algorithm. src is never modified.
//
// The image is filtered horizontally first and then vertically. An axis whose
// extent does not change is copied as is.
func Resize(src *pixel.Buffer, width, height int, a Algorithm) (*pixel.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !a.Valid() {
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%d", a)
	}

	dst := src
	if width != dst.Width {
		dst = resizeHorizontal(dst, width, a)
	}
	if height != dst.Height {
		dst = resizeVertical(dst, height, a)
	}

	if dst == src {
		return src.Clone(), nil
	}
	return dst, nil
}

// Fit scales src down or up, preserving its aspect ratio, to the largest size
// that fits in maxWidth x maxHeight. Each side is at least one pixel.
func Fit(src *pixel.Buffer, maxWidth, maxHeight int, a Algorithm) (*pixel.Buffer, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d", maxWidth, maxHeight)
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	w, h := FitSize(src.Width, src.Height, maxWidth, maxHeight)
	return Resize(src, w, h, a)
}

// FitSize computes the dimensions used by Fit.
func FitSize(srcW, srcH, maxW, maxH int) (int, int) {
	ratio := math.Min(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH))
	w := int(math.Max(1, math.Floor(float64(srcW)*ratio+0.5)))
	h := int(math.Max(1, math.Floor(float64(srcH)*ratio+0.5)))
	if w > maxW {
		w = maxW
	}
	if h > maxH {
		h = maxH
	}
	return w, h
}

func resizeHorizontal(src *pixel.Buffer, width int, a Algorithm) *pixel.Buffer {
	c := src.Format.Channels()
	dst := &pixel.Buffer{
		Width:  width,
		Height: src.Height,
		Format: src.Format,
		Pix:    make([]uint8, width*src.Height*c),
	}
	weights := precomputeWeights(width, src.Width, a)

	parallel(src.Height, func(y0, y1 int) {
		acc := make([]float64, c)
		for y := y0; y < y1; y++ {
			row := src.Pix[y*src.Stride() : (y+1)*src.Stride()]
			out := dst.Pix[y*dst.Stride() : (y+1)*dst.Stride()]
			for x, ws := range weights {
				for i := range acc {
					acc[i] = 0
				}
				for _, w := range ws {
					s := row[w.index*c : w.index*c+c]
					for i, v := range s {
						acc[i] += float64(v) * w.weight
					}
				}
				d := out[x*c : x*c+c]
				for i, v := range acc {
					d[i] = clamp(v)
				}
			}
		}
	})

	return dst
}

func resizeVertical(src *pixel.Buffer, height int, a Algorithm) *pixel.Buffer {
	stride := src.Stride()
	dst := &pixel.Buffer{
		Width:  src.Width,
		Height: height,
		Format: src.Format,
		Pix:    make([]uint8, height*stride),
	}
	weights := precomputeWeights(height, src.Height, a)

	parallel(height, func(y0, y1 int) {
		acc := make([]float64, stride)
		for y := y0; y < y1; y++ {
			for i := range acc {
				acc[i] = 0
			}
			for _, w := range weights[y] {
				row := src.Pix[w.index*stride : (w.index+1)*stride]
				for i, v := range row {
					acc[i] += float64(v) * w.weight
				}
			}
			out := dst.Pix[y*stride : (y+1)*stride]
			for i, v := range acc {
				out[i] = clamp(v)
			}
		}
	})

	return dst
}

// parallel splits [0, n) into contiguous bands and runs fn on each band in
// its own goroutine. Bands never overlap.
func parallel(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}

	procs := runtime.GOMAXPROCS(0)
	if procs > n {
		procs = n
	}
	band := (n + procs - 1) / procs

	var g errgroup.Group
	for lo := 0; lo < n; lo += band {
		lo, hi := lo, lo+band
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
