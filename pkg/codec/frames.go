package codec

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"imgseq/pkg/resample"
	"imgseq/pkg/sequence"
)

// ResizeFrames scales every frame of anim so that the canvas becomes
// width x height. Frames are resampled concurrently; offsets are scaled by
// the same factors so neighbouring frames still line up.
func ResizeFrames(anim *Animation, width, height int, a resample.Algorithm) (*Animation, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(resample.ErrInvalidDimensions, "%dx%d", width, height)
	}

	sx := float64(width) / float64(anim.Width)
	sy := float64(height) / float64(anim.Height)

	out := &Animation{
		Width:      width,
		Height:     height,
		Background: anim.Background,
		LoopCount:  anim.LoopCount,
		Frames:     make([]sequence.Frame, len(anim.Frames)),
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range anim.Frames {
		i := i
		g.Go(func() error {
			f := anim.Frames[i]
			r := f.Bounds()

			x0, x1 := scale(r.Min.X, sx), scale(r.Max.X, sx)
			y0, y1 := scale(r.Min.Y, sy), scale(r.Max.Y, sy)

			buf, err := resample.Resize(f.Buffer, atLeastOne(x1-x0), atLeastOne(y1-y0), a)
			if err != nil {
				return errors.Wrapf(err, "frame %d", i)
			}

			f.Buffer, f.X, f.Y = buf, x0, y0
			out.Frames[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func scale(v int, s float64) int {
	return int(math.Floor(float64(v)*s + 0.5))
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
