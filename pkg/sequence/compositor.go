package sequence

import (
	"image"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"imgseq/pkg/pixel"
)

var (
	ErrNoFrames       = errors.New("no more frames")
	ErrInvalidCanvas  = errors.New("invalid canvas dimensions")
	ErrFormatMismatch = errors.New("frame format does not match canvas")
	ErrInvalidFrame   = errors.New("invalid frame")
)

type Option func(c *Compositor)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Compositor) {
		c.logger = logger
	}
}

// Output is the fully composited canvas shown for one frame.
type Output struct {
	Index  int
	Buffer *pixel.Buffer
	Delay  time.Duration
	// Area is the part of the canvas the frame was drawn on.
	Area image.Rectangle
}

// New prepares the composition of frames onto a width x height canvas filled
// with bg. The canvas format is the format of the first frame; every frame
// must share it.
//
// A Compositor walks the sequence once, in order. It is not safe for
// concurrent use.
func New(frames []Frame, width, height int, bg pixel.Pixel, opts ...Option) (*Compositor, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidCanvas, "%dx%d", width, height)
	}

	c := &Compositor{
		frames: frames,
		width:  width,
		height: height,
		bg:     bg,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if len(frames) == 0 {
		return c, nil
	}

	var format pixel.Format
	for i := range frames {
		f := &frames[i]
		if err := f.Buffer.Validate(); err != nil {
			return nil, errors.Wrapf(ErrInvalidFrame, "frame %d: %s", i, err)
		}
		if i == 0 {
			format = f.Buffer.Format
		} else if f.Buffer.Format != format {
			return nil, errors.Wrapf(ErrFormatMismatch, "frame %d is %s, canvas is %s", i, f.Buffer.Format, format)
		}
		if !f.Disposal.Valid() {
			return nil, errors.Wrapf(ErrUnknownDisposal, "frame %d: %d", i, f.Disposal)
		}
	}

	canvas, _ := pixel.New(width, height, format)
	if err := canvas.Fill(bg); err != nil {
		return nil, errors.Wrap(err, "background")
	}
	c.canvas = canvas

	return c, nil
}

type Compositor struct {
	frames []Frame
	width  int
	height int
	bg     pixel.Pixel
	logger *zap.Logger

	canvas   *pixel.Buffer
	snapshot *pixel.Buffer
	// fresh is set while snapshot holds the same samples as canvas.
	fresh bool
	pos   int
}

func (c *Compositor) Len() int {
	return len(c.frames)
}

func (c *Compositor) HasNext() bool {
	return c.pos < len(c.frames)
}

// NextFrame draws the next frame, returns a copy of the resulting canvas and
// then applies the frame's disposal so the canvas is ready for its successor.
func (c *Compositor) NextFrame() (Output, error) {
	if !c.HasNext() {
		return Output{}, ErrNoFrames
	}
	f := &c.frames[c.pos]

	if f.Disposal == Previous && !c.fresh {
		if c.snapshot == nil {
			c.snapshot = c.canvas.Clone()
		} else {
			_ = c.snapshot.CopyFrom(c.canvas)
		}
		c.fresh = true
	}

	area := draw(c.canvas, f)
	if !area.Empty() {
		c.fresh = false
	}

	out := Output{
		Index:  c.pos,
		Buffer: c.canvas.Clone(),
		Delay:  f.Delay,
		Area:   area,
	}

	next, keep, err := Dispose(c.canvas, area, f.Disposal, c.snapshot, c.bg)
	if err != nil {
		return Output{}, errors.Wrapf(err, "frame %d", c.pos)
	}
	c.canvas, c.snapshot = next, keep
	if f.Disposal == Previous {
		c.fresh = true
	}

	c.logger.With(
		zap.Int("frame", c.pos),
		zap.Stringer("disposal", f.Disposal),
		zap.Stringer("blend", f.Blend),
		zap.Stringer("area", area),
		zap.Duration("delay", f.Delay),
	).Debug("composited")

	c.pos++
	return out, nil
}

// Composite runs a whole sequence and collects every output.
func Composite(frames []Frame, width, height int, bg pixel.Pixel, opts ...Option) ([]Output, error) {
	c, err := New(frames, width, height, bg, opts...)
	if err != nil {
		return nil, err
	}

	outs := make([]Output, 0, c.Len())
	for c.HasNext() {
		out, err := c.NextFrame()
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}
