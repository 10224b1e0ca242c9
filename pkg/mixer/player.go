package mixer

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"imgseq/pkg/codec"
	"imgseq/pkg/proto"
	"imgseq/pkg/sequence"
)

func NewPlayer(dst proto.Display, opts ...Option) *Player {
	p := &Player{
		dev:    dst,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Player shows composited frames on a display, holding each one for its delay.
type Player struct {
	dev    proto.Display
	effs   []Effect
	logger *zap.Logger
	origin [2]uint16

	prev Image
}

// Canvas draws img on the display through one of the configured effects.
func (p *Player) Canvas(img Image) error {
	defer func() {
		p.prev = img
	}()

	eff := lo.Sample(p.effs)
	if eff == nil {
		return p.draw(image.Point{}, img)
	}

	wc, err := eff.Process(p.prev, img)
	if err != nil {
		return err
	}

	for w := range wc {
		if err := p.draw(w.At, w.Img); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) draw(at image.Point, img image.Image) error {
	return p.dev.DrawBitmap(p.origin[0]+uint16(at.X), p.origin[1]+uint16(at.Y), img)
}

// Play walks c to the end. Frames without a delay are shown back to back.
// It returns ctx.Err() when cancelled between frames.
func (p *Player) Play(ctx context.Context, c *sequence.Compositor) (int, error) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	shown := 0
	for c.HasNext() {
		out, err := c.NextFrame()
		if err != nil {
			return shown, err
		}

		if err := p.Canvas(codec.ToNRGBA(out.Buffer)); err != nil {
			return shown, errors.Wrapf(err, "frame %d", out.Index)
		}
		shown++

		p.logger.With(
			zap.Int("frame", out.Index),
			zap.Duration("delay", out.Delay),
		).Debug("shown")

		if out.Delay <= 0 {
			if err := ctx.Err(); err != nil {
				return shown, err
			}
			continue
		}

		timer.Reset(out.Delay)
		select {
		case <-ctx.Done():
			return shown, ctx.Err()
		case <-timer.C:
		}
	}
	return shown, nil
}
