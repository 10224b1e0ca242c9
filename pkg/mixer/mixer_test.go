package mixer

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgseq/pkg/pixel"
	"imgseq/pkg/sequence"
)

type drawCall struct {
	at   image.Point
	size image.Point
}

type fakeDisplay struct {
	calls []drawCall
}

func (d *fakeDisplay) Startup() error  { return nil }
func (d *fakeDisplay) Shutdown() error { return nil }

func (d *fakeDisplay) DrawBitmap(posX uint16, posY uint16, img image.Image) error {
	d.calls = append(d.calls, drawCall{at: image.Pt(int(posX), int(posY)), size: img.Bounds().Size()})
	return nil
}

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestEffectDiff(t *testing.T) {
	a := filled(8, 8, color.NRGBA{A: 255})
	b := filled(8, 8, color.NRGBA{A: 255})
	b.SetNRGBA(2, 3, color.NRGBA{R: 255, A: 255})
	b.SetNRGBA(5, 4, color.NRGBA{G: 255, A: 255})

	wc, err := EffectDiff().Process(nil, a)
	require.NoError(t, err)
	ws := collect(wc)
	require.Len(t, ws, 1)
	assert.Equal(t, image.Pt(8, 8), ws[0].Img.Bounds().Size())

	wc, err = EffectDiff().Process(a, b)
	require.NoError(t, err)
	ws = collect(wc)
	require.Len(t, ws, 1)
	assert.Equal(t, image.Pt(2, 3), ws[0].At)
	assert.Equal(t, image.Rect(2, 3, 6, 5), ws[0].Img.Bounds())

	wc, err = EffectDiff().Process(b, b)
	require.NoError(t, err)
	assert.Empty(t, collect(wc))
}

func TestEffectBlock(t *testing.T) {
	img := filled(10, 7, color.NRGBA{B: 255, A: 255})

	wc, err := EffectBlock(4).Process(nil, img)
	require.NoError(t, err)
	ws := collect(wc)
	require.Len(t, ws, 6)

	area := 0
	for _, w := range ws {
		b := w.Img.Bounds()
		assert.Equal(t, b.Min, w.At)
		area += b.Dx() * b.Dy()
	}
	assert.Equal(t, 70, area)
}

func TestPlayerPlay(t *testing.T) {
	red, blue := pixel.Pixel{255, 0, 0, 255}, pixel.Pixel{0, 0, 255, 255}
	frames := []sequence.Frame{
		{Buffer: solid(t, 4, 4, red), Delay: time.Millisecond},
		{Buffer: solid(t, 2, 2, blue), X: 1, Y: 1},
	}
	c, err := sequence.New(frames, 4, 4, pixel.Pixel{0, 0, 0, 0})
	require.NoError(t, err)

	dev := &fakeDisplay{}
	n, err := NewPlayer(dev, WithEffect(EffectDiff()), WithOrigin(10, 20)).Play(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []drawCall{
		{at: image.Pt(10, 20), size: image.Pt(4, 4)},
		{at: image.Pt(11, 21), size: image.Pt(2, 2)},
	}, dev.calls)
}

func TestPlayerCancel(t *testing.T) {
	frames := []sequence.Frame{
		{Buffer: solid(t, 2, 2, pixel.Pixel{1, 2, 3, 255}), Delay: time.Hour},
		{Buffer: solid(t, 2, 2, pixel.Pixel{4, 5, 6, 255})},
	}
	c, err := sequence.New(frames, 2, 2, pixel.Pixel{0, 0, 0, 0})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	dev := &fakeDisplay{}
	n, err := NewPlayer(dev).Play(ctx, c)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, n)
	assert.Len(t, dev.calls, 1)
}

func solid(t *testing.T, w, h int, p pixel.Pixel) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(w, h, pixel.RGBA)
	require.NoError(t, err)
	require.NoError(t, b.Fill(p))
	return b
}

func collect(wc <-chan Write) []Write {
	var ws []Write
	for w := range wc {
		ws = append(ws, w)
	}
	return ws
}
