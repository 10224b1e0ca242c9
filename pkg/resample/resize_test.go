package resample

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgseq/pkg/pixel"
)

func randomBuffer(t *testing.T, w, h int, f pixel.Format, seed int64) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(w, h, f)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(seed))
	r.Read(b.Pix)
	return b
}

func bufferOf(t *testing.T, w, h int, f pixel.Format, pix ...uint8) *pixel.Buffer {
	t.Helper()
	b := &pixel.Buffer{Width: w, Height: h, Format: f, Pix: pix}
	require.NoError(t, b.Validate())
	return b
}

func TestResizeInvalidDimensions(t *testing.T) {
	src := randomBuffer(t, 4, 4, pixel.RGBA, 1)

	for _, wh := range [][2]int{{0, 4}, {4, 0}, {0, 0}, {-3, 2}} {
		dst, err := Resize(src, wh[0], wh[1], Bilinear)
		assert.Nil(t, dst)
		assert.True(t, errors.Is(err, ErrInvalidDimensions), "%v", wh)
	}

	_, err := Resize(src, 2, 2, Algorithm(99))
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))

	_, err = Resize(&pixel.Buffer{Width: 2, Height: 2, Format: pixel.RGB}, 1, 1, Box)
	assert.True(t, errors.Is(err, pixel.ErrInvalidBuffer))
}

func TestResizeIdentity(t *testing.T) {
	src := randomBuffer(t, 7, 5, pixel.RGBA, 2)
	orig := src.Clone()

	for _, a := range Algorithms() {
		dst, err := Resize(src, src.Width, src.Height, a)
		require.NoError(t, err)
		assert.Equal(t, src.Pix, dst.Pix, a.String())
		assert.NotSame(t, src, dst)
	}
	assert.Equal(t, orig.Pix, src.Pix)
}

func TestResizeNearestRoundTrip(t *testing.T) {
	src := bufferOf(t, 2, 2, pixel.RGB,
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 10, 20, 30,
	)

	up, err := Resize(src, 4, 4, Nearest)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, src.PixelAt(x/2, y/2), up.PixelAt(x, y), "(%d,%d)", x, y)
		}
	}

	down, err := Resize(up, 2, 2, Nearest)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, down.Pix)
}

func TestResizeBoxUpscaleMatchesNearest(t *testing.T) {
	src := randomBuffer(t, 3, 2, pixel.RGBA, 3)

	n, err := Resize(src, 8, 7, Nearest)
	require.NoError(t, err)
	b, err := Resize(src, 8, 7, Box)
	require.NoError(t, err)
	assert.Equal(t, n.Pix, b.Pix)
}

func TestResizeBoxDownscaleAverages(t *testing.T) {
	src := bufferOf(t, 4, 1, pixel.Gray, 0, 10, 20, 30)

	dst, err := Resize(src, 2, 1, Box)
	require.NoError(t, err)
	assert.Equal(t, []uint8{5, 25}, dst.Pix)
}

func TestResizeBilinearUpscaleClampsEdges(t *testing.T) {
	src := bufferOf(t, 2, 1, pixel.Gray, 0, 100)

	dst, err := Resize(src, 4, 1, Bilinear)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 25, 75, 100}, dst.Pix)
}

func TestResizeChannelsIndependent(t *testing.T) {
	src := bufferOf(t, 2, 1, pixel.RGBA,
		0, 200, 40, 255,
		100, 0, 40, 0,
	)

	dst, err := Resize(src, 4, 1, Bilinear)
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		0, 200, 40, 255,
		25, 150, 40, 191,
		75, 50, 40, 64,
		100, 0, 40, 0,
	}, dst.Pix)
}

func TestResizeConstantImageStaysConstant(t *testing.T) {
	src, err := pixel.New(9, 6, pixel.RGB)
	require.NoError(t, err)
	require.NoError(t, src.Fill(pixel.Pixel{100, 0, 255}))

	for _, a := range Algorithms() {
		for _, wh := range [][2]int{{3, 2}, {20, 13}, {9, 1}, {1, 6}, {5, 11}} {
			dst, err := Resize(src, wh[0], wh[1], a)
			require.NoError(t, err)
			require.Equal(t, wh[0], dst.Width)
			require.Equal(t, wh[1], dst.Height)
			for i := 0; i < len(dst.Pix); i += 3 {
				require.Equal(t, []uint8{100, 0, 255}, dst.Pix[i:i+3], "%s %v", a, wh)
			}
		}
	}
}

func TestResizeRingingIsClamped(t *testing.T) {
	// a hard edge makes every cubic and Lanczos kernel over/undershoot
	src := bufferOf(t, 4, 1, pixel.Gray, 0, 0, 255, 255)

	for _, a := range []Algorithm{Bicubic, Lanczos3} {
		dst, err := Resize(src, 16, 1, a)
		require.NoError(t, err)
		assert.Contains(t, dst.Pix, uint8(0), a.String())
		assert.Contains(t, dst.Pix, uint8(255), a.String())
	}

	assert.Equal(t, uint8(0), clamp(-37.2))
	assert.Equal(t, uint8(255), clamp(301))
	assert.Equal(t, uint8(128), clamp(127.6))
	assert.Equal(t, uint8(127), clamp(127.4))
}

func TestResizeDoesNotMutateSource(t *testing.T) {
	src := randomBuffer(t, 13, 11, pixel.RGBA, 4)
	orig := src.Clone()

	for _, a := range Algorithms() {
		_, err := Resize(src, 5, 17, a)
		require.NoError(t, err)
	}
	assert.Equal(t, orig.Pix, src.Pix)
}

func TestWeightsSumToOne(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {3, 10}, {10, 3}, {64, 17}, {17, 64}, {100, 99}}

	for _, a := range Algorithms() {
		for _, s := range sizes {
			weights := precomputeWeights(s[0], s[1], a)
			require.Len(t, weights, s[0])
			for v, ws := range weights {
				require.NotEmpty(t, ws, "%s %v out=%d", a, s, v)
				var sum float64
				for _, w := range ws {
					assert.GreaterOrEqual(t, w.index, 0)
					assert.Less(t, w.index, s[1])
					sum += w.weight
				}
				assert.InDelta(t, 1.0, sum, 1e-9, "%s %v out=%d", a, s, v)
			}
		}
	}
}

func TestWeightsWidenWhenDownscaling(t *testing.T) {
	up := precomputeWeights(20, 10, Bilinear)
	down := precomputeWeights(5, 20, Bilinear)

	assert.LessOrEqual(t, len(up[10]), 2)
	// scale 4: the tent spans 8 source pixels
	assert.Len(t, down[2], 8)
}

func TestFit(t *testing.T) {
	src := randomBuffer(t, 100, 50, pixel.RGB, 5)

	dst, err := Fit(src, 40, 40, Lanczos3)
	require.NoError(t, err)
	assert.Equal(t, 40, dst.Width)
	assert.Equal(t, 20, dst.Height)

	w, h := FitSize(1000, 1, 10, 10)
	assert.Equal(t, 10, w)
	assert.Equal(t, 1, h)

	_, err = Fit(src, 0, 10, Box)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))
}

func BenchmarkResize(b *testing.B) {
	src, _ := pixel.New(640, 480, pixel.RGBA)
	rand.New(rand.NewSource(1)).Read(src.Pix)

	for _, a := range Algorithms() {
		b.Run(a.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = Resize(src, 320, 240, a)
			}
		})
	}
}
