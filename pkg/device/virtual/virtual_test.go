package virtual

import (
	"image"
	"image/color"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"imgseq/pkg/store"
)

func TestMock(t *testing.T) {
	m := Mock(zap.NewNop())
	require.NoError(t, m.Startup())
	require.NoError(t, m.DrawBitmap(1, 2, image.NewNRGBA(image.Rect(0, 0, 3, 3))))
	require.NoError(t, m.Shutdown())
}

func TestRecorder(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewRecorder(4, 4, store.NewWriter(fs, zap.NewNop()), zap.NewNop())

	tile := image.NewNRGBA(image.Rect(5, 5, 7, 7))
	for y := 5; y < 7; y++ {
		for x := 5; x < 7; x++ {
			tile.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	assert.ErrorIs(t, r.DrawBitmap(0, 0, tile), ErrNotStarted)

	require.NoError(t, r.Startup())
	require.NoError(t, r.DrawBitmap(1, 2, tile))
	require.NoError(t, r.DrawBitmap(3, 3, tile))

	screen := r.Screen()
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, screen.NRGBAAt(1, 2))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, screen.NRGBAAt(2, 3))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, screen.NRGBAAt(3, 3))
	assert.Equal(t, color.NRGBA{}, screen.NRGBAAt(0, 0))

	for _, name := range []string{"screen-000000.png", "screen-000001.png"} {
		exists, err := afero.Exists(fs, name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}

	require.NoError(t, r.Shutdown())
}
