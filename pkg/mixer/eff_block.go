package mixer

import (
	"image"
	"math/rand"
	"time"

	"github.com/samber/lo"
)

// EffectBlock draws the image as square tiles in random order. A size of zero
// picks a random tile size for every image.
func EffectBlock(size int) Effect {
	return &block{
		size: size,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type block struct {
	size int
	rand *rand.Rand
}

func (e *block) Name() string {
	return "block"
}

func (e *block) Process(_, img Image) (<-chan Write, error) {
	r := img.Bounds()

	size := e.size
	if size <= 0 {
		size = e.rand.Intn(32) + 8
	}

	var ws []Write
	for x := r.Min.X; x < r.Max.X; x += size {
		for y := r.Min.Y; y < r.Max.Y; y += size {
			tile := image.Rect(x, y, x+size, y+size).Intersect(r)
			ws = append(ws, Write{
				At:  tile.Min.Sub(r.Min),
				Img: img.SubImage(tile),
			})
		}
	}

	return emit(lo.Shuffle(ws)), nil
}
