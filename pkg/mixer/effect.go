package mixer

import "image"

type Write struct {
	At  image.Point
	Img image.Image
}

type Image interface {
	image.Image
	SubImage(image.Rectangle) image.Image
}

// Effect splits the transition from prev to img into display writes.
// prev is nil for the first image shown.
type Effect interface {
	Name() string
	Process(prev, img Image) (<-chan Write, error)
}

func emit(ws []Write) <-chan Write {
	wc := make(chan Write, len(ws))
	for _, w := range ws {
		wc <- w
	}
	close(wc)
	return wc
}
