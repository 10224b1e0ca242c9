package proto

import (
	"image"
)

// Display is a sink that shows images at a position on its screen.
type Display interface {
	Startup() error
	Shutdown() error

	DrawBitmap(posX uint16, posY uint16, image image.Image) error
}
