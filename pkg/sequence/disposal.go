package sequence

import (
	"image"

	"github.com/pkg/errors"

	"imgseq/pkg/pixel"
)

var (
	ErrNoSnapshot      = errors.New("no snapshot to restore")
	ErrUnknownDisposal = errors.New("unknown disposal method")
)

// Disposal says how the canvas is prepared for the next frame once the
// current frame has been shown.
type Disposal uint8

const (
	// Keep leaves the canvas as it is.
	Keep Disposal = iota
	// Background clears the frame's area to the background color.
	Background
	// Previous restores the canvas as it was before the frame was drawn.
	Previous
)

func (d Disposal) String() string {
	switch d {
	case Keep:
		return "keep"
	case Background:
		return "background"
	case Previous:
		return "previous"
	}
	return "unknown"
}

func (d Disposal) Valid() bool {
	return d <= Previous
}

// Dispose applies method to canvas and returns the canvas the next frame is
// drawn on together with the snapshot to retain. area is the region the
// outgoing frame covered; snapshot is the canvas captured right before that
// frame was drawn.
//
// canvas is updated in place and returned as next.
func Dispose(canvas *pixel.Buffer, area image.Rectangle, method Disposal, snapshot *pixel.Buffer, bg pixel.Pixel) (next, keep *pixel.Buffer, err error) {
	switch method {
	case Keep:
		return canvas, snapshot, nil
	case Background:
		if err := canvas.FillRect(area, bg); err != nil {
			return nil, nil, errors.Wrap(err, "dispose to background")
		}
		return canvas, snapshot, nil
	case Previous:
		if snapshot == nil {
			return nil, nil, ErrNoSnapshot
		}
		if err := canvas.CopyFrom(snapshot); err != nil {
			return nil, nil, errors.Wrap(err, "dispose to previous")
		}
		return canvas, snapshot, nil
	}
	return nil, nil, errors.Wrapf(ErrUnknownDisposal, "%d", method)
}
