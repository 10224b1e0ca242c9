package virtual

import (
	"image"

	"go.uber.org/zap"

	"imgseq/pkg/proto"
)

// Mock logs every call and discards the images.
func Mock(logger *zap.Logger) proto.Display {
	return &Mocker{logger}
}

type Mocker struct {
	l *zap.Logger
}

func (m *Mocker) Startup() error {
	m.l.Info("startup")
	return nil
}

func (m *Mocker) Shutdown() error {
	m.l.Info("shutdown")
	return nil
}

func (m *Mocker) DrawBitmap(posX uint16, posY uint16, image image.Image) error {
	m.l.With(
		zap.Uint16("x", posX),
		zap.Uint16("y", posY),
		zap.Int("w", image.Bounds().Dx()),
		zap.Int("h", image.Bounds().Dy()),
	).Info("draw-bitmap")
	return nil
}
