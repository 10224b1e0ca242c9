package virtual

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"imgseq/pkg/codec"
	"imgseq/pkg/store"
)

var ErrNotStarted = errors.New("display not started")

// NewRecorder emulates a width x height screen and stores the whole screen as
// a PNG after every draw.
func NewRecorder(width, height int, w *store.Writer, logger *zap.Logger) *Recorder {
	return &Recorder{
		screen: image.NewNRGBA(image.Rect(0, 0, width, height)),
		out:    w,
		log:    logger.With(zap.String("via", "recorder")),
	}
}

type Recorder struct {
	mu      sync.Mutex
	screen  *image.NRGBA
	out     *store.Writer
	log     *zap.Logger
	started bool
	seq     int
}

func (r *Recorder) Startup() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started = true
	r.log.Info("startup")
	return nil
}

func (r *Recorder) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started = false
	r.log.With(zap.Int("recorded", r.seq)).Info("shutdown")
	return nil
}

// Screen returns a copy of the current screen.
func (r *Recorder) Screen() *image.NRGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	dup := image.NewNRGBA(r.screen.Rect)
	copy(dup.Pix, r.screen.Pix)
	return dup
}

func (r *Recorder) DrawBitmap(posX uint16, posY uint16, img image.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return ErrNotStarted
	}

	b := img.Bounds()
	at := image.Rect(int(posX), int(posY), int(posX)+b.Dx(), int(posY)+b.Dy())
	draw.Draw(r.screen, at, img, b.Min, draw.Src)

	buf, err := codec.FromImage(r.screen)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("screen-%06d.png", r.seq)
	if err := r.out.WriteImage(name, buf); err != nil {
		return errors.Wrap(err, name)
	}
	r.seq++

	r.log.With(zap.String("file", name), zap.Stringer("area", at)).Debug("recorded")
	return nil
}
