package store

import (
	"bytes"
	"fmt"
	"path"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"imgseq/pkg/codec"
	"imgseq/pkg/pixel"
	"imgseq/pkg/sequence"
)

func NewWriter(fs afero.Fs, logger *zap.Logger) *Writer {
	return &Writer{fs: fs, log: logger.With(zap.String("via", "writer"))}
}

// Writer stores encoded results. Files are written under a temporary name and
// renamed into place so readers never see a partial image.
type Writer struct {
	fs  afero.Fs
	log *zap.Logger
}

func (w *Writer) put(name string, bs []byte) error {
	dir := path.Dir(name)
	if dir != "." {
		if err := ensureDir(w.fs, dir); err != nil {
			return err
		}
	}

	tmp := path.Join(dir, uniqueName(".tmp"))
	if err := afero.WriteFile(w.fs, tmp, bs, 0644); err != nil {
		return err
	}
	if err := w.fs.Rename(tmp, name); err != nil {
		_ = w.fs.Remove(tmp)
		return err
	}

	w.log.With(
		zap.String("file", name),
		zap.String("size", bytesize.New(float64(len(bs))).String()),
	).Debug("written")
	return nil
}

// WriteImage encodes buf in the format implied by name.
func (w *Writer) WriteImage(name string, buf *pixel.Buffer) error {
	format, err := codec.FormatOf(name)
	if err != nil {
		return err
	}

	var bs bytes.Buffer
	if err := codec.Encode(&bs, buf, format); err != nil {
		return err
	}
	return w.put(name, bs.Bytes())
}

// WriteFrames stores every output as dir/frame-NNNN.png and returns the names.
func (w *Writer) WriteFrames(dir string, outs []sequence.Output) ([]string, error) {
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		name := path.Join(dir, fmt.Sprintf("frame-%04d.png", out.Index))

		var bs bytes.Buffer
		if err := codec.Encode(&bs, out.Buffer, imaging.PNG); err != nil {
			return names, errors.Wrapf(err, "frame %d", out.Index)
		}
		if err := w.put(name, bs.Bytes()); err != nil {
			return names, errors.Wrapf(err, "frame %d", out.Index)
		}
		names = append(names, name)
	}
	return names, nil
}

// WriteGIF stores composited outputs as one animated GIF.
func (w *Writer) WriteGIF(name string, outs []sequence.Output, loopCount int) error {
	var bs bytes.Buffer
	if err := codec.EncodeGIF(&bs, outs, loopCount); err != nil {
		return err
	}
	return w.put(name, bs.Bytes())
}
