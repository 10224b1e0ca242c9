package store

import (
	"bytes"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"imgseq/pkg/codec"
	"imgseq/pkg/pixel"
	"imgseq/pkg/resample"
)

// NewCache keeps resized images on fs. A nil fs disables caching.
func NewCache(fs afero.Fs, logger *zap.Logger) *Cache {
	return &Cache{fs: fs, log: logger.With(zap.String("via", "cache"))}
}

type Cache struct {
	fs  afero.Fs
	log *zap.Logger
}

func (c *Cache) dirname(a resample.Algorithm, w, h int) string {
	return fmt.Sprintf("%s-%dx%d", a, w, h)
}

func (c *Cache) filename(key string, a resample.Algorithm, w, h int) string {
	return fmt.Sprintf("%s/%s.png", c.dirname(a, w, h), key)
}

func (c *Cache) Load(key string, a resample.Algorithm, w, h int) (bool, *pixel.Buffer, error) {
	if c.fs == nil {
		return false, nil, nil
	}

	bs, err := afero.ReadFile(c.fs, c.filename(key, a, w, h))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil, nil
		}
		return false, nil, err
	}

	buf, err := codec.Decode(bytes.NewReader(bs))
	if err != nil {
		return false, nil, err
	}

	c.log.With(zap.String("key", key), zap.Stringer("algorithm", a)).Debug("hit")
	return true, buf, nil
}

func (c *Cache) Save(key string, a resample.Algorithm, buf *pixel.Buffer) error {
	if c.fs == nil {
		return nil
	}

	var bs bytes.Buffer
	if err := codec.Encode(&bs, buf, imaging.PNG); err != nil {
		return err
	}

	if err := ensureDir(c.fs, c.dirname(a, buf.Width, buf.Height)); err != nil {
		return err
	}

	return afero.WriteFile(c.fs, c.filename(key, a, buf.Width, buf.Height), bs.Bytes(), 0644)
}
