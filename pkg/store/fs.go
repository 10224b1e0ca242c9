package store

import (
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"
)

var ErrDirNotExists = errors.New("dir not exists")

// NewFs roots an afero filesystem at an existing directory.
func NewFs(path string) (afero.Fs, error) {
	return newFs(afero.NewOsFs(), path)
}

func newFs(fs afero.Fs, path string) (afero.Fs, error) {
	if exists, err := afero.DirExists(fs, path); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.Wrap(ErrDirNotExists, path)
	}
	return afero.NewBasePathFs(fs, path), nil
}

// ensureDir creates dir on fs when it is missing.
func ensureDir(fs afero.Fs, dir string) error {
	if exists, err := afero.DirExists(fs, dir); err != nil {
		return err
	} else if !exists {
		return fs.MkdirAll(dir, 0755)
	}
	return nil
}

// uniqueName returns a collision-free file name with the given extension.
func uniqueName(ext string) string {
	return xid.New().String() + ext
}
