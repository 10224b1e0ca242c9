package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// NewLoader reads sources from fs, or over HTTP when the source is a URL.
func NewLoader(fs afero.Fs, logger *zap.Logger) *Loader {
	return &Loader{
		fs:  fs,
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger.With(zap.String("via", "loader")),
	}
}

type Loader struct {
	fs       afero.Fs
	cli      *resty.Client
	log      *zap.Logger
	progress bool
}

// ShowProgress draws a progress bar on stderr while downloading.
func (l *Loader) ShowProgress(on bool) *Loader {
	l.progress = on
	return l
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	if !isURL(src) {
		bs, err := afero.ReadFile(l.fs, src)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", src)
		}
		return bs, nil
	}

	resp, err := l.cli.R().SetContext(ctx).Get(src)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", src)
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("get %s: %s", src, resp.Status())
	}

	var w io.Writer = io.Discard
	if l.progress {
		w = progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", src))
	}

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, w), resp.RawBody()); err != nil {
		return nil, errors.Wrapf(err, "download %s", src)
	}

	l.log.With(zap.String("url", src), zap.Int("bytes", buf.Len())).Debug("downloaded")
	return buf.Bytes(), nil
}
