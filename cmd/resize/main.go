package main

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"log"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"imgseq/pkg/codec"
	"imgseq/pkg/resample"
	"imgseq/pkg/store"
)

var in = flag.String("in", "", "source image path or URL")
var out = flag.String("out", "out.png", "output image path")
var width = flag.Int("width", 0, "target width")
var height = flag.Int("height", 0, "target height")
var fit = flag.Bool("fit", false, "keep aspect ratio within width x height")
var algorithm = flag.String("algorithm", "lanczos3", "resampling algorithm")
var cacheDir = flag.String("cache-dir", "", "reuse results stored in this directory")
var progress = flag.Bool("progress", true, "show download progress")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(context.Background(), logger); err != nil {
		logger.With(zap.Error(err)).Fatal("resize failed")
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, logger *zap.Logger) error {
	alg, err := resample.ParseAlgorithm(*algorithm)
	if err != nil {
		return err
	}

	var cfs afero.Fs
	if *cacheDir != "" {
		if cfs, err = store.NewFs(*cacheDir); err != nil {
			return err
		}
	}
	cache := store.NewCache(cfs, logger)

	osfs := afero.NewOsFs()
	bs, err := store.NewLoader(osfs, logger).ShowProgress(*progress).Load(ctx, *in)
	if err != nil {
		return err
	}

	src, err := codec.Decode(bytes.NewReader(bs))
	if err != nil {
		return err
	}

	w, h := *width, *height
	if *fit {
		w, h = resample.FitSize(src.Width, src.Height, w, h)
	}

	sum := sha1.Sum(bs)
	key := hex.EncodeToString(sum[:])

	hit, dst, err := cache.Load(key, alg, w, h)
	if err != nil {
		return err
	}
	if !hit {
		if dst, err = resample.Resize(src, w, h, alg); err != nil {
			return err
		}
		if err := cache.Save(key, alg, dst); err != nil {
			logger.With(zap.Error(err)).Warn("cache save failed")
		}
	}

	logger.With(
		zap.String("in", *in),
		zap.Stringer("algorithm", alg),
		zap.Int("src-w", src.Width),
		zap.Int("src-h", src.Height),
		zap.Int("dst-w", dst.Width),
		zap.Int("dst-h", dst.Height),
		zap.Bool("cached", hit),
	).Info("resized")

	return store.NewWriter(osfs, logger).WriteImage(*out, dst)
}
