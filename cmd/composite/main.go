package main

import (
	"bytes"
	"context"
	"image/color"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"imgseq/pkg/codec"
	"imgseq/pkg/device/remote"
	"imgseq/pkg/mixer"
	"imgseq/pkg/pixel"
	"imgseq/pkg/proto"
	"imgseq/pkg/resample"
	"imgseq/pkg/sequence"
	"imgseq/pkg/store"
)

var in = flag.String("in", "", "animated GIF path or URL")
var outDir = flag.String("out-dir", "out", "output directory")
var format = flag.String("format", "gif", "output format: gif or png")
var width = flag.Int("width", 0, "resample frames to this canvas width first")
var height = flag.Int("height", 0, "resample frames to this canvas height first")
var algorithm = flag.String("algorithm", "lanczos3", "resampling algorithm")
var background = flag.String("background", "", "canvas background as rrggbb or rrggbbaa")
var play = flag.String("play", "", "remote display addr to play on instead of writing files")
var effect = flag.String("effect", "diff", "playback effect: diff, block or none")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	opts := []fx.Option{
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Provide(
			newLogger,
			func(logger *zap.Logger) *store.Loader {
				return store.NewLoader(afero.NewOsFs(), logger).ShowProgress(true)
			},
			func(logger *zap.Logger) *store.Writer {
				return store.NewWriter(afero.NewOsFs(), logger)
			},
		),
		fx.Invoke(run),
	}

	if *play != "" {
		opts = append(opts, fx.Provide(func() (proto.Display, error) {
			return remote.New(*play)
		}))
	}

	fx.New(opts...).Run()
}

func newLogger() (*zap.Logger, error) {
	if *debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type params struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *zap.Logger
	Loader     *store.Loader
	Writer     *store.Writer
	Display    proto.Display `optional:"true"`
}

func run(p params) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := composite(ctx, p); err != nil && !errors.Is(err, context.Canceled) {
					p.Logger.With(zap.Error(err)).Error("composite failed")
				}
				_ = p.Shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func composite(ctx context.Context, p params) error {
	alg, err := resample.ParseAlgorithm(*algorithm)
	if err != nil {
		return err
	}

	bs, err := p.Loader.Load(ctx, *in)
	if err != nil {
		return err
	}

	anim, err := codec.DecodeGIF(bytes.NewReader(bs))
	if err != nil {
		return err
	}

	if *width > 0 || *height > 0 {
		w := lo.Ternary(*width > 0, *width, anim.Width)
		h := lo.Ternary(*height > 0, *height, anim.Height)
		if anim, err = codec.ResizeFrames(anim, w, h, alg); err != nil {
			return err
		}
	}

	bg := anim.Background
	if *background != "" {
		c, err := parseHex(*background)
		if err != nil {
			return err
		}
		bg = pixel.FromColor(pixel.RGBA, c)
	}

	c, err := sequence.New(anim.Frames, anim.Width, anim.Height, bg, sequence.WithLogger(p.Logger))
	if err != nil {
		return err
	}

	p.Logger.With(
		zap.String("in", *in),
		zap.Int("frames", c.Len()),
		zap.Int("width", anim.Width),
		zap.Int("height", anim.Height),
		zap.Duration("duration", anim.TotalDuration()),
	).Info("decoded")

	if p.Display != nil {
		return playOn(ctx, p, c)
	}

	outs := make([]sequence.Output, 0, c.Len())
	for c.HasNext() {
		out, err := c.NextFrame()
		if err != nil {
			return err
		}
		outs = append(outs, out)
	}

	switch *format {
	case "gif":
		return p.Writer.WriteGIF(path.Join(*outDir, "out.gif"), outs, anim.LoopCount)
	case "png":
		_, err := p.Writer.WriteFrames(*outDir, outs)
		return err
	}
	return errors.Errorf("unknown format %q", *format)
}

func playOn(ctx context.Context, p params, c *sequence.Compositor) error {
	var effs []mixer.Effect
	switch *effect {
	case "diff":
		effs = append(effs, mixer.EffectDiff())
	case "block":
		effs = append(effs, mixer.EffectBlock(0))
	case "none":
	default:
		return errors.Errorf("unknown effect %q", *effect)
	}

	if err := p.Display.Startup(); err != nil {
		return err
	}
	defer func() {
		if err := p.Display.Shutdown(); err != nil {
			p.Logger.With(zap.Error(err)).Info("shutdown failed")
		}
	}()

	shown, err := mixer.NewPlayer(p.Display, mixer.WithEffect(effs...), mixer.WithLogger(p.Logger)).Play(ctx, c)
	p.Logger.With(zap.Int("shown", shown)).Info("played")
	return err
}

func parseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.NRGBA{}, errors.Errorf("bad color %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "bad color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
