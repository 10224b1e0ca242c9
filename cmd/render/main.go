package main

import (
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"imgseq/pkg/device/remote"
	"imgseq/pkg/device/virtual"
	"imgseq/pkg/proto"
	"imgseq/pkg/store"
)

var listen = flag.String("listen", ":9123", "listen addr")
var dir = flag.String("dir", ".", "directory the screen recordings go to")
var width = flag.Int("width", 320, "screen width")
var height = flag.Int("height", 480, "screen height")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, error) {
				if *debug {
					return zap.NewDevelopment()
				}
				return zap.NewProduction()
			},
			func() *http.Server {
				return &http.Server{Addr: *listen}
			},
			func(logger *zap.Logger) (proto.Display, error) {
				fs, err := store.NewFs(*dir)
				if err != nil {
					return nil, err
				}
				return virtual.NewRecorder(*width, *height, store.NewWriter(fs, logger), logger), nil
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
