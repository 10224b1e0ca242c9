package remote

import (
	"bytes"
	"context"
	"image/png"
	"net"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"imgseq/pkg/proto"
)

// Path is the HTTP path the rpc handler is mounted on.
const Path = "/display"

var ErrUnknownCommand = errors.New("unknown command")

// Handler serves dev over net/rpc.
func Handler(dev proto.Display) (http.Handler, error) {
	srv := rpc.NewServer()
	if err := srv.Register(&Service{dev: dev}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(Path, srv)
	return mux, nil
}

// Proxy exposes dev on srv.Addr for the lifetime of the fx app.
func Proxy(dev proto.Display, srv *http.Server, lifecycle fx.Lifecycle, logger *zap.Logger) error {
	h, err := Handler(dev)
	if err != nil {
		return err
	}
	srv.Handler = h

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			logger.With(zap.String("addr", ln.Addr().String())).Info("serving display")
			go func() {
				if err := srv.Serve(ln); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Error("serve failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	dev proto.Display
}

func (s *Service) Command(name string, _ *EmptyResponse) error {
	switch name {
	case "startup":
		return s.dev.Startup()
	case "shutdown":
		return s.dev.Shutdown()
	}

	return errors.Wrap(ErrUnknownCommand, name)
}

func (s *Service) DrawBitmap(req *DrawBitmapRequest, _ *EmptyResponse) error {
	img, err := png.Decode(bytes.NewBuffer(req.Image))
	if err != nil {
		return err
	}

	return s.dev.DrawBitmap(req.PosX, req.PosY, img)
}
