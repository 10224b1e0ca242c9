package mixer

import "go.uber.org/zap"

type Option func(p *Player)

// WithEffect sets the effects a player picks from for every frame.
func WithEffect(e ...Effect) Option {
	return func(p *Player) {
		p.effs = e
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithOrigin places the canvas at an offset on the display.
func WithOrigin(x, y uint16) Option {
	return func(p *Player) {
		p.origin = [2]uint16{x, y}
	}
}
