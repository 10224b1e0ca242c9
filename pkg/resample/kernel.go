package resample

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownAlgorithm = errors.New("unknown resize algorithm")

// Algorithm selects the filter used when resizing.
type Algorithm uint8

const (
	// Nearest picks the closest source sample. Fastest, lowest quality.
	Nearest Algorithm = iota
	// Box averages every source sample under the output pixel. Same as
	// Nearest when upscaling.
	Box
	// Bilinear uses a triangle (tent) filter.
	Bilinear
	// Hamming is a Hamming-windowed sinc. Sharper than Bilinear when downscaling.
	Hamming
	// Bicubic is the Catmull-Rom cubic (a = -0.5).
	Bicubic
	// Mitchell is the Mitchell-Netravali cubic (B = C = 1/3).
	Mitchell
	// Lanczos3 is a sinc windowed by a sinc of three lobes.
	Lanczos3
)

var algorithms = []Algorithm{Nearest, Box, Bilinear, Hamming, Bicubic, Mitchell, Lanczos3}

// Algorithms lists every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	return append([]Algorithm(nil), algorithms...)
}

func (a Algorithm) String() string {
	switch a {
	case Nearest:
		return "nearest"
	case Box:
		return "box"
	case Bilinear:
		return "bilinear"
	case Hamming:
		return "hamming"
	case Bicubic:
		return "bicubic"
	case Mitchell:
		return "mitchell"
	case Lanczos3:
		return "lanczos3"
	}
	return "unknown"
}

func (a Algorithm) Valid() bool {
	return a <= Lanczos3
}

func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "catmull-rom", "catmullrom":
		return Bicubic, nil
	case "lanczos":
		return Lanczos3, nil
	case "linear", "triangle":
		return Bilinear, nil
	}
	for _, a := range algorithms {
		if a.String() == n {
			return a, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
}

// Radius returns the support of the kernel in source pixels at scale 1.
func Radius(a Algorithm) float64 {
	switch a {
	case Nearest, Box:
		return 0.5
	case Bilinear, Hamming:
		return 1
	case Bicubic, Mitchell:
		return 2
	case Lanczos3:
		return 3
	}
	return 0
}

// Weight evaluates the kernel of a at offset x. It is zero outside Radius(a).
func Weight(a Algorithm, x float64) float64 {
	x = math.Abs(x)
	if x > Radius(a) {
		return 0
	}

	switch a {
	case Nearest, Box:
		return 1
	case Bilinear:
		return 1 - x
	case Hamming:
		return hamming(x)
	case Bicubic:
		return cubic(x, -0.5)
	case Mitchell:
		return mitchell(x, 1.0/3, 1.0/3)
	case Lanczos3:
		return lanczos(x, 3)
	}
	return 0
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

func hamming(x float64) float64 {
	if x == 0 {
		return 1
	}
	return sinc(x) * (0.54 + 0.46*math.Cos(math.Pi*x))
}

// cubic is the Keys cubic convolution kernel; a = -0.5 gives Catmull-Rom.
func cubic(x, a float64) float64 {
	if x < 1 {
		return ((a+2)*x-(a+3))*x*x + 1
	}
	if x < 2 {
		return ((a*x-5*a)*x+8*a)*x - 4*a
	}
	return 0
}

func mitchell(x, b, c float64) float64 {
	if x < 1 {
		return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
	}
	if x < 2 {
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	}
	return 0
}

func lanczos(x, lobes float64) float64 {
	if x >= lobes {
		return 0
	}
	return sinc(x) * sinc(x/lobes)
}
