package resample

import (
	"math"
)

type indexWeight struct {
	index  int
	weight float64
}

// precomputeWeights returns, for every output coordinate along one axis, the
// source indices and normalized weights contributing to it. Indices outside
// [0, srcSize) are clamped to the edge.
func precomputeWeights(dstSize, srcSize int, a Algorithm) [][]indexWeight {
	du := float64(srcSize) / float64(dstSize)
	scale := math.Max(du, 1)
	ru := Radius(a) * scale

	out := make([][]indexWeight, dstSize)
	tmp := make([]indexWeight, 0, dstSize*(int(math.Ceil(ru))*2+1))

	for v := 0; v < dstSize; v++ {
		fu := (float64(v)+0.5)*du - 0.5

		if a == Nearest || (a == Box && du <= 1) {
			tmp = append(tmp, indexWeight{index: nearest(fu, srcSize), weight: 1})
			out[v] = tmp[len(tmp)-1 : len(tmp) : len(tmp)]
			continue
		}

		begin := int(math.Ceil(fu - ru))
		end := int(math.Floor(fu + ru))
		start := len(tmp)

		var sum float64
		for u := begin; u <= end; u++ {
			w := Weight(a, (float64(u)-fu)/scale)
			if w == 0 {
				continue
			}
			sum += w
			tmp = append(tmp, indexWeight{index: clampIndex(u, srcSize), weight: w})
		}

		ws := tmp[start:]
		if sum == 0 {
			tmp = append(tmp[:start], indexWeight{index: nearest(fu, srcSize), weight: 1})
			ws = tmp[start:]
		} else {
			for i := range ws {
				ws[i].weight /= sum
			}
		}
		out[v] = ws[:len(ws):len(ws)]
	}

	return out
}

func nearest(fu float64, size int) int {
	return clampIndex(int(math.Floor(fu+0.5)), size)
}

func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// clamp rounds and clamps a weighted sum to the uint8 range.
func clamp(x float64) uint8 {
	v := int64(x + 0.5)
	if v > 255 {
		return 255
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}
