package render

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rook-computer/codeshot/internal/theme"
)

// GradientKind selects the interpolation field of a backdrop.
type GradientKind int

const (
	GradientHorizontal GradientKind = iota
	GradientVertical
	GradientRadial
	GradientDiagonal
)

func (k GradientKind) String() string {
	switch k {
	case GradientHorizontal:
		return "horizontal"
	case GradientVertical:
		return "vertical"
	case GradientRadial:
		return "radial"
	case GradientDiagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("GradientKind(%d)", int(k))
	}
}

// Backdrop is a resolved gradient: both endpoints and the field are fixed,
// only the noise is still drawn per pixel.
type Backdrop struct {
	From, To theme.Color
	Kind     GradientKind
	Noise    bool
}

// NewRand returns a freshly seeded source for one render.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic source.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewBackdrop draws two lightened variants of base and a gradient field
// from rng, in that order.
func NewBackdrop(base theme.Color, noise bool, rng Rand) Backdrop {
	from := lightened(base, rng)
	to := lightened(base, rng)
	return Backdrop{
		From:  from,
		To:    to,
		Kind:  GradientKind(rng.IntN(4)),
		Noise: noise,
	}
}

func lightened(base theme.Color, rng Rand) theme.Color {
	jitter := func(c uint8) uint8 {
		boosted := clampChannel(float32(c) + backdropBrightness)
		return clampChannel(float32(boosted) + uniform(rng, backdropJitter))
	}
	return theme.Color{R: jitter(base.R), G: jitter(base.G), B: jitter(base.B)}
}

// uniform returns a float in [-limit, limit).
func uniform(rng Rand, limit float32) float32 {
	return -limit + 2*limit*float32(rng.Float64())
}

func clampChannel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Ratio is the interpolation position of pixel (x, y) on a w × h canvas.
func (b Backdrop) Ratio(x, y, w, h int) float32 {
	fx, fy := float32(x), float32(y)
	fw, fh := float32(w), float32(h)
	switch b.Kind {
	case GradientHorizontal:
		return fx / fw
	case GradientVertical:
		return fy / fh
	case GradientRadial:
		cx, cy := fw/2, fh/2
		maxDistance := sqrt32(float32(w*w+h*h)) / 2
		dx, dy := fx-cx, fy-cy
		ratio := sqrt32(float32(dx*dx)+float32(dy*dy)) / maxDistance
		return min(max(ratio, 0), 1)
	default:
		return (fx/fw + fy/fh) / 2
	}
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Paint fills the whole surface. With noise enabled one value per pixel is
// drawn from rng, row by row.
func (b Backdrop) Paint(s *Surface, rng Rand) {
	w, h := s.Width(), s.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := Interpolate(b.From, b.To, b.Ratio(x, y, w, h))
			if b.Noise {
				c = addNoise(c, uniform(rng, noiseStrength))
			}
			s.Set(x, y, c)
		}
	}
}

// PaintBackdrop draws a random gradient derived from base over the whole
// surface and returns the gradient it picked.
func PaintBackdrop(s *Surface, base theme.Color, noise bool, rng Rand) Backdrop {
	b := NewBackdrop(base, noise, rng)
	b.Paint(s, rng)
	return b
}

// Interpolate mixes from and to per channel. The ratio is clamped to [0, 1].
func Interpolate(from, to theme.Color, ratio float32) theme.Color {
	ratio = min(max(ratio, 0), 1)
	inv := 1 - ratio
	mix := func(a, b uint8) uint8 {
		return uint8(float32(float32(a)*inv) + float32(float32(b)*ratio))
	}
	return theme.Color{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B)}
}

func addNoise(c theme.Color, noise float32) theme.Color {
	return theme.Color{
		R: clampChannel(float32(c.R) + noise),
		G: clampChannel(float32(c.G) + noise),
		B: clampChannel(float32(c.B) + noise),
	}
}
