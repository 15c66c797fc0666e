package combat

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/udisondev/linkarena/internal/model"
)

// RNG is the source of every combat roll.
type RNG interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// NewRNG returns a PCG-backed generator. A zero seed is replaced by the clock.
func NewRNG(seed uint64) RNG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ScriptedRNG replays Rolls in order and then keeps returning Default.
// Every value is clamped into [0, n).
type ScriptedRNG struct {
	Rolls   []int
	Default int
	next    int
}

func (r *ScriptedRNG) IntN(n int) int {
	v := r.Default
	if r.next < len(r.Rolls) {
		v = r.Rolls[r.next]
		r.next++
	}
	return min(max(v, 0), n-1)
}

// Used reports how many scripted rolls have been consumed.
func (r *ScriptedRNG) Used() int { return r.next }

// TrueHit maps a displayed hit chance onto the hybrid S-curve, in hundredths
// of a percent. Below 50 the curve is the plain linear value.
func TrueHit(chance int) float64 {
	h := float64(chance)
	base := h * 100
	if chance < 50 {
		return base
	}
	return base + (40.0/3.0)*h*math.Sin((0.02*h-1)*math.Pi)
}

// RollHit decides whether an attack with the given hit chance connects
// under the game's RNG model.
func RollHit(g *model.Game, rng RNG, chance int) (bool, error) {
	switch g.RNG {
	case model.RNGOne:
		return rng.IntN(100) < chance, nil
	case model.RNGTwo:
		return (rng.IntN(100)+rng.IntN(100))/2 < chance, nil
	case model.RNGHybrid:
		return float64(rng.IntN(10000)) < TrueHit(chance), nil
	}
	return false, model.NewConfigError(g, "rng method", g.RNG)
}

// RollCrit decides whether a connecting attack is critical.
func RollCrit(rng RNG, chance int) bool {
	return rng.IntN(100) < chance
}
