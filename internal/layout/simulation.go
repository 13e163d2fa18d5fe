// Package layout runs the force simulation that positions visible nodes and
// routes the links between them.
//
// A Simulation only ever sees a flattened view of the forest. Any structural
// change replaces that view wholesale through SetGraph, which also restarts
// the simulation energy, so a step never runs against stale input.
package layout

import (
	"math"
	"math/rand"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

// Body is the simulated state of one visible node.
type Body struct {
	ID     string
	Name   string
	Color  string
	X, Y   float64
	VX, VY float64
	Pinned bool
	PinX   float64
	PinY   float64
}

type spring struct {
	source, target int
	color          string
	strength, bias float64
}

// Simulation holds per-node positions and velocities for the visible set.
type Simulation struct {
	cfg     Config
	bodies  []Body
	index   map[string]int
	springs []spring
	alpha   float64
	target  float64
	running bool
	rng     *rand.Rand
}

// NewSimulation returns an idle simulation with no bodies.
func NewSimulation(cfg Config, rng *rand.Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Simulation{cfg: cfg, index: map[string]int{}, rng: rng}
}

// Config returns the simulation constants.
func (s *Simulation) Config() Config {
	return s.cfg
}

// SetGraph replaces the simulated node and link set. Bodies whose id
// survives keep their position, velocity and pin; new bodies are placed on
// a phyllotaxis spiral around the canvas center. Energy restarts at 1.
func (s *Simulation) SetGraph(nodes []model.VisibleNode, links []model.Link) {
	prev := make(map[string]Body, len(s.bodies))
	for _, b := range s.bodies {
		prev[b.ID] = b
	}

	s.bodies = make([]Body, len(nodes))
	s.index = make(map[string]int, len(nodes))
	for i, n := range nodes {
		b, ok := prev[n.ID]
		if !ok {
			b = Body{ID: n.ID}
			b.X, b.Y = s.spiral(i)
		}
		b.Name = n.Name
		b.Color = n.Color
		s.bodies[i] = b
		s.index[n.ID] = i
	}

	s.springs = s.springs[:0]
	degree := make([]int, len(nodes))
	for _, l := range links {
		src, ok1 := s.index[l.Source]
		dst, ok2 := s.index[l.Target]
		if !ok1 || !ok2 {
			continue
		}
		degree[src]++
		degree[dst]++
		s.springs = append(s.springs, spring{source: src, target: dst, color: l.Color})
	}
	for i := range s.springs {
		sp := &s.springs[i]
		a, b := float64(degree[sp.source]), float64(degree[sp.target])
		sp.strength = 1 / math.Min(a, b)
		sp.bias = a / (a + b)
	}

	s.alpha = 1
	s.running = true
}

const initialRadius = 10

var initialAngle = math.Pi * (3 - math.Sqrt(5))

func (s *Simulation) spiral(i int) (float64, float64) {
	r := initialRadius * math.Sqrt(0.5+float64(i))
	a := float64(i) * initialAngle
	return s.cfg.centerX() + r*math.Cos(a), s.cfg.centerY() + r*math.Sin(a)
}

// Step advances the simulation by one tick regardless of its energy.
func (s *Simulation) Step() {
	s.alpha += (s.target - s.alpha) * s.cfg.AlphaDecay

	s.applyLinks()
	s.applyCharge()
	s.applyPosition()
	s.applyCollide()

	decay := 1 - s.cfg.VelocityDecay
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Pinned {
			b.X, b.Y = b.PinX, b.PinY
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= decay
		b.VY *= decay
		b.X += b.VX
		b.Y += b.VY
	}

	s.applyCenter()
	s.clamp()
}

// Tick steps the simulation if it is running and reports whether it did.
// The simulation stops itself once alpha falls below the configured minimum.
func (s *Simulation) Tick() bool {
	if !s.running {
		return false
	}
	s.Step()
	if s.alpha < s.cfg.AlphaMin {
		s.running = false
	}
	return true
}

// Settle ticks until the simulation stops or max ticks have run, returning
// the number of ticks performed.
func (s *Simulation) Settle(max int) int {
	n := 0
	for n < max && s.Tick() {
		n++
	}
	return n
}

// Active reports whether the simulation is still running.
func (s *Simulation) Active() bool {
	return s.running
}

// Alpha returns the current energy.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// AlphaTarget returns the energy the simulation decays toward.
func (s *Simulation) AlphaTarget() float64 {
	return s.target
}

// SetAlphaTarget sets the energy the simulation decays toward.
func (s *Simulation) SetAlphaTarget(t float64) {
	s.target = t
}

// Restart resumes ticking without touching alpha.
func (s *Simulation) Restart() {
	s.running = true
}

// Reheat sets alpha back to 1 and resumes ticking.
func (s *Simulation) Reheat() {
	s.alpha = 1
	s.running = true
}

// Position returns the simulated center of a visible node.
func (s *Simulation) Position(id string) (x, y float64, ok bool) {
	i, ok := s.index[id]
	if !ok {
		return 0, 0, false
	}
	return s.bodies[i].X, s.bodies[i].Y, true
}

// Pin fixes a body at (x, y) until Unpin is called.
func (s *Simulation) Pin(id string, x, y float64) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	b := &s.bodies[i]
	b.Pinned = true
	b.PinX, b.PinY = x, y
	b.X, b.Y = x, y
	return true
}

// Unpin hands a body back to the simulation forces.
func (s *Simulation) Unpin(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.bodies[i].Pinned = false
	return true
}

// Nearest returns the first body other than id, in visible order, whose
// center lies within radius of id's center.
func (s *Simulation) Nearest(id string, radius float64) (string, bool) {
	i, ok := s.index[id]
	if !ok {
		return "", false
	}
	self := s.bodies[i]
	for _, b := range s.bodies {
		if b.ID == id {
			continue
		}
		if math.Hypot(b.X-self.X, b.Y-self.Y) < radius {
			return b.ID, true
		}
	}
	return "", false
}

// Body returns the simulated state of one node.
func (s *Simulation) Body(id string) (Body, bool) {
	i, ok := s.index[id]
	if !ok {
		return Body{}, false
	}
	return s.bodies[i], true
}

// Bodies returns a copy of the simulated bodies in visible order.
func (s *Simulation) Bodies() []Body {
	return append([]Body(nil), s.bodies...)
}

// Len returns the number of simulated bodies.
func (s *Simulation) Len() int {
	return len(s.bodies)
}

func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}
