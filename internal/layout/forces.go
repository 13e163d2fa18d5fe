package layout

import "math"

// applyLinks pulls each linked pair toward LinkDistance. The correction is
// split between the ends by degree so hubs move less than leaves.
func (s *Simulation) applyLinks() {
	for _, sp := range s.springs {
		src, dst := &s.bodies[sp.source], &s.bodies[sp.target]
		x := dst.X + dst.VX - src.X - src.VX
		y := dst.Y + dst.VY - src.Y - src.VY
		if x == 0 {
			x = s.jiggle()
		}
		if y == 0 {
			y = s.jiggle()
		}
		l := math.Sqrt(x*x + y*y)
		l = (l - s.cfg.LinkDistance) / l * s.alpha * sp.strength
		x *= l
		y *= l
		dst.VX -= x * sp.bias
		dst.VY -= y * sp.bias
		src.VX += x * (1 - sp.bias)
		src.VY += y * (1 - sp.bias)
	}
}

// applyCharge is the pairwise inverse-square repulsion between all bodies.
func (s *Simulation) applyCharge() {
	for i := range s.bodies {
		a := &s.bodies[i]
		for j := range s.bodies {
			if i == j {
				continue
			}
			b := &s.bodies[j]
			x := b.X - a.X
			y := b.Y - a.Y
			if x == 0 {
				x = s.jiggle()
			}
			if y == 0 {
				y = s.jiggle()
			}
			l := x*x + y*y
			if l < 1 {
				l = math.Sqrt(l)
			}
			w := s.cfg.ChargeStrength * s.alpha / l
			a.VX += x * w
			a.VY += y * w
		}
	}
}

// applyPosition nudges every body toward the canvas center on both axes.
func (s *Simulation) applyPosition() {
	k := s.cfg.CenterStrength * s.alpha
	cx, cy := s.cfg.centerX(), s.cfg.centerY()
	for i := range s.bodies {
		b := &s.bodies[i]
		b.VX += (cx - b.X) * k
		b.VY += (cy - b.Y) * k
	}
}

// applyCollide separates bodies closer than CollideDistance.
func (s *Simulation) applyCollide() {
	r := s.cfg.CollideDistance
	r2 := r * r
	for i := range s.bodies {
		a := &s.bodies[i]
		for j := i + 1; j < len(s.bodies); j++ {
			b := &s.bodies[j]
			x := (b.X + b.VX) - (a.X + a.VX)
			y := (b.Y + b.VY) - (a.Y + a.VY)
			l := x*x + y*y
			if l >= r2 {
				continue
			}
			if x == 0 {
				x = s.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.jiggle()
				l += y * y
			}
			d := math.Sqrt(l)
			k := (r - d) / d * 0.5
			x *= k
			y *= k
			a.VX -= x
			a.VY -= y
			b.VX += x
			b.VY += y
		}
	}
}

// applyCenter translates the whole layout so its mean sits on the canvas
// center. Pinned bodies are not moved.
func (s *Simulation) applyCenter() {
	if len(s.bodies) == 0 {
		return
	}
	var sx, sy float64
	for _, b := range s.bodies {
		sx += b.X
		sy += b.Y
	}
	n := float64(len(s.bodies))
	sx = sx/n - s.cfg.centerX()
	sy = sy/n - s.cfg.centerY()
	for i := range s.bodies {
		if s.bodies[i].Pinned {
			continue
		}
		s.bodies[i].X -= sx
		s.bodies[i].Y -= sy
	}
}

func (s *Simulation) clamp() {
	m := s.cfg.Margin
	for i := range s.bodies {
		b := &s.bodies[i]
		b.X = math.Max(m, math.Min(s.cfg.Width-m, b.X))
		b.Y = math.Max(m, math.Min(s.cfg.Height-m, b.Y))
	}
}
