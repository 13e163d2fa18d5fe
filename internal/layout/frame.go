package layout

// FrameNode is a positioned node ready for drawing.
type FrameNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Pinned bool    `json:"pinned,omitempty"`
}

// FrameLink is a routed link ready for drawing.
type FrameLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Color  string  `json:"color,omitempty"`
	Kind   string  `json:"kind"`
	Points []Point `json:"points"`
	Path   string  `json:"path"`
}

// Frame is a snapshot of the simulation in the node/link shape D3 uses.
type Frame struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Alpha  float64     `json:"alpha"`
	Nodes  []FrameNode `json:"nodes"`
	Links  []FrameLink `json:"links"`
}

// Frame captures the current positions and routes every link.
func (s *Simulation) Frame() Frame {
	f := Frame{
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		Alpha:  s.alpha,
		Nodes:  make([]FrameNode, 0, len(s.bodies)),
		Links:  make([]FrameLink, 0, len(s.springs)),
	}
	for _, b := range s.bodies {
		f.Nodes = append(f.Nodes, FrameNode{
			ID:     b.ID,
			Label:  b.Name,
			Color:  b.Color,
			X:      b.X,
			Y:      b.Y,
			Pinned: b.Pinned,
		})
	}
	for _, sp := range s.springs {
		src, dst := s.bodies[sp.source], s.bodies[sp.target]
		r := RouteLink(Point{src.X, src.Y}, Point{dst.X, dst.Y})
		f.Links = append(f.Links, FrameLink{
			Source: src.ID,
			Target: dst.ID,
			Color:  sp.color,
			Kind:   r.Kind.String(),
			Points: r.Points,
			Path:   r.Path(),
		})
	}
	return f
}
