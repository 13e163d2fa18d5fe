package layout

import (
	"math"
	"strconv"
	"strings"
)

// RouteKind classifies a metro edge path.
type RouteKind int

const (
	Straight RouteKind = iota
	SingleBend
	DoubleBend
)

func (k RouteKind) String() string {
	switch k {
	case Straight:
		return "straight"
	case SingleBend:
		return "single-bend"
	case DoubleBend:
		return "double-bend"
	}
	return "unknown"
}

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Route is the polyline drawn for a link, source first, target last.
type Route struct {
	Kind   RouteKind
	Points []Point
}

const (
	straightThreshold = 10
	bendLow           = 0.2
	bendHigh          = 0.8
)

// RouteLink computes a rail-style path from a to b. Offsets below 10 units
// on either axis give a straight segment. Otherwise the path leaves a on a
// 45 degree diagonal covering the shorter axis; when that diagonal ends in
// the middle of the longer axis the path turns straight to b, else a second
// bend squares it off along the longer axis.
func RouteLink(a, b Point) Route {
	dx := b.X - a.X
	dy := b.Y - a.Y
	adx, ady := math.Abs(dx), math.Abs(dy)

	if adx < straightThreshold || ady < straightThreshold {
		return Route{Kind: Straight, Points: []Point{a, b}}
	}

	short := math.Min(adx, ady)
	long := math.Max(adx, ady)
	bend := Point{X: a.X + math.Copysign(short, dx), Y: a.Y + math.Copysign(short, dy)}

	if short >= long*bendLow && short <= long*bendHigh {
		return Route{Kind: SingleBend, Points: []Point{a, bend, b}}
	}

	second := Point{X: bend.X, Y: b.Y}
	if adx > ady {
		second = Point{X: b.X, Y: bend.Y}
	}
	return Route{Kind: DoubleBend, Points: []Point{a, bend, second, b}}
}

// Path renders the route as SVG path data.
func (r Route) Path() string {
	var sb strings.Builder
	for i, p := range r.Points {
		switch {
		case i == 0:
			sb.WriteString("M")
		case i == 1:
			sb.WriteString("L")
		default:
			sb.WriteString(" L")
		}
		sb.WriteString(formatCoord(p.X))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(p.Y))
	}
	return sb.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
