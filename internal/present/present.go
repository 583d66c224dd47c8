// Package present turns routing results into renderer-agnostic view models.
// Everything here is pure: the same input always yields the same output.
package present

import (
	"strconv"
	"strings"

	"github.com/jask/routefinder/internal/routing"
)

const (
	// DefaultUnit is appended to distances.
	DefaultUnit = "km"

	// GraphUnavailable is shown in place of the network summary when it
	// could not be loaded.
	GraphUnavailable = "Failed to load network info"
)

// Presenter formats results.
type Presenter struct {
	Unit string
	// Precision is the number of decimals in distance labels; negative
	// means as many as needed.
	Precision int
}

// New returns a Presenter for unit with the given precision.
func New(unit string, precision int) Presenter {
	return Presenter{Unit: unit, Precision: precision}
}

// Default formats kilometres with the shortest exact representation.
func Default() Presenter {
	return Presenter{Unit: DefaultUnit, Precision: -1}
}

// Segment is one stop on a rendered path.
type Segment struct {
	Location string
	// IsLast is set only on the final stop; renderers draw no separator
	// after it.
	IsLast bool
}

// RouteView is a presentation-ready route.
type RouteView struct {
	DistanceLabel     string
	StopCount         int
	NodesVisitedLabel string
	Segments          []Segment
}

// Present builds the view model for a successful route.
func (p Presenter) Present(r routing.RouteResult) RouteView {
	segments := make([]Segment, len(r.Path))
	for i, loc := range r.Path {
		segments[i] = Segment{Location: loc, IsLast: i == len(r.Path)-1}
	}
	return RouteView{
		DistanceLabel:     FormatDistance(r.Distance, p.unit(), p.Precision),
		StopCount:         r.Stops(),
		NodesVisitedLabel: strconv.Itoa(r.NodesVisited),
		Segments:          segments,
	}
}

func (p Presenter) unit() string {
	if strings.TrimSpace(p.Unit) == "" {
		return DefaultUnit
	}
	return p.Unit
}

// FormatDistance renders distance followed by unit, e.g. "12.5 km".
// A negative precision uses the fewest digits that represent d exactly.
func FormatDistance(d float64, unit string, precision int) string {
	if precision < 0 {
		precision = -1
	}
	s := strconv.FormatFloat(d, 'f', precision, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Join renders segments as a single line using sep between stops.
func Join(segments []Segment, sep string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Location)
		if !s.IsLast {
			b.WriteString(sep)
		}
	}
	return b.String()
}

// GraphView summarises the routing network for an info panel.
type GraphView struct {
	NodesLabel string
	EdgesLabel string
	NodeList   string
}

// PresentGraph builds the network summary view.
func PresentGraph(g routing.GraphInfo) GraphView {
	return GraphView{
		NodesLabel: strconv.Itoa(g.TotalNodes),
		EdgesLabel: strconv.Itoa(g.TotalEdges),
		NodeList:   strings.Join(g.Nodes, ", "),
	}
}
