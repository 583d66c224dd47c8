package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/routefinder/internal/controller"
	"github.com/jask/routefinder/internal/present"
)

const pathSeparator = " → "

// RenderState renders the result panel for a controller state. spin is the
// spinner frame shown while loading.
func RenderState(s controller.State, p present.Presenter, spin string) string {
	switch s.Status() {
	case controller.StatusLoading:
		return pendingStyle.Render(strings.TrimSpace(spin + " Calculating route..."))
	case controller.StatusSucceeded:
		r, _ := s.Result()
		return RenderRoute(p.Present(r))
	case controller.StatusFailed:
		msg, _ := s.Message()
		return errorStyle.Render("✗ " + msg)
	default:
		return dimStyle.Render("Enter a start and destination, then press enter.")
	}
}

// RenderRoute renders summary statistics above the path line.
func RenderRoute(v present.RouteView) string {
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Total distance", v.DistanceLabel),
		"   ",
		stat("Stops", strconv.Itoa(v.StopCount)),
		"   ",
		stat("Nodes explored", v.NodesVisitedLabel),
	)
	return stats + "\n\n" + renderPath(v.Segments)
}

func renderPath(segments []present.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(stopStyle.Render(s.Location))
		if !s.IsLast {
			b.WriteString(arrowStyle.Render(pathSeparator))
		}
	}
	return b.String()
}

func stat(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}

// RenderGraph renders the network summary, or the fallback text when it
// could not be loaded.
func RenderGraph(v *present.GraphView, loadErr error) string {
	switch {
	case loadErr != nil:
		return errorStyle.Render(present.GraphUnavailable)
	case v == nil:
		return dimStyle.Render("Loading network info...")
	}
	lines := []string{
		stat("Available Locations", v.NodesLabel),
		stat("Network Connections", v.EdgesLabel),
		labelStyle.Render("Network Nodes: ") + v.NodeList,
	}
	return strings.Join(lines, "\n")
}
