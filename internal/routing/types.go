package routing

import "context"

// RouteQuery names the two locations a route is requested between.
type RouteQuery struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RouteResult is a decoded, validated shortest-path answer from the service.
type RouteResult struct {
	Path         []string
	Distance     float64
	NodesVisited int
}

// Stops is the number of locations on the path, endpoints included.
func (r RouteResult) Stops() int { return len(r.Path) }

// GraphInfo describes the service's location network.
type GraphInfo struct {
	TotalNodes int
	TotalEdges int
	Nodes      []string
}

// Router computes a route for a query. The controller depends only on this.
type Router interface {
	Route(ctx context.Context, q RouteQuery) (RouteResult, error)
}

// Client is the full routing service surface used by the front end.
type Client interface {
	Router
	Health(ctx context.Context) error
	Graph(ctx context.Context) (GraphInfo, error)
}
