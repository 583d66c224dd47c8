package routing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// routeResponse is the /route success body. The service has shipped the
// distance as both "distance" and "total_distance"; either is accepted.
type routeResponse struct {
	Path          []string `json:"path"`
	Distance      *float64 `json:"distance"`
	TotalDistance *float64 `json:"total_distance"`
	NodesVisited  *int     `json:"nodes_visited"`
}

type routePayload struct {
	Path         []string `validate:"required,min=1,dive,required"`
	Distance     float64  `validate:"gte=0"`
	NodesVisited int      `validate:"gte=0"`
}

// graphResponse is the /graph body; counts come as total_* or *_count.
type graphResponse struct {
	TotalNodes *int     `json:"total_nodes"`
	NodeCount  *int     `json:"node_count"`
	TotalEdges *int     `json:"total_edges"`
	EdgeCount  *int     `json:"edge_count"`
	Nodes      []string `json:"nodes"`
}

type graphPayload struct {
	TotalNodes int      `validate:"gte=0"`
	TotalEdges int      `validate:"gte=0"`
	Nodes      []string `validate:"dive,required"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func decodeRoute(body []byte) (RouteResult, error) {
	var raw routeResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return RouteResult{}, &TransportFailure{Op: "decode route", Err: err}
	}
	distance := raw.Distance
	if distance == nil {
		distance = raw.TotalDistance
	}
	if distance == nil {
		return RouteResult{}, &TransportFailure{Op: "decode route", Err: errors.New("distance is missing")}
	}
	if raw.NodesVisited == nil {
		return RouteResult{}, &TransportFailure{Op: "decode route", Err: errors.New("nodes_visited is missing")}
	}
	p := routePayload{Path: raw.Path, Distance: *distance, NodesVisited: *raw.NodesVisited}
	if err := validate.Struct(p); err != nil {
		return RouteResult{}, &TransportFailure{Op: "decode route", Err: validationError(err)}
	}
	return RouteResult{Path: p.Path, Distance: p.Distance, NodesVisited: p.NodesVisited}, nil
}

func decodeGraph(body []byte) (GraphInfo, error) {
	var raw graphResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return GraphInfo{}, &TransportFailure{Op: "decode graph", Err: err}
	}
	p := graphPayload{
		TotalNodes: firstInt(len(raw.Nodes), raw.TotalNodes, raw.NodeCount),
		TotalEdges: firstInt(0, raw.TotalEdges, raw.EdgeCount),
		Nodes:      raw.Nodes,
	}
	if err := validate.Struct(p); err != nil {
		return GraphInfo{}, &TransportFailure{Op: "decode graph", Err: validationError(err)}
	}
	return GraphInfo(p), nil
}

func firstInt(fallback int, candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}

// parseDetail extracts a human readable message from an error body. The
// detail is usually a string, but request validation failures carry a list
// of {"msg": ...} objects. Returns "" when nothing usable is present.
func parseDetail(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(resp.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	type item struct {
		Msg string `json:"msg"`
	}
	var list []item
	if err := json.Unmarshal(resp.Detail, &list); err == nil {
		for _, it := range list {
			if m := strings.TrimSpace(it.Msg); m != "" {
				return m
			}
		}
		return ""
	}
	var one item
	if err := json.Unmarshal(resp.Detail, &one); err == nil {
		return strings.TrimSpace(one.Msg)
	}
	return ""
}

func validationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must have at least %s element(s)", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	default:
		return field + " failed " + fe.Tag() + " validation"
	}
}
