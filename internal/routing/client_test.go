package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL+"/api/v1", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNewHTTPClientRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
		_, err := NewHTTPClient(raw)
		require.Error(t, err, "base url %q", raw)
	}
}

func TestNewHTTPClientTrimsTrailingSlash(t *testing.T) {
	c, err := NewHTTPClient("http://localhost:8000/api/v1/")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/api/v1", c.BaseURL())
}

func TestRouteSuccess(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/route", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var q RouteQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		require.Equal(t, RouteQuery{Start: "A", End: "C"}, q)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":["A","B","C"],"distance":12.5,"nodes_visited":7}`))
	})

	res, err := c.Route(context.Background(), RouteQuery{Start: "A", End: "C"})
	require.NoError(t, err)
	require.Equal(t, RouteResult{Path: []string{"A", "B", "C"}, Distance: 12.5, NodesVisited: 7}, res)
	require.Equal(t, 3, res.Stops())
}

func TestRouteAcceptsTotalDistance(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"path":["Warehouse","HubB"],"total_distance":2.8,"nodes_visited":3}`))
	})

	res, err := c.Route(context.Background(), RouteQuery{Start: "Warehouse", End: "HubB"})
	require.NoError(t, err)
	require.Equal(t, 2.8, res.Distance)
	require.Equal(t, 3, res.NodesVisited)
}

func TestRouteRejections(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{name: "string detail", status: http.StatusNotFound, body: `{"detail":"No path found"}`, wantDetail: "No path found"},
		{name: "no detail", status: http.StatusInternalServerError, body: `{}`, wantDetail: ""},
		{name: "empty body", status: http.StatusBadGateway, body: ``, wantDetail: ""},
		{name: "non json body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantDetail: ""},
		{name: "validation list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":["body","end"],"msg":"field required"}]}`, wantDetail: "field required"},
		{name: "detail object", status: http.StatusBadRequest, body: `{"detail":{"msg":"bad input"}}`, wantDetail: "bad input"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Route(context.Background(), RouteQuery{Start: "A", End: "B"})
			var rej *ServiceRejection
			require.ErrorAs(t, err, &rej)
			require.Equal(t, tc.status, rej.Status)
			require.Equal(t, tc.wantDetail, rej.Detail)
		})
	}
}

func TestRouteInvalidSuccessBodyIsTransportFailure(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed json", body: `{"path":`, wantMsg: "decode route"},
		{name: "empty path", body: `{"path":[],"distance":1,"nodes_visited":1}`, wantMsg: "path must have at least 1"},
		{name: "missing path", body: `{"distance":1,"nodes_visited":1}`, wantMsg: "path is required"},
		{name: "blank stop", body: `{"path":["A",""],"distance":1,"nodes_visited":1}`, wantMsg: "is required"},
		{name: "negative distance", body: `{"path":["A","B"],"distance":-1,"nodes_visited":1}`, wantMsg: "distance must be >= 0"},
		{name: "missing distance", body: `{"path":["A","B"],"nodes_visited":1}`, wantMsg: "distance is missing"},
		{name: "missing nodes visited", body: `{"path":["A","B"],"distance":1}`, wantMsg: "nodes_visited is missing"},
		{name: "negative nodes visited", body: `{"path":["A","B"],"distance":1,"nodes_visited":-2}`, wantMsg: "nodesvisited must be >= 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Route(context.Background(), RouteQuery{Start: "A", End: "B"})
			var tf *TransportFailure
			require.ErrorAs(t, err, &tf)
			require.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestRouteConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewHTTPClient(base)
	require.NoError(t, err)
	_, err = c.Route(context.Background(), RouteQuery{Start: "A", End: "B"})
	var tf *TransportFailure
	require.ErrorAs(t, err, &tf)
	require.Equal(t, "http", tf.Op)
	require.NotEmpty(t, tf.Message())
	require.False(t, strings.Contains(tf.Message(), base), "message should name the cause, not the url")
}

func TestRouteTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewHTTPClient(srv.URL, WithHTTPClient(srv.Client()), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	_, err = c.Route(context.Background(), RouteQuery{Start: "A", End: "B"})
	var tf *TransportFailure
	require.ErrorAs(t, err, &tf)
	require.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestHealth(t *testing.T) {
	ok := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	require.NoError(t, ok.Health(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	var rej *ServiceRejection
	require.ErrorAs(t, down.Health(context.Background()), &rej)
	require.Equal(t, http.StatusServiceUnavailable, rej.Status)
}

func TestGraph(t *testing.T) {
	cases := []struct {
		name string
		body string
		want GraphInfo
	}{
		{
			name: "total fields",
			body: `{"total_nodes":3,"total_edges":4,"nodes":["A","B","C"]}`,
			want: GraphInfo{TotalNodes: 3, TotalEdges: 4, Nodes: []string{"A", "B", "C"}},
		},
		{
			name: "count fields",
			body: `{"node_count":2,"edge_count":2,"nodes":["A","B"]}`,
			want: GraphInfo{TotalNodes: 2, TotalEdges: 2, Nodes: []string{"A", "B"}},
		},
		{
			name: "counts missing",
			body: `{"nodes":["A","B"]}`,
			want: GraphInfo{TotalNodes: 2, TotalEdges: 0, Nodes: []string{"A", "B"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/v1/graph", r.URL.Path)
				_, _ = w.Write([]byte(tc.body))
			})
			got, err := c.Graph(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestGraphRejectsNegativeCounts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_nodes":-1,"total_edges":0,"nodes":[]}`))
	})
	_, err := c.Graph(context.Background())
	var tf *TransportFailure
	require.ErrorAs(t, err, &tf)
}

func TestTransportFailureMessage(t *testing.T) {
	require.Equal(t, "", (&TransportFailure{Op: "http"}).Message())
	require.Equal(t, "routing: http", (&TransportFailure{Op: "http"}).Error())
	require.Equal(t, "boom", (&TransportFailure{Op: "http", Err: errors.New(" boom ")}).Message())
}
