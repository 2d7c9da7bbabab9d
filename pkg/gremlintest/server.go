// Package gremlintest provides a scriptable fake Gremlin Server for tests.
//
// The server speaks the websocket protocol of a real server closely enough
// for the client's transport: it accepts mime-framed GraphSON requests and
// answers with whatever responses the test's [Handler] returns.
//
//	srv := gremlintest.NewServer(func(req graphson.Request) []graphson.Response {
//	    return gremlintest.Reply(graph.Int64(6))
//	})
//	defer srv.Close()
//	host, port := srv.Addr()
package gremlintest

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/graphson"
)

// Path is the websocket endpoint served.
const Path = "/gremlin"

// Handler answers one request. Returning no responses leaves the request
// unanswered. Response request IDs are filled in by the server.
type Handler func(req graphson.Request) []graphson.Response

// Server is a fake Gremlin Server backed by httptest.
type Server struct {
	*httptest.Server

	handler  Handler
	upgrader websocket.Upgrader

	mu       sync.Mutex
	requests []graphson.Request
	conns    map[*websocket.Conn]*sync.Mutex
}

// NewServer starts a server answering with h.
func NewServer(h Handler) *Server {
	s := &Server{
		handler: h,
		conns:   make(map[*websocket.Conn]*sync.Mutex),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(Path, s.serveWS)
	s.Server = httptest.NewServer(r)
	return s
}

// Addr returns the host and port to dial.
func (s *Server) Addr() (string, int) {
	host, port, _ := net.SplitHostPort(s.Listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return host, p
}

// Requests returns every request received so far, in arrival order.
func (s *Server) Requests() []graphson.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]graphson.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Connections returns the number of open websocket connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// DropConnections closes every websocket with a going-away close frame.
func (s *Server) DropConnections() {
	s.mu.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(s.conns))
	for ws, mu := range s.conns {
		conns[ws] = mu
	}
	s.mu.Unlock()
	for ws, mu := range conns {
		mu.Lock()
		_ = ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		mu.Unlock()
		_ = ws.Close()
	}
}

// Close drops all connections and shuts the server down.
func (s *Server) Close() {
	s.DropConnections()
	s.Server.Close()
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	writeMu := &sync.Mutex{}
	s.mu.Lock()
	s.conns[ws] = writeMu
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, ws)
		s.mu.Unlock()
		_ = ws.Close()
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		payload, err := graphson.Unframe(data)
		if err != nil {
			payload = data
		}
		req, err := graphson.DecodeRequest(payload)
		if err != nil {
			s.write(ws, writeMu, graphson.Response{Status: graphson.Status{
				Code:    graphson.StatusMalformedRequest,
				Message: err.Error(),
			}})
			continue
		}
		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		for _, resp := range s.handler(req) {
			resp.RequestID = req.ID
			if !s.write(ws, writeMu, resp) {
				return
			}
		}
	}
}

func (s *Server) write(ws *websocket.Conn, mu *sync.Mutex, resp graphson.Response) bool {
	data, err := graphson.EncodeResponse(resp)
	if err != nil {
		data, _ = graphson.EncodeResponse(graphson.Response{
			RequestID: resp.RequestID,
			Status:    graphson.Status{Code: graphson.StatusServerSerializationError, Message: err.Error()},
		})
	}
	mu.Lock()
	defer mu.Unlock()
	return ws.WriteMessage(websocket.TextMessage, data) == nil
}

// =============================================================================
// Response helpers
// =============================================================================

// Reply answers with a single successful response carrying values.
func Reply(values ...graph.Valuer) []graphson.Response {
	return []graphson.Response{{Status: graphson.Status{Code: graphson.StatusSuccess}, Data: graph.Values(values)}}
}

// Stream answers with one partial response per batch and a final success
// carrying the last batch.
func Stream(batches ...[]graph.Value) []graphson.Response {
	if len(batches) == 0 {
		return NoContent()
	}
	out := make([]graphson.Response, len(batches))
	for i, batch := range batches {
		code := graphson.StatusPartialContent
		if i == len(batches)-1 {
			code = graphson.StatusSuccess
		}
		out[i] = graphson.Response{Status: graphson.Status{Code: code}, Data: batch}
	}
	return out
}

// NoContent answers with status 204 and no data.
func NoContent() []graphson.Response {
	return []graphson.Response{{Status: graphson.Status{Code: graphson.StatusNoContent}}}
}

// Fail answers with an error status.
func Fail(code int, message string) []graphson.Response {
	return []graphson.Response{{Status: graphson.Status{Code: code, Message: message}}}
}

// Challenge answers with an authentication challenge.
func Challenge() []graphson.Response {
	return []graphson.Response{{Status: graphson.Status{Code: graphson.StatusAuthenticate}}}
}
