package aio

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/graphson"
	"github.com/matzehuels/gremlin/pkg/observability"
)

// Conn is one websocket connection to a Gremlin Server.
//
// A Conn is safe for concurrent use. Once broken, by a transport fault or by
// Close, it stays broken: [Conn.Err] reports why and every later Submit
// fails with CHANNEL_SEND.
type Conn struct {
	opts   Options
	ws     *websocket.Conn
	logger *log.Logger
	out    chan outbound

	mu      sync.Mutex
	pending map[uuid.UUID]*Pending
	err     *gerrors.Error

	done      chan struct{}
	closeOnce sync.Once
}

type outbound struct {
	id   uuid.UUID
	data []byte
}

// DialConn opens a connection and starts its reader and writer.
func DialConn(ctx context.Context, opts Options) (*Conn, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: opts.DialTimeout,
	}
	start := time.Now()
	ws, resp, err := dialer.DialContext(ctx, opts.URL(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		opts.Logger.Debug("dial failed", "url", opts.URL(), "err", err)
		return nil, FromTransport(err)
	}
	ws.SetReadLimit(opts.MaxMessageBytes)

	c := &Conn{
		opts:    opts,
		ws:      ws,
		logger:  opts.Logger.With("host", opts.Address()),
		out:     make(chan outbound, opts.QueueSize),
		pending: make(map[uuid.UUID]*Pending),
		done:    make(chan struct{}),
	}
	go c.writeLoop()
	go c.readLoop()

	observability.Connection().OnConnect(ctx, opts.Address(), time.Since(start))
	c.logger.Debug("connected", "url", opts.URL())
	return c, nil
}

// Err returns the fault that broke the connection, or nil while it is usable.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		return nil
	}
	return c.err
}

// InFlight returns the number of requests awaiting their final response.
func (c *Conn) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Close sends a close frame and releases the connection. Pending requests
// fail with CONNECTION_STATE (AlreadyClosed).
func (c *Conn) Close() error {
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.shutdown(FromTransport(net.ErrClosed), true)
	return nil
}

// Submit hands req to the writer without blocking and returns a handle for
// its responses. A full queue or a broken connection fails immediately with
// CHANNEL_SEND.
func (c *Conn) Submit(ctx context.Context, req graphson.Request) (*Pending, error) {
	payload, err := graphson.EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	p := &Pending{
		id:    req.ID,
		conn:  c,
		start: time.Now(),
		done:  make(chan struct{}),
	}
	c.mu.Lock()
	if c.err != nil {
		c.mu.Unlock()
		return nil, FromSend(&SendError{Reason: SendDisconnected, RequestID: req.ID})
	}
	c.pending[req.ID] = p
	c.mu.Unlock()

	if err := c.enqueue(req.ID, payload); err != nil {
		c.forget(req.ID)
		return nil, err
	}
	bytecode := ""
	if bc, ok := req.Bytecode(); ok {
		bytecode = bc.String()
	}
	observability.Request().OnSubmit(ctx, c.opts.Address(), req.ID, bytecode)
	c.logger.Debug("submitted", "id", req.ID, "op", req.Op, "bytecode", bytecode)
	return p, nil
}

func (c *Conn) enqueue(id uuid.UUID, payload []byte) error {
	select {
	case <-c.done:
		return FromSend(&SendError{Reason: SendDisconnected, RequestID: id})
	default:
	}
	select {
	case c.out <- outbound{id: id, data: graphson.Frame(payload)}:
		return nil
	default:
		return FromSend(&SendError{Reason: SendQueueFull, RequestID: id})
	}
}

// forget drops a request's slot without resolving it.
func (c *Conn) forget(id uuid.UUID) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// resolve removes a request's slot and resolves it with err.
func (c *Conn) resolve(id uuid.UUID, err error) {
	c.mu.Lock()
	p, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if ok {
		p.finish(err)
	}
}

func (c *Conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.out:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.BinaryMessage, msg.data); err != nil {
				c.logger.Warn("write failed", "id", msg.id, "err", err)
				c.shutdown(FromTransport(err), false)
				return
			}
		}
	}
}

func (c *Conn) readLoop() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.shutdown(FromTransport(err), false)
			return
		}
		resp, err := graphson.DecodeResponse(data)
		if err != nil {
			c.logger.Warn("dropping undecodable frame", "err", err)
			continue
		}
		c.dispatch(resp)
	}
}

func (c *Conn) dispatch(resp graphson.Response) {
	c.mu.Lock()
	p, ok := c.pending[resp.RequestID]
	if !ok {
		c.mu.Unlock()
		c.logger.Debug("response for unknown request", "id", resp.RequestID, "status", resp.Status.Code)
		return
	}
	switch resp.Status.Code {
	case graphson.StatusAuthenticate:
		retry := p.authenticated
		p.authenticated = true
		c.mu.Unlock()
		if retry {
			c.resolve(resp.RequestID, gerrors.New(gerrors.ErrCodeAuth, "server repeated its authentication challenge"))
			return
		}
		c.authenticate(resp.RequestID)
		return
	case graphson.StatusPartialContent:
		p.data = append(p.data, resp.Data...)
		c.mu.Unlock()
		return
	}
	p.data = append(p.data, resp.Data...)
	delete(c.pending, resp.RequestID)
	c.mu.Unlock()

	err := resp.Err()
	if resp.Status.Code == graphson.StatusUnauthorized {
		err = gerrors.Wrap(gerrors.ErrCodeAuth, err, "authentication rejected")
	}
	p.finish(err)
}

// authenticate answers a SASL challenge for request id.
func (c *Conn) authenticate(id uuid.UUID) {
	if !c.opts.hasCredentials() {
		c.resolve(id, gerrors.New(gerrors.ErrCodeAuth, "server requires authentication but no credentials are configured"))
		return
	}
	payload, err := graphson.EncodeRequest(graphson.AuthRequest(id, c.opts.Username, c.opts.Password))
	if err != nil {
		c.resolve(id, err)
		return
	}
	if err := c.enqueue(id, payload); err != nil {
		c.resolve(id, err)
	}
}

// shutdown breaks the connection with fault and fails every pending request.
// Only the first fault is kept.
func (c *Conn) shutdown(fault *gerrors.Error, local bool) {
	c.mu.Lock()
	if c.err == nil {
		c.err = fault
	}
	fault = c.err
	calls := c.pending
	c.pending = make(map[uuid.UUID]*Pending)
	c.mu.Unlock()

	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
		if local {
			c.logger.Debug("closed")
			observability.Connection().OnDisconnect(c.opts.Address(), nil)
		} else {
			c.logger.Warn("connection lost", "err", fault)
			observability.Connection().OnDisconnect(c.opts.Address(), fault)
		}
	})
	for _, p := range calls {
		p.finish(fault)
	}
}

// Pending is a submitted request awaiting its final response.
type Pending struct {
	id    uuid.UUID
	conn  *Conn
	start time.Time

	// guarded by conn.mu until done is closed
	data          []graph.Value
	authenticated bool

	err  error
	done chan struct{}
}

// ID returns the request ID.
func (p *Pending) ID() uuid.UUID { return p.id }

func (p *Pending) finish(err error) {
	p.err = err
	close(p.done)
}

// Wait blocks until the final response arrives or ctx ends. Results from
// every partial response are returned in arrival order. Abandoning the wait
// releases the request's slot and leaves the connection usable.
func (p *Pending) Wait(ctx context.Context) ([]graph.Value, error) {
	host := p.conn.opts.Address()
	select {
	case <-p.done:
		observability.Request().OnComplete(ctx, host, p.id, len(p.data), time.Since(p.start), p.err)
		if p.err != nil {
			return nil, p.err
		}
		return p.data, nil
	case <-ctx.Done():
		p.conn.forget(p.id)
		observability.Request().OnComplete(ctx, host, p.id, 0, time.Since(p.start), ctx.Err())
		return nil, ctx.Err()
	}
}
