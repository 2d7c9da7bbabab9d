package aio

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/graphson"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

// Client is a pool of connections to one server.
//
// Requests are spread round-robin. A connection broken by a recoverable
// fault (AlreadyClosed or ConnectionClosed) is re-dialled the next time it
// is picked; connections broken any other way are skipped.
type Client struct {
	opts   Options
	slots  []*slot
	next   atomic.Uint64
	closed atomic.Bool
}

type slot struct {
	mu   sync.Mutex
	conn *Conn
}

// Dial opens opts.PoolSize connections.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Client{opts: opts, slots: make([]*slot, opts.PoolSize)}
	for i := range c.slots {
		conn, err := DialConn(ctx, opts)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.slots[i] = &slot{conn: conn}
	}
	opts.Logger.Debug("pool ready", "host", opts.Address(), "size", opts.PoolSize)
	return c, nil
}

// Options returns the options the client was dialled with.
func (c *Client) Options() Options { return c.opts }

// Close closes every connection. It is safe to call more than once.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	for _, s := range c.slots {
		if s == nil {
			continue
		}
		s.mu.Lock()
		if s.conn != nil {
			_ = s.conn.Close()
		}
		s.mu.Unlock()
	}
	return nil
}

// Execute runs bc on the server and returns every result in order.
func (c *Client) Execute(ctx context.Context, bc traversal.Bytecode) ([]graph.Value, error) {
	if c.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.RequestTimeout)
		defer cancel()
	}
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	p, err := conn.Submit(ctx, graphson.BytecodeRequest(uuid.New(), bc, c.opts.Alias))
	if err != nil {
		return nil, err
	}
	return p.Wait(ctx)
}

// acquire returns the next usable connection, re-dialling if needed.
func (c *Client) acquire(ctx context.Context) (*Conn, error) {
	var lastErr error
	for range len(c.slots) {
		if c.closed.Load() {
			return nil, gerrors.New(gerrors.ErrCodePool, "client is closed")
		}
		s := c.slots[c.next.Add(1)%uint64(len(c.slots))]
		conn, err := c.ready(ctx, s)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, gerrors.Wrap(gerrors.ErrCodePool, lastErr, "no usable connection to %s", c.opts.Address())
}

func (c *Client) ready(ctx context.Context, s *slot) (*Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fault := s.conn.Err()
	if fault == nil {
		return s.conn, nil
	}
	if !dialRetryable(fault) {
		return nil, fault
	}

	c.opts.Logger.Info("reconnecting", "host", c.opts.Address(), "cause", fault)
	var conn *Conn
	err := retryWithBackoff(ctx, dialRetryable, func() error {
		var err error
		conn, err = DialConn(ctx, c.opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c.closed.Load() {
		_ = conn.Close()
		return nil, gerrors.New(gerrors.ErrCodePool, "client is closed")
	}
	s.conn = conn
	return conn, nil
}
