package aio

import (
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
)

// SendReason says why a request could not be handed to the writer.
type SendReason int

const (
	// SendDisconnected means the writer goroutine has exited.
	SendDisconnected SendReason = iota
	// SendQueueFull means the outbound queue is at capacity.
	SendQueueFull
)

// SendError is a failed hand-off to a connection's outbound queue.
type SendError struct {
	Reason    SendReason
	RequestID uuid.UUID
}

// Error implements the error interface.
func (e *SendError) Error() string {
	if e.Reason == SendQueueFull {
		return fmt.Sprintf("send %s: outbound queue full", e.RequestID)
	}
	return fmt.Sprintf("send %s: writer disconnected", e.RequestID)
}

// FromTransport classifies a websocket fault.
//
//   - websocket.ErrCloseSent and net.ErrClosed: CONNECTION_STATE, AlreadyClosed
//   - *websocket.CloseError: CONNECTION_STATE, ConnectionClosed
//   - anything else: TRANSPORT with the fault's text and no cause
//
// The last case is lossy on purpose. Callers needing to tell other faults
// apart must add a case here. FromTransport(nil) is nil.
func FromTransport(err error) *gerrors.Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, websocket.ErrCloseSent) || errors.Is(err, net.ErrClosed) {
		return gerrors.Closed(gerrors.AlreadyClosed, err)
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return gerrors.Closed(gerrors.ConnectionClosed, err)
	}
	return gerrors.New(gerrors.ErrCodeTransport, "Error from ws %v", err)
}

// FromSend wraps a failed hand-off, unchanged, as CHANNEL_SEND.
// FromSend(nil) is nil.
func FromSend(err *SendError) *gerrors.Error {
	if err == nil {
		return nil
	}
	return gerrors.Wrap(gerrors.ErrCodeChannelSend, err, "request not dispatched")
}
