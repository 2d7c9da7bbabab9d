package graphson

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

// MimeType is the content type announced in every request frame.
const MimeType = "application/vnd.gremlin-v3.0+json"

// Request operations and processors.
const (
	OpBytecode       = "bytecode"
	OpAuthentication = "authentication"

	ProcessorTraversal = "traversal"
)

// Server status codes.
const (
	StatusSuccess                  = 200
	StatusNoContent                = 204
	StatusPartialContent           = 206
	StatusUnauthorized             = 401
	StatusAuthenticate             = 407
	StatusMalformedRequest         = 498
	StatusInvalidRequestArguments  = 499
	StatusServerError              = 500
	StatusScriptEvaluationError    = 597
	StatusServerTimeout            = 598
	StatusServerSerializationError = 599
)

// Request is one message sent to the server.
//
// Args values may be plain JSON values, a [traversal.Bytecode], or a
// [graph.Value]; the latter two are encoded as GraphSON.
type Request struct {
	ID        uuid.UUID
	Op        string
	Processor string
	Args      map[string]any
}

// BytecodeRequest creates a request that evaluates bc against the traversal
// source bound to alias on the server.
func BytecodeRequest(id uuid.UUID, bc traversal.Bytecode, alias string) Request {
	return Request{
		ID:        id,
		Op:        OpBytecode,
		Processor: ProcessorTraversal,
		Args: map[string]any{
			"gremlin": bc,
			"aliases": map[string]string{"g": alias},
		},
	}
}

// AuthRequest answers an authentication challenge for request id with SASL
// PLAIN credentials.
func AuthRequest(id uuid.UUID, username, password string) Request {
	sasl := base64.StdEncoding.EncodeToString([]byte("\x00" + username + "\x00" + password))
	return Request{
		ID:        id,
		Op:        OpAuthentication,
		Processor: ProcessorTraversal,
		Args: map[string]any{
			"sasl":          sasl,
			"saslMechanism": "PLAIN",
		},
	}
}

type wireRequest struct {
	RequestID string         `json:"requestId"`
	Op        string         `json:"op"`
	Processor string         `json:"processor"`
	Args      map[string]any `json:"args"`
}

// EncodeRequest marshals r as JSON without the mime prefix.
func EncodeRequest(r Request) ([]byte, error) {
	args := make(map[string]any, len(r.Args))
	for k, v := range r.Args {
		enc, err := encodeArg(v)
		if err != nil {
			return nil, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "encode arg %q", k)
		}
		args[k] = enc
	}
	data, err := json.Marshal(wireRequest{
		RequestID: r.ID.String(),
		Op:        r.Op,
		Processor: r.Processor,
		Args:      args,
	})
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "marshal request")
	}
	return data, nil
}

func encodeArg(v any) (any, error) {
	switch t := v.(type) {
	case traversal.Bytecode:
		return encodeBytecode(t)
	case graph.Value:
		return encodeValue(t)
	case graph.Valuer:
		return encodeValue(t.GValue())
	default:
		return v, nil
	}
}

// Frame prefixes payload with the mime header the server expects on binary
// websocket messages.
func Frame(payload []byte) []byte {
	out := make([]byte, 0, 1+len(MimeType)+len(payload))
	out = append(out, byte(len(MimeType)))
	out = append(out, MimeType...)
	return append(out, payload...)
}

// Unframe strips a mime header produced by [Frame]. It returns an error if
// data does not start with [MimeType].
func Unframe(data []byte) ([]byte, error) {
	if len(data) == 0 || int(data[0]) != len(MimeType) || !bytes.HasPrefix(data[1:], []byte(MimeType)) {
		return nil, gerrors.New(gerrors.ErrCodeSerialization, "frame does not carry %s", MimeType)
	}
	return data[1+len(MimeType):], nil
}

// Status is the status block of a response.
type Status struct {
	Code       int
	Message    string
	Attributes graph.Map
}

// Response is one message received from the server. A traversal may be
// answered by several responses sharing the request ID.
type Response struct {
	RequestID uuid.UUID
	Status    Status
	Data      []graph.Value
}

// Terminal reports whether no further responses follow for this request.
func (r Response) Terminal() bool {
	return r.Status.Code != StatusPartialContent && r.Status.Code != StatusAuthenticate
}

// Err converts a failure status into a REQUEST error. It returns nil for
// success, partial content and authentication challenges.
func (r Response) Err() error {
	switch r.Status.Code {
	case StatusSuccess, StatusNoContent, StatusPartialContent, StatusAuthenticate:
		return nil
	}
	msg := r.Status.Message
	if msg == "" {
		msg = "server returned status " + strconv.Itoa(r.Status.Code)
	}
	return gerrors.Request(r.Status.Code, msg)
}

type wireResponse struct {
	RequestID *string `json:"requestId"`
	Status    struct {
		Code       int             `json:"code"`
		Message    string          `json:"message"`
		Attributes json.RawMessage `json:"attributes"`
	} `json:"status"`
	Result struct {
		Data json.RawMessage `json:"data"`
	} `json:"result"`
}

// DecodeResponse unmarshals a response, expanding traverser bulks in the
// result data. A missing or null request ID decodes as uuid.Nil.
func DecodeResponse(data []byte) (Response, error) {
	var w wireResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return Response{}, malformed(err, "response")
	}
	resp := Response{Status: Status{Code: w.Status.Code, Message: w.Status.Message}}
	if w.RequestID != nil && *w.RequestID != "" {
		id, err := uuid.Parse(*w.RequestID)
		if err != nil {
			return Response{}, malformed(err, "requestId")
		}
		resp.RequestID = id
	}
	if len(w.Status.Attributes) > 0 {
		attrs, err := decodeRaw(w.Status.Attributes)
		if err != nil {
			return Response{}, err
		}
		if m, err := graph.As[graph.Map](attrs); err == nil {
			resp.Status.Attributes = m
		}
	}
	results, err := decodeData(w.Result.Data)
	if err != nil {
		return Response{}, err
	}
	resp.Data = results
	return resp, nil
}

// decodeData flattens the result payload into one value per traverser.
func decodeData(raw json.RawMessage) ([]graph.Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == 'n' {
		return nil, nil
	}
	var items []json.RawMessage
	var t rawTyped
	if raw[0] == '{' {
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, malformed(err, "result data")
		}
		if t.Type != "g:List" && t.Type != "g:Set" {
			v, err := decodeTyped(t)
			if err != nil {
				return nil, err
			}
			return []graph.Value{v}, nil
		}
		raw = t.Value
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformed(err, "result data")
	}
	var out []graph.Value
	for _, item := range items {
		var it rawTyped
		if bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) && json.Unmarshal(item, &it) == nil && it.Type == "g:Traverser" {
			tr, err := decodeTraverser(it.Value)
			if err != nil {
				return nil, err
			}
			for range tr.bulk {
				out = append(out, tr.value)
			}
			continue
		}
		v, err := decodeRaw(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeRequest unmarshals a request produced by [EncodeRequest]. The
// gremlin argument, when present, is decoded into a [traversal.Bytecode];
// other arguments are left as [json.RawMessage].
func DecodeRequest(data []byte) (Request, error) {
	var w struct {
		RequestID string                     `json:"requestId"`
		Op        string                     `json:"op"`
		Processor string                     `json:"processor"`
		Args      map[string]json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return Request{}, malformed(err, "request")
	}
	id, err := uuid.Parse(w.RequestID)
	if err != nil {
		return Request{}, malformed(err, "requestId")
	}
	req := Request{ID: id, Op: w.Op, Processor: w.Processor, Args: make(map[string]any, len(w.Args))}
	for k, raw := range w.Args {
		if k == "gremlin" {
			bc, err := DecodeBytecode(raw)
			if err != nil {
				return Request{}, err
			}
			req.Args[k] = bc
			continue
		}
		req.Args[k] = raw
	}
	return req, nil
}

// Bytecode returns the traversal carried by a bytecode request.
func (r Request) Bytecode() (traversal.Bytecode, bool) {
	bc, ok := r.Args["gremlin"].(traversal.Bytecode)
	return bc, ok
}

// EncodeResponse marshals r the way Gremlin Server does. Data is sent as a
// g:List of plain values.
func EncodeResponse(r Response) ([]byte, error) {
	items, err := encodeList(r.Data)
	if err != nil {
		return nil, err
	}
	attrs, err := encodeValue(r.Status.Attributes.GValue())
	if err != nil {
		return nil, err
	}
	var data any
	if r.Status.Code == StatusSuccess || r.Status.Code == StatusPartialContent {
		data = typed{"g:List", items}
	}
	var id *string
	if r.RequestID != uuid.Nil {
		s := r.RequestID.String()
		id = &s
	}
	out, err := json.Marshal(map[string]any{
		"requestId": id,
		"status": map[string]any{
			"code":       r.Status.Code,
			"message":    r.Status.Message,
			"attributes": attrs,
		},
		"result": map[string]any{
			"data": data,
			"meta": typed{"g:Map", []any{}},
		},
	})
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "marshal response")
	}
	return out, nil
}
