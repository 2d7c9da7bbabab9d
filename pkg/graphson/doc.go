// Package graphson encodes requests and decodes responses in GraphSON 3.0,
// the JSON dialect spoken by Gremlin Server.
//
// Every non-JSON-native value travels as a typed object:
//
//	{"@type": "g:Int64", "@value": 29}
//
// Traversal bytecode is sent as a g:Bytecode whose step and source lists hold
// one array per instruction, operator first:
//
//	{"@type": "g:Bytecode", "@value": {"step": [["V"], ["out", "knows"]]}}
//
// Responses carry a g:List of g:Traverser objects; [DecodeResponse] expands
// each traverser's bulk so callers see one value per result.
//
// Frames on the websocket are prefixed with the mime type: one length byte
// followed by the mime string, see [Frame].
package graphson
