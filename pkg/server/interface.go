/*
Package server exposes the prefix index over two thin transports, composing
the index and the rate limiter only at the request boundary.

# HTTP

GET /api/v1/suggest?q=<prefix>&limit=<n> answers with JSON:

	{"query": "ca", "count": 3, "results": ["car", "card", "cat"]}

Queries shorter than the configured minimum are policy errors (400), and a
client over its window allowance gets 429. The client key comes from the
first entry of X-Forwarded-For, falling back to the peer address.

# IPC

The IPC mode speaks msgpack over stdin/stdout, one request per frame:

	{"id": "req_001", "p": "ame", "l": 24}

and responds with the matched words plus timing info:

	{"id": "req_001", "s": ["amenity", "america"], "c": 2, "t": 145}

Errors come back as {"id", "e", "c"} frames with an HTTP-ish code. Binary
msgpack keeps frames ~30-50% smaller than JSON, which matters when an editor
fires a request per keystroke.

Both transports gate requests through the same fixed-window limiter before
ever touching the index; a rejected request never reaches a traversal.
*/
package server

// SuggestResponse is the HTTP answer for a suggestion query.
type SuggestResponse struct {
	Query   string   `json:"query"`
	Count   int      `json:"count"`
	Results []string `json:"results"`
}

// ErrorResponse represents an HTTP API error.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// SuggestRequest - minimal IPC suggestion request
type SuggestRequest struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
	Client string `msgpack:"k,omitempty"`
}

// IPCResponse - IPC suggestion response
type IPCResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"s"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// IPCError holds basic error information for IPC requests
type IPCError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
