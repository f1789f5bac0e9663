package models

// ClientWrapped is the envelope returned by every client-scoped endpoint:
// the per-call payload plus the client snapshot after the call.
type ClientWrapped[T any] struct {
	Response T       `json:"response"`
	Client   *Client `json:"client"`
}

// DeletedObject is the payload of endpoints that delete a resource.
type DeletedObject struct {
	ID      string `json:"id,omitempty"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// APIErrorItem is one element of the "errors" array in FAPI error bodies.
type APIErrorItem struct {
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	LongMessage string         `json:"long_message,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// APIErrorBody is the JSON body of any non-2xx FAPI response.
type APIErrorBody struct {
	Errors       []APIErrorItem `json:"errors"`
	ClerkTraceID string         `json:"clerk_trace_id,omitempty"`
}
