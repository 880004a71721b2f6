package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"cfbd_v1/ingestion/internal/table"
)

// Response is the payload of one endpoint call.
// Use JSON or Decode for the raw payload and Table for the flattened form.
type Response struct {
	Endpoint string
	Query    url.Values
	Body     json.RawMessage

	flatten flattenFunc
}

// JSON returns the raw payload
func (r *Response) JSON() json.RawMessage {
	return r.Body
}

// Decode unmarshals the raw payload into v
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", r.Endpoint, err)
	}
	return nil
}

// Table flattens the payload with the endpoint's column rules
func (r *Response) Table() (*table.Table, error) {
	if r.flatten == nil {
		return table.FromJSON(r.Body)
	}
	t, err := r.flatten(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten %s: %w", r.Endpoint, err)
	}
	return t, nil
}
