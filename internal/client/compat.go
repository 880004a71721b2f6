package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultSwaggerURL is the published API description
const DefaultSwaggerURL = "https://raw.githubusercontent.com/CFBD/cfb-api/main/swagger.json"

// Compatibility compares the pinned API version with the published one
type Compatibility struct {
	Pinned  string `json:"pinned"`
	Current string `json:"current"`
	Match   bool   `json:"match"`
}

// CheckCompatibility fetches the swagger document with the client's transport
func (c *Client) CheckCompatibility(ctx context.Context, swaggerURL, pinned string) (*Compatibility, error) {
	return CheckCompatibility(ctx, c.httpClient, swaggerURL, pinned)
}

// CheckCompatibility fetches the swagger document and compares its info.version with pinned.
// The document is public, so no API key is sent.
func CheckCompatibility(ctx context.Context, hc *http.Client, swaggerURL, pinned string) (*Compatibility, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	if swaggerURL == "" {
		swaggerURL = DefaultSwaggerURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, swaggerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swagger document: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read swagger document: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: swaggerURL, Body: string(body)}
	}

	var doc struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swagger document: %w", err)
	}
	if doc.Info.Version == "" {
		return nil, fmt.Errorf("swagger document has no info.version")
	}

	result := &Compatibility{
		Pinned:  pinned,
		Current: doc.Info.Version,
		Match:   strings.TrimPrefix(doc.Info.Version, "v") == strings.TrimPrefix(pinned, "v"),
	}
	if !result.Match {
		log.Warn().
			Str("pinned", pinned).
			Str("current", result.Current).
			Msg("Published API version differs from the pinned version")
	}
	return result, nil
}
