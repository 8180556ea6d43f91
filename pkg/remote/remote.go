// Package remote is the thin HTTP client for the remote transcript
// service: three bearer-authenticated POST endpoints, tolerant JSON
// decoding, and non-2xx-is-fatal semantics. Grounded on
// the CLI agent's makeRequest helper — the same
// plain net/http + JSON + bearer-header shape, generalized here to the
// three documented endpoints and to the converter's loosely-typed
// transcript decoding.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/kadegen/granolasync/internal/apperr"
	"github.com/kadegen/granolasync/pkg/convert"
)

// defaultTimeout bounds a single remote call.
const defaultTimeout = 30 * time.Second

// Client is the remote document service client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client

	throttleMin time.Duration
	throttleMax time.Duration
}

// New builds a Client against baseURL, authenticating every request
// with token as a bearer credential. Token resolution itself (session
// file, env var, keychain, …) is out of scope here; callers pass an
// already-resolved token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SetThrottle configures a random [min,max] delay applied after every
// POST, bounding the request rate against the remote service. A zero
// max disables throttling (the default).
func (c *Client) SetThrottle(min, max time.Duration) {
	c.throttleMin = min
	c.throttleMax = max
}

func (c *Client) throttle() {
	if c.throttleMax <= 0 {
		return
	}
	span := c.throttleMax - c.throttleMin
	delay := c.throttleMin
	if span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	time.Sleep(delay)
}

// listDocumentsResponse is the documented "list documents" envelope.
type listDocumentsResponse struct {
	Docs []convert.DocumentSummary `json:"docs" mapstructure:"docs"`
}

// ListDocuments enumerates every remote document summary, in the
// order the remote service returns them.
func (c *Client) ListDocuments(ctx context.Context) ([]convert.DocumentSummary, error) {
	var out listDocumentsResponse
	if err := c.post(ctx, "/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Docs, nil
}

// GetMetadata fetches the full metadata record for docID.
func (c *Client) GetMetadata(ctx context.Context, docID string) (convert.DocumentMetadata, error) {
	var out convert.DocumentMetadata
	if err := c.post(ctx, "/metadata", map[string]string{"document_id": docID}, &out); err != nil {
		return convert.DocumentMetadata{}, err
	}
	return out, nil
}

// GetTranscript fetches the raw transcript payload for docID and
// decodes its polymorphic segments/monologues shape.
func (c *Client) GetTranscript(ctx context.Context, docID string) (convert.RawTranscript, error) {
	var raw map[string]interface{}
	if err := c.post(ctx, "/transcript", map[string]string{"document_id": docID}, &raw); err != nil {
		return convert.RawTranscript{}, err
	}
	return convert.DecodeRawTranscript(raw)
}

// post issues a bearer-authenticated POST with a JSON body (nil for
// no body) and decodes the JSON response into out. Non-2xx responses
// and transport failures are both fatal.
func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(apperr.KindParse, "marshal request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return apperr.Wrap(apperr.KindNetwork, fmt.Sprintf("build request for %s", path), err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	defer c.throttle()
	if err != nil {
		return apperr.Wrap(apperr.KindNetwork, fmt.Sprintf("call %s", path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return apperr.New(apperr.KindAPI, fmt.Sprintf("%s returned %d: %s", path, resp.StatusCode, string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.KindParse, fmt.Sprintf("decode %s response", path), err)
	}
	return nil
}
