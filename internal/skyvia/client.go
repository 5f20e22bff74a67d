package skyvia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/skyvia-mcp/pkg/config"
	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
	"github.com/angelmondragon/skyvia-mcp/pkg/logger"
)

// Client issues authenticated requests against the Skyvia REST API and
// classifies every outcome into the shared error taxonomy. It holds no
// per-call state; concurrent calls share only the token source and the
// pooled http.Client.
type Client struct {
	baseURL string
	timeout time.Duration
	tokens  *TokenSource
	http    *http.Client
	logger  *logger.Logger
}

func NewClient(cfg config.APIConfig, tokens *TokenSource, logg *logger.Logger) (*Client, error) {
	if tokens == nil {
		return nil, errors.New(errors.CodeConfiguration, "token source is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeConfiguration, "logger is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		tokens:  tokens,
		http:    &http.Client{},
		logger:  logg,
	}, nil
}

// Request describes one outgoing call. Constructed fresh per call and
// never reused.
type Request struct {
	Path   string
	Method string
	Query  url.Values
	Body   any
	// Timeout overrides the client default for this call only.
	Timeout time.Duration
}

// Outcome is the decoded result of a successful call: the HTTP status
// and the raw JSON body. A 204 or zero-length body leaves Body nil,
// which is distinct from the JSON literal null.
type Outcome struct {
	Status int
	Body   json.RawMessage
}

// NoContent reports whether the response carried no body at all.
func (o Outcome) NoContent() bool {
	return len(o.Body) == 0
}

// Do resolves the credential, issues the request, and interprets the
// response. Transport failures, non-2xx statuses, and non-JSON bodies
// on success statuses each map to their own error code; the raw JSON
// body of a 2xx response is returned undecoded for the envelope layer.
func (c *Client) Do(ctx context.Context, req Request) (Outcome, error) {
	token, err := c.tokens.Resolve()
	if err != nil {
		return Outcome{}, err
	}

	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return Outcome{}, errors.Wrap(errors.CodeValidation, err, "encoding request body")
		}
		body = bytes.NewReader(encoded)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return Outcome{}, errors.Wrap(errors.CodeValidation, err, "building request")
	}
	// Skyvia's "Access Token" scheme takes the raw token value, no
	// Bearer prefix.
	httpReq.Header.Set("Authorization", token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	lctx := c.logger.WithRequestID(ctx, uuid.NewString())
	lctx = c.logger.WithFields(lctx, map[string]any{
		"method": req.Method,
		"path":   req.Path,
	})
	started := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error(lctx, "skyvia request failed", err)
		return Outcome{}, errors.Wrap(errors.CodeTransport, err, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(lctx, "skyvia response read failed", err)
		return Outcome{}, errors.Wrap(errors.CodeTransport, err, fmt.Sprintf("reading response: %v", err))
	}

	c.logger.Debug(c.logger.WithFields(lctx, map[string]any{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	}), "skyvia request")

	if resp.StatusCode >= http.StatusBadRequest {
		return Outcome{}, httpError(resp.StatusCode, raw)
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return Outcome{Status: resp.StatusCode}, nil
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "application/json") {
		return Outcome{}, errors.New(errors.CodeContentType,
			fmt.Sprintf("unexpected content type received: %s", contentType)).
			WithStatus(resp.StatusCode).
			WithDetails(string(raw))
	}

	if !json.Valid(raw) {
		return Outcome{}, errors.New(errors.CodeShape, "response body is not valid JSON").
			WithStatus(resp.StatusCode).
			WithDetails(string(raw))
	}

	return Outcome{Status: resp.StatusCode, Body: raw}, nil
}

// httpError builds the classified error for a non-2xx response. A
// decodable JSON body contributes its message field (or its entirety)
// and rides along as structured detail; anything else surfaces as the
// raw response text.
func httpError(status int, raw []byte) *errors.Error {
	message := fmt.Sprintf("HTTP Error %d", status)
	var details any

	if len(bytes.TrimSpace(raw)) > 0 {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			details = decoded
			message = upstreamMessage(decoded)
		} else {
			message = string(raw)
		}
	}

	return errors.New(errors.CodeHTTP, message).WithStatus(status).WithDetails(details)
}

func upstreamMessage(decoded any) string {
	if obj, ok := decoded.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%v", decoded)
}
