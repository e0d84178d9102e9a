package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"libradesk/internal/logging"
)

// Service names the remote collaborators. ServiceSystem is the orchestrator;
// the transaction ledger is addressed separately because it lives on a
// sibling endpoint of the orchestrator host.
type Service string

const (
	ServiceUsers        Service = "users"
	ServiceBooks        Service = "books"
	ServiceSystem       Service = "system"
	ServiceTransactions Service = "transactions"
)

// Endpoints holds the base URLs of the collaborating services.
type Endpoints struct {
	Users        string
	Books        string
	Orchestrator string
	Transactions string
}

// Client is the uniform request wrapper around the remote services.
//
// Requests carry no timeout and are never retried: a hung remote call hangs
// the operation that issued it. The caller may bound a request through ctx.
type Client struct {
	endpoints map[Service]string
	hc        *http.Client
	log       logging.Logger
}

func NewClient(e Endpoints, log logging.Logger) *Client {
	return &Client{
		endpoints: map[Service]string{
			ServiceUsers:        strings.TrimRight(e.Users, "/"),
			ServiceBooks:        strings.TrimRight(e.Books, "/"),
			ServiceSystem:       strings.TrimRight(e.Orchestrator, "/"),
			ServiceTransactions: strings.TrimRight(e.Transactions, "/"),
		},
		hc:  &http.Client{},
		log: log.With("component", "transport"),
	}
}

// Request performs one HTTP call against the named service and returns the
// raw response body on any 2xx status. body, when non-nil, is JSON-encoded.
// Every returned error is a *ClientError.
func (c *Client) Request(ctx context.Context, svc Service, method, path string, body any) ([]byte, error) {
	base, ok := c.endpoints[svc]
	if !ok || base == "" {
		return nil, &ClientError{Message: fmt.Sprintf("no endpoint configured for service %q", svc)}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := jsoniter.ConfigFastest.Marshal(body)
		if err != nil {
			return nil, &ClientError{Message: fmt.Sprintf("encoding request body: %v", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return nil, &ClientError{Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.log.Debug(ctx, "request", "service", string(svc), "method", method, "path", path, "request_id", requestID)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "service", string(svc), "path", path, "request_id", requestID, "error", err)
		return nil, &ClientError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Message: fmt.Sprintf("reading response body: %v", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		cerr := &ClientError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		c.log.Warn(ctx, "request rejected", "service", string(svc), "path", path, "request_id", requestID, "status", resp.StatusCode)
		return nil, cerr
	}

	return data, nil
}
