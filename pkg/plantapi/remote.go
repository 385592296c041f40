package plantapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/grovetools/plantview/config"
	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/pkg/plant"
)

// DefaultTimeout bounds every request so a hung server cannot stall callers.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 4 << 10

// RemoteClient implements Client over HTTP.
type RemoteClient struct {
	httpClient *http.Client
	baseURL    string
	dataPath   string
	actionPath string
}

var _ Client = (*RemoteClient)(nil)

// Option configures a RemoteClient.
type Option func(*RemoteClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *RemoteClient) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *RemoteClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithPaths overrides the data and action endpoint paths.
func WithPaths(dataPath, actionPath string) Option {
	return func(c *RemoteClient) {
		if dataPath != "" {
			c.dataPath = dataPath
		}
		if actionPath != "" {
			c.actionPath = actionPath
		}
	}
}

// NewRemoteClient creates a client for the server at baseURL using the
// default endpoint paths.
func NewRemoteClient(baseURL string, opts ...Option) *RemoteClient {
	c := &RemoteClient{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:             http.ProxyFromEnvironment,
				MaxIdleConns:      10,
				IdleConnTimeout:   90 * time.Second,
				DisableKeepAlives: false,
			},
			Timeout: DefaultTimeout,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		dataPath:   config.DefaultDataPath,
		actionPath: config.DefaultActionPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client from the server section of cfg.
func NewFromConfig(cfg *config.Config) *RemoteClient {
	return NewRemoteClient(cfg.Server.BaseURL,
		WithPaths(cfg.Server.DataPath, cfg.Server.ActionPath),
		WithTimeout(cfg.Server.Timeout.D()),
	)
}

// DataURL returns the dataset endpoint.
func (c *RemoteClient) DataURL() string { return c.baseURL + c.dataPath }

// ActionURL returns the action endpoint.
func (c *RemoteClient) ActionURL() string { return c.baseURL + c.actionPath }

// FetchPlantData GETs the module dataset.
func (c *RemoteClient) FetchPlantData(ctx context.Context) (*plant.Dataset, error) {
	url := c.DataURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.RequestFailed(http.MethodGet, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.RequestFailed(http.MethodGet, url, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var data plant.Dataset
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.DecodeFailed(url, err)
	}
	return &data, nil
}

// PerformAction POSTs {module_id, action}. Any non-2xx reply is an error.
func (c *RemoteClient) PerformAction(ctx context.Context, moduleID, action string) (*ActionResponse, error) {
	url := c.ActionURL()
	body, err := json.Marshal(ActionRequest{ModuleID: moduleID, Action: action})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode action request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.RequestFailed(http.MethodPost, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.RequestFailed(http.MethodPost, url, err).
			WithDetail("module", moduleID)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		if pe, ok := errors.As(err); ok {
			pe.WithDetail("module", moduleID).WithDetail("action", action)
		}
		return nil, err
	}

	var out ActionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.DecodeFailed(url, err).WithDetail("module", moduleID)
	}
	return &out, nil
}

// Close releases idle connections.
func (c *RemoteClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// checkStatus turns a non-2xx response into an UnexpectedStatus error,
// keeping the server's message when it sent one.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	pe := errors.UnexpectedStatus(resp.Request.Method, resp.Request.URL.String(), resp.StatusCode)

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var reply ActionResponse
	if json.Unmarshal(raw, &reply) == nil && reply.Message != "" {
		pe.WithDetail("server_message", reply.Message)
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		pe.WithDetail("body", text)
	}
	return pe
}

// String describes the client for logs.
func (c *RemoteClient) String() string {
	return fmt.Sprintf("RemoteClient(%s)", c.baseURL)
}
