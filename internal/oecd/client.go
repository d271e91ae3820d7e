package oecd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ClientConfig configures the API client.
//
// Zero values are given sensible defaults:
//   - Timeout: 30s
type ClientConfig struct {
	// BaseURL is the API prefix; the dataset code is appended to it, e.g.
	// "https://stats.oecd.org/SDMX-JSON/data/" + "EDU_ENRL".
	BaseURL string

	// StartPeriod / EndPeriod bound the requested reporting window.
	StartPeriod string
	EndPeriod   string

	// Timeout is the fixed per-fetch deadline applied at the http.Client
	// level. Each dataset gets a single best-effort fetch; there is no retry.
	Timeout time.Duration

	// Transport is an optional custom RoundTripper for tests.
	Transport http.RoundTripper
}

// Client fetches dataset payloads from the upstream API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	startPeriod string
	endPeriod   string
}

// FetchError reports a network failure or a non-2xx response for one
// dataset's extraction.
type FetchError struct {
	Dataset string
	Status  int // 0 when the request never produced a response
	Err     error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("oecd: fetch %s: unexpected status %d", e.Dataset, e.Status)
	}
	return fmt.Sprintf("oecd: fetch %s: %v", e.Dataset, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewClient constructs a Client from ClientConfig, applying defaults for zero
// values.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL:     cfg.BaseURL,
		startPeriod: cfg.StartPeriod,
		endPeriod:   cfg.EndPeriod,
	}
}

// FetchDataset performs a single GET for the given dataset code and decodes
// the response payload. The extra values are merged over the defaults
// (dimensionAtObservation=AllDimensions, detail=dataonly, startPeriod,
// endPeriod); per-dataset parameters such as measure=USD go here.
//
// The caller owns error classification: any failure here is fatal for that
// dataset's extraction.
func (c *Client) FetchDataset(ctx context.Context, dataset string, extra url.Values) (*Payload, error) {
	if dataset == "" {
		return nil, fmt.Errorf("oecd: dataset code must not be empty")
	}

	q := url.Values{}
	q.Set("dimensionAtObservation", "AllDimensions")
	q.Set("detail", "dataonly")
	if c.startPeriod != "" {
		q.Set("startPeriod", c.startPeriod)
	}
	if c.endPeriod != "" {
		q.Set("endPeriod", c.endPeriod)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Set(k, v)
		}
	}

	u := c.baseURL + dataset + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Dataset: dataset, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Dataset: dataset, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Dataset: dataset, Status: resp.StatusCode}
	}

	p, err := ParsePayload(resp.Body)
	if err != nil {
		return nil, &FetchError{Dataset: dataset, Err: err}
	}
	return p, nil
}
