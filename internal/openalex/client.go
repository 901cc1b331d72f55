// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex queries the OpenAlex works API and reconstructs article
// abstracts from their inverted-index form.
package openalex

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/harrylee0412/journal-query/internal/httputil"
	"github.com/harrylee0412/journal-query/pkg/types"
)

// BaseURL is the OpenAlex works search endpoint. Declared as a var so tests
// can substitute an httptest server.
var BaseURL = "https://api.openalex.org/works"

// requestsPerSecond is the OpenAlex polite-pool rate limit.
const requestsPerSecond = 10

// Page is one page of works plus the total matching record count reported
// by the API.
type Page struct {
	Works []Work
	Count int
}

// Client is a rate-limited HTTP client for the works endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

// NewClient builds a Client from shared HTTP settings.
func NewClient(cfg types.HTTPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    BaseURL,
		userAgent:  cfg.UserAgent,
	}
}

// Search issues one works query and returns the page of results. A non-2xx
// response or network failure is a hard error for the call; nothing is
// retried.
func (c *Client) Search(ctx context.Context, req Request) (*Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp struct {
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
		Results []Work `json:"results"`
	}

	reqURL := c.baseURL + "?" + req.Values().Encode()
	if err := httputil.GetJSON(ctx, c.httpClient, reqURL, c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("OpenAlex error: %w", err)
	}

	return &Page{Works: resp.Results, Count: resp.Meta.Count}, nil
}
