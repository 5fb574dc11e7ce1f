// Package appwrite is a minimal client for the Appwrite databases REST API.
package appwrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const responseFormat = "1.5.0"

// Config describes how to reach an Appwrite project.
type Config struct {
	Endpoint string // e.g. https://cloud.appwrite.io/v1
	Project  string
	Key      string
	// Client defaults to a plain http.Client, which applies no timeout.
	Client *http.Client
}

// Client talks to one Appwrite project. Creating it does no network I/O.
type Client struct {
	endpoint   string
	project    string
	key        string
	httpClient *http.Client
}

func NewClient(config Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, errors.New("appwrite: endpoint is required")
	}
	if _, err := url.Parse(config.Endpoint); err != nil {
		return nil, fmt.Errorf("appwrite: invalid endpoint %q: %w", config.Endpoint, err)
	}

	httpClient := config.Client
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		endpoint:   strings.TrimRight(config.Endpoint, "/"),
		project:    config.Project,
		key:        config.Key,
		httpClient: httpClient,
	}, nil
}

// Endpoint returns the base URL the client was configured with.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ListDocuments returns the first page of documents in a collection. An empty
// queries slice lists without filters using the server's default page size.
func (c *Client) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (*DocumentList, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents",
		url.PathEscape(databaseID), url.PathEscape(collectionID))

	params := url.Values{}
	for _, q := range queries {
		params.Add("queries[]", q)
	}

	var list DocumentList
	if err := c.doJSONRequest(ctx, http.MethodGet, path, params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values) (*http.Response, error) {
	target := c.endpoint + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.project)
	req.Header.Set("X-Appwrite-Key", c.key)
	req.Header.Set("X-Appwrite-Response-Format", responseFormat)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}

func (c *Client) doJSONRequest(ctx context.Context, method, path string, params url.Values, result interface{}) error {
	resp, err := c.doRequest(ctx, method, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newResponseError(resp, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
