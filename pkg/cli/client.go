package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a thin HTTP client for the minidb API. All request paths are
// relative to the /v1 prefix.
type Client struct {
	BaseURL    string
	APIKey     string
	Token      string
	Session    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given host. A trailing slash on the
// host is dropped.
func NewClient(host, apiKey, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(host, "/"),
		APIKey:     apiKey,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a structured error response from the server.
type APIError struct {
	HTTPStatus int
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Kind       string `json:"kind,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.HTTPStatus, e.Message)
}

// Do performs a request against the API. A non-nil body is JSON-encoded.
// The caller owns the response body.
func (c *Client) Do(method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.BaseURL + "/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case c.Token != "":
		req.Header.Set("Authorization", "Bearer "+c.Token)
	case c.APIKey != "":
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// CheckError converts a non-2xx response into an *APIError. The body is
// consumed either way.
func CheckError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := ReadBody(resp)

	apiErr := &APIError{HTTPStatus: resp.StatusCode}
	if err := json.Unmarshal(data, apiErr); err == nil && apiErr.Message != "" {
		return apiErr
	}
	// Not the structured shape; surface the raw body.
	apiErr.Message = string(data)
	return apiErr
}

// ReadBody reads and closes a response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// get performs a GET, checks the status, and decodes the body into out.
// Numbers are decoded as json.Number so big integers survive.
func (c *Client) get(path string, query url.Values, out any) error {
	resp, err := c.Do(http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := CheckError(resp); err != nil {
		return err
	}
	return decodeBody(resp, out)
}

func decodeBody(resp *http.Response, out any) error {
	data, err := ReadBody(resp)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// === API operations ===

// QueryResult mirrors the server's query response.
type QueryResult struct {
	Columns    []string        `json:"columns"`
	Rows       [][]interface{} `json:"rows"`
	RowCount   int             `json:"row_count"`
	Statement  string          `json:"statement"`
	DurationMs int64           `json:"duration_ms"`
}

// Query executes one SQL statement.
func (c *Client) Query(sql string) (*QueryResult, error) {
	body := map[string]any{"sql": sql}
	if c.Session != "" {
		body["session"] = c.Session
	}
	resp, err := c.Do(http.MethodPost, "/query", nil, body)
	if err != nil {
		return nil, err
	}
	if err := CheckError(resp); err != nil {
		return nil, err
	}
	var result QueryResult
	if err := decodeBody(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TableSummary mirrors one element of the server's table list.
type TableSummary struct {
	Name        string `json:"name"`
	ColumnCount int    `json:"column_count"`
	RowCount    int    `json:"row_count"`
}

// ListTables lists the tables of the client's session.
func (c *Client) ListTables() ([]TableSummary, error) {
	var result struct {
		Tables []TableSummary `json:"tables"`
	}
	if err := c.get("/tables", c.sessionQuery(), &result); err != nil {
		return nil, err
	}
	return result.Tables, nil
}

// TableDetail mirrors the server's table description.
type TableDetail struct {
	Name    string `json:"name"`
	Columns []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"columns"`
	RowCount int    `json:"row_count"`
	DDL      string `json:"ddl"`
}

// DescribeTable fetches one table's schema and row count.
func (c *Client) DescribeTable(name string) (*TableDetail, error) {
	var result TableDetail
	if err := c.get("/tables/"+url.PathEscape(name), c.sessionQuery(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HistoryEntry mirrors one element of the server's history list.
type HistoryEntry struct {
	ID           int64   `json:"id"`
	SessionID    string  `json:"session_id"`
	Principal    string  `json:"principal"`
	SQL          string  `json:"sql"`
	Statement    string  `json:"statement,omitempty"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message,omitempty"`
	DurationMs   int64   `json:"duration_ms"`
	RowCount     *int64  `json:"row_count,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// HistoryPage is one page of history entries.
type HistoryPage struct {
	Entries       []HistoryEntry `json:"entries"`
	Total         int            `json:"total"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// HistoryOptions filters the history listing. Zero values are omitted.
type HistoryOptions struct {
	Session    string
	Status     string
	Statement  string
	MaxResults int
	PageToken  string
}

// History lists executed statements, newest first.
func (c *Client) History(opts HistoryOptions) (*HistoryPage, error) {
	q := url.Values{}
	if opts.Session != "" {
		q.Set("session", opts.Session)
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Statement != "" {
		q.Set("statement", opts.Statement)
	}
	if opts.MaxResults > 0 {
		q.Set("max_results", fmt.Sprintf("%d", opts.MaxResults))
	}
	if opts.PageToken != "" {
		q.Set("page_token", opts.PageToken)
	}
	var page HistoryPage
	if err := c.get("/history", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SessionInfo mirrors the server's session description.
type SessionInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	CreatedAt  string `json:"created_at"`
	LastUsedAt string `json:"last_used_at"`
	Statements int64  `json:"statements"`
	Tables     int    `json:"tables"`
}

// CreateSession creates a session. Empty id asks the server to generate one.
func (c *Client) CreateSession(id, name string) (*SessionInfo, error) {
	body := map[string]string{}
	if id != "" {
		body["id"] = id
	}
	if name != "" {
		body["name"] = name
	}
	resp, err := c.Do(http.MethodPost, "/sessions", nil, body)
	if err != nil {
		return nil, err
	}
	if err := CheckError(resp); err != nil {
		return nil, err
	}
	var info SessionInfo
	if err := decodeBody(resp, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListSessions lists live sessions, oldest first.
func (c *Client) ListSessions() ([]SessionInfo, error) {
	var result struct {
		Sessions []SessionInfo `json:"sessions"`
	}
	if err := c.get("/sessions", nil, &result); err != nil {
		return nil, err
	}
	return result.Sessions, nil
}

// CloseSession discards a session and its tables.
func (c *Client) CloseSession(id string) error {
	resp, err := c.Do(http.MethodDelete, "/sessions/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	if err := CheckError(resp); err != nil {
		return err
	}
	_, _ = ReadBody(resp)
	return nil
}

func (c *Client) sessionQuery() url.Values {
	if c.Session == "" {
		return nil
	}
	q := url.Values{}
	q.Set("session", c.Session)
	return q
}
