// Package rest implements familyapi.Source against the family server's
// JSON API. Endpoints return either a bare array or an envelope with an
// items field; the client accepts both so older and newer server versions
// keep working.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"famboard/internal/core"
	"famboard/internal/session"
)

const defaultTimeout = 15 * time.Second

// Client talks to the family server over HTTP.
type Client struct {
	sess session.Session
	http *http.Client
}

// NewClient builds a REST client for the given session. A nil httpClient
// falls back to one with the default timeout.
func NewClient(sess session.Session, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{sess: sess, http: httpClient}
}

func (c *Client) ListTransactions(ctx context.Context, year, month int) ([]core.Transaction, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	var out []core.Transaction
	if err := c.getList(ctx, "/families/"+c.sess.FamilyID+"/transactions", q, &out); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (c *Client) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	var out []core.Budget
	if err := c.getList(ctx, "/families/"+c.sess.FamilyID+"/budgets", nil, &out); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return out, nil
}

func (c *Client) ListBudgetHistory(ctx context.Context, year, month int) ([]core.Budget, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	var out []core.Budget
	if err := c.getList(ctx, "/families/"+c.sess.FamilyID+"/budgets/history", q, &out); err != nil {
		return nil, fmt.Errorf("list budget history: %w", err)
	}
	return out, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]core.TodoTask, error) {
	var out []core.TodoTask
	if err := c.getList(ctx, "/families/"+c.sess.FamilyID+"/tasks", nil, &out); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (c *Client) ListMembers(ctx context.Context) ([]core.Member, error) {
	var out []core.Member
	if err := c.getList(ctx, "/families/"+c.sess.FamilyID+"/members", nil, &out); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return out, nil
}

// getList GETs path and decodes the response into dst, which must be a
// pointer to a slice. Envelope responses are unwrapped via their items field.
func (c *Client) getList(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.sess.APIBaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return decodeList(data, dst)
}

// decodeList handles both bare-array and envelope payloads.
func decodeList(data []byte, dst any) error {
	trimmed := firstNonSpace(data)
	if trimmed == '[' {
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("decode array: %w", err)
		}
		return nil
	}

	var env struct {
		Items json.RawMessage `json:"items"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	raw := env.Items
	if raw == nil {
		raw = env.Data
	}
	if raw == nil {
		return fmt.Errorf("envelope has no items field")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode envelope items: %w", err)
	}
	return nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
