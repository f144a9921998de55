// Package rest is the gateway driver for a PostgREST-compatible HTTP endpoint
// such as a hosted Supabase project.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/pkg/logger"
)

// Client talks to the table store over HTTP
type Client struct {
	// Base URL of the project, without the /rest/v1 suffix
	BaseURL string

	// Anonymous or service API key
	APIKey string

	client *http.Client
	log    *logger.Logger
}

// NewClient creates a new PostgREST client
func NewClient(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// apiError is the PostgREST error body
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (c *Client) tableURL(table domain.Table, params url.Values) string {
	u := c.BaseURL + "/rest/v1/" + string(table)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case *time.Time:
		if t == nil {
			return "null"
		}
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

func filterParams(params url.Values, filters []gateway.Filter) url.Values {
	if params == nil {
		params = url.Values{}
	}
	for _, f := range filters {
		op := string(f.Op)
		if f.Op == gateway.OpEq && f.Value == nil {
			params.Add(f.Column, "is.null")
			continue
		}
		params.Add(f.Column, op+"."+formatValue(f.Value))
	}
	return params
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends the request and maps error statuses. The caller closes the body.
func (c *Client) do(req *http.Request, op string, table domain.Table) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.NewGatewayError(op, string(table), err)
	}
	if resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	var apiErr apiError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &apiErr)

	if resp.StatusCode == http.StatusConflict || apiErr.Code == "23505" {
		return nil, fmt.Errorf("%s %s: %w", op, table, domain.ErrDuplicate)
	}

	msg := apiErr.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	c.log.Errorw("Table store request failed",
		"op", op, "table", table, "status", resp.StatusCode, "code", apiErr.Code, "message", msg)
	return nil, domain.NewGatewayError(op, string(table), fmt.Errorf("status %d: %s", resp.StatusCode, msg))
}

// Select выполняет GET с фильтрами, сортировкой и проекцией
func (c *Client) Select(ctx context.Context, table domain.Table, q gateway.Query) ([]gateway.Row, error) {
	if err := gateway.ValidateQuery(table, q); err != nil {
		return nil, err
	}

	params := url.Values{}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	} else {
		params.Set("select", "*")
	}
	params = filterParams(params, q.Filters)
	if q.Order != nil {
		dir := "asc"
		if q.Order.Descending {
			dir = "desc"
		}
		params.Set("order", q.Order.Column+"."+dir+".nullslast")
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.tableURL(table, params), nil)
	if err != nil {
		return nil, domain.NewGatewayError("select", string(table), err)
	}
	resp, err := c.do(req, "select", table)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	rows, err := gateway.DecodeRows(dec)
	if err != nil {
		return nil, domain.NewGatewayError("select", string(table), fmt.Errorf("failed to decode rows: %w", err))
	}
	return rows, nil
}

// Count выполняет HEAD с Prefer: count=exact и читает итог из Content-Range
func (c *Client) Count(ctx context.Context, table domain.Table, filters ...gateway.Filter) (int64, error) {
	if err := gateway.ValidateTable(table); err != nil {
		return 0, err
	}
	if err := gateway.ValidateFilters(filters); err != nil {
		return 0, err
	}

	params := filterParams(url.Values{"select": {"*"}}, filters)
	req, err := c.newRequest(ctx, http.MethodHead, c.tableURL(table, params), nil)
	if err != nil {
		return 0, domain.NewGatewayError("count", string(table), err)
	}
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.do(req, "count", table)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := parseContentRange(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, domain.NewGatewayError("count", string(table), err)
	}
	return n, nil
}

// parseContentRange extracts the total from "0-24/42" or "*/0"
func parseContentRange(h string) (int64, error) {
	i := strings.LastIndexByte(h, '/')
	if i < 0 || i == len(h)-1 {
		return 0, fmt.Errorf("malformed Content-Range %q", h)
	}
	total := h[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("no exact count in Content-Range %q", h)
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed Content-Range %q: %w", h, err)
	}
	return n, nil
}

// Insert выполняет POST одной строки
func (c *Client) Insert(ctx context.Context, table domain.Table, rec gateway.Record) error {
	if err := gateway.ValidateTable(table); err != nil {
		return err
	}
	if err := gateway.ValidateRecord(rec); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.tableURL(table, nil), rec)
	if err != nil {
		return domain.NewGatewayError("insert", string(table), err)
	}
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.do(req, "insert", table)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Update выполняет PATCH по фильтрам
func (c *Client) Update(ctx context.Context, table domain.Table, patch gateway.Record, filters ...gateway.Filter) error {
	if err := gateway.ValidateMutation(table, filters); err != nil {
		return err
	}
	if err := gateway.ValidateRecord(patch); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPatch, c.tableURL(table, filterParams(nil, filters)), patch)
	if err != nil {
		return domain.NewGatewayError("update", string(table), err)
	}
	return c.mutate(req, "update", table)
}

// Delete выполняет DELETE по фильтрам
func (c *Client) Delete(ctx context.Context, table domain.Table, filters ...gateway.Filter) error {
	if err := gateway.ValidateMutation(table, filters); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodDelete, c.tableURL(table, filterParams(nil, filters)), nil)
	if err != nil {
		return domain.NewGatewayError("delete", string(table), err)
	}
	return c.mutate(req, "delete", table)
}

// mutate asks for the affected rows back so a filter matching nothing is
// reported as not found.
func (c *Client) mutate(req *http.Request, op string, table domain.Table) error {
	req.Header.Set("Prefer", "return=representation")
	resp, err := c.do(req, op, table)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var affected []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&affected); err != nil {
		return domain.NewGatewayError(op, string(table), fmt.Errorf("failed to decode response: %w", err))
	}
	if len(affected) == 0 {
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrNotFound)
	}
	return nil
}

var _ gateway.Gateway = (*Client)(nil)
