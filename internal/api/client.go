// Package api implements the typed client for the lunch ledger service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/Itecs-company/Obed-micro/internal/model"
)

// ExportFormat selects the artifact type produced by the service.
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatPDF   ExportFormat = "pdf"
)

// Ext returns the file extension for the format.
func (f ExportFormat) Ext() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "xlsx"
}

// ParseExportFormat validates a user-supplied format tag.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatExcel, FormatPDF:
		return ExportFormat(s), nil
	}
	return "", fmt.Errorf("unknown export format %q (want excel or pdf)", s)
}

// ListResponse is the ledger read envelope: the records in range plus the
// server-computed aggregates and the current lunch price.
type ListResponse struct {
	Records    []model.Record `json:"employees"`
	LunchPrice float64        `json:"lunch_price"`
	model.Totals
}

// SettingsResponse is the shared settings envelope.
type SettingsResponse struct {
	LunchPrice float64 `json:"lunch_price"`
}

// Client is an authenticated lunch ledger API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a ledger client that sends the given bearer token on
// every request.
func NewClient(ctx context.Context, baseURL string, tok *oauth2.Token, timeout time.Duration) *Client {
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	hc.Timeout = timeout
	return &Client{baseURL: baseURL, httpClient: hc}
}

// apiError carries the HTTP status and the server's detail message.
type apiError struct {
	Status int
	Detail string
}

func (e *apiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ledger API error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("ledger API error %d", e.Status)
}

// do issues one request and returns the response body on 2xx.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger API request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &detail)
		return nil, &apiError{Status: resp.StatusCode, Detail: detail.Detail}
	}
	return data, nil
}

// doJSON marshals body (when non-nil) and unmarshals the response into out
// (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	data, err := c.do(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding ledger response: %w", err)
	}
	return nil
}

// rangeQuery serializes optional range bounds as ISO dates, omitting
// unset bounds entirely.
func rangeQuery(rng model.DateRange) url.Values {
	q := url.Values{}
	if rng.Start != nil {
		q.Set("start_date", rng.Start.String())
	}
	if rng.End != nil {
		q.Set("end_date", rng.End.String())
	}
	return q
}

// ListRecords fetches the records in the given range along with the
// server-computed totals and the current lunch price.
func (c *Client) ListRecords(ctx context.Context, rng model.DateRange) (ListResponse, error) {
	var out ListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/employees", rangeQuery(rng), nil, &out); err != nil {
		return ListResponse{}, err
	}
	return out, nil
}

// CreateRecord posts a full draft; the server assigns the id.
func (c *Client) CreateRecord(ctx context.Context, draft model.Draft) (model.Record, error) {
	var out model.Record
	if err := c.doJSON(ctx, http.MethodPost, "/employees", nil, draft, &out); err != nil {
		return model.Record{}, err
	}
	return out, nil
}

// UpdateRecord submits a partial field diff for one record.
func (c *Client) UpdateRecord(ctx context.Context, id int64, patch map[string]any) (model.Record, error) {
	var out model.Record
	path := "/employees/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, patch, &out); err != nil {
		return model.Record{}, err
	}
	return out, nil
}

// DeleteRecord removes a record permanently.
func (c *Client) DeleteRecord(ctx context.Context, id int64) error {
	path := "/employees/" + strconv.FormatInt(id, 10)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ImportRecords uploads a spreadsheet as one multipart transaction and
// returns the number of rows the server accepted. Per-row failures are
// the server's concern; it skips bad rows silently.
func (c *Client) ImportRecords(ctx context.Context, filename string, file io.Reader) (int, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return 0, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return 0, fmt.Errorf("finalizing multipart body: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/employees/import", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return 0, err
	}
	var out struct {
		Imported int `json:"imported"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("decoding import response: %w", err)
	}
	return out.Imported, nil
}

// ExportRecords requests a binary artifact for the given format, price
// visibility and range. Unset bounds mean "all time".
func (c *Client) ExportRecords(ctx context.Context, format ExportFormat, includePrice bool, rng model.DateRange) ([]byte, error) {
	q := rangeQuery(rng)
	q.Set("include_price", strconv.FormatBool(includePrice))
	return c.do(ctx, http.MethodGet, "/employees/export/"+string(format), q, nil, "")
}

// Settings reads the shared lunch price.
func (c *Client) Settings(ctx context.Context) (SettingsResponse, error) {
	var out SettingsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/settings", nil, nil, &out); err != nil {
		return SettingsResponse{}, err
	}
	return out, nil
}

// UpdateSettings writes the shared lunch price and returns the
// server-confirmed value.
func (c *Client) UpdateSettings(ctx context.Context, price float64) (SettingsResponse, error) {
	body := map[string]float64{"lunch_price": price}
	var out SettingsResponse
	if err := c.doJSON(ctx, http.MethodPut, "/settings", nil, body, &out); err != nil {
		return SettingsResponse{}, err
	}
	return out, nil
}
