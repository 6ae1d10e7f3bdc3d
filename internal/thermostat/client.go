// Package thermostat talks to the thermostat backend over its plain-text HTTP API.
package thermostat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"thermostat_panel/internal/models"
)

// Backend endpoints and form keys.
const (
	PathCurrentTemp = "/cur_temp"
	PathHeatStatus  = "/heat_status"
	PathUpdate      = "/update"

	FieldSampleRate = "sample_rate"
	FieldTempTarget = "temp_target"

	readingSeparator = ";"
	readingFields    = 3
	maxBodyBytes     = 1 << 12 // 4 KB
)

var (
	ErrMalformedReading = errors.New("malformed reading")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the backend at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// CurrentTemp fetches and decodes "<temp>;<humidity>;<furnace_summary>".
func (c *Client) CurrentTemp(ctx context.Context) (models.Readings, error) {
	body, err := c.get(ctx, PathCurrentTemp)
	if err != nil {
		return models.Readings{}, err
	}
	return ParseReadings(body)
}

// HeatStatus fetches the furnace status string, e.g. "ON" or "OFF".
func (c *Client) HeatStatus(ctx context.Context) (string, error) {
	body, err := c.get(ctx, PathHeatStatus)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

// UpdateSampleRate pushes a new poll cadence in seconds.
func (c *Client) UpdateSampleRate(ctx context.Context, seconds int) error {
	return c.postUpdate(ctx, FieldSampleRate, seconds)
}

// UpdateTarget pushes a new target temperature. The response body is ignored.
func (c *Client) UpdateTarget(ctx context.Context, target int) error {
	return c.postUpdate(ctx, FieldTempTarget, target)
}

// ParseReadings splits a /cur_temp body into its three ordered fields.
// The summary is the remainder, so it may itself contain separators.
func ParseReadings(body string) (models.Readings, error) {
	parts := strings.SplitN(strings.TrimSpace(body), readingSeparator, readingFields)
	if len(parts) != readingFields {
		return models.Readings{}, fmt.Errorf("%w: want %d fields, got %q", ErrMalformedReading, readingFields, body)
	}
	return models.Readings{
		Temperature:    strings.TrimSpace(parts[0]),
		Humidity:       strings.TrimSpace(parts[1]),
		FurnaceSummary: strings.TrimSpace(parts[2]),
	}, nil
}

func (c *Client) get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("build GET %s: %w", path, err)
	}
	return c.do(req, path)
}

func (c *Client) postUpdate(ctx context.Context, field string, value int) error {
	form := url.Values{}
	form.Set(field, strconv.Itoa(value))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathUpdate, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build POST %s: %w", PathUpdate, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err = c.do(req, PathUpdate)
	return err
}

func (c *Client) do(req *http.Request, path string) (string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, req.Method, path, resp.StatusCode)
	}
	return string(b), nil
}
