package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"TradeCraft/internal/model"
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("API error: %d %s", e.Code, e.Status)
}

// APIFetcher implements Fetcher against the analysis backend's REST API.
type APIFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewAPIFetcher creates a new fetcher with optional proxy support.
func NewAPIFetcher(baseURL, proxyURL string) *APIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &APIFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *APIFetcher) Name() string { return "api" }

// Analyze calls GET /api/v1/analyze.
func (f *APIFetcher) Analyze(ctx context.Context, symbol string) (*model.AnalyzeResult, error) {
	var res model.AnalyzeResult
	if err := f.get(ctx, "/api/v1/analyze", url.Values{"symbol": {symbol}}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// AdvancedAnalyze calls GET /api/v1/advanced-analyze.
func (f *APIFetcher) AdvancedAnalyze(ctx context.Context, symbol string) (*model.AdvancedAnalysis, error) {
	var res model.AdvancedAnalysis
	if err := f.get(ctx, "/api/v1/advanced-analyze", url.Values{"symbol": {symbol}}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Checkpoints calls GET /api/v1/checkpoints.
func (f *APIFetcher) Checkpoints(ctx context.Context, symbol, date string) (*model.CheckpointBoard, error) {
	q := url.Values{"symbol": {symbol}}
	if date != "" {
		q.Set("date", date)
	}
	var res model.CheckpointBoard
	if err := f.get(ctx, "/api/v1/checkpoints", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (f *APIFetcher) get(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := f.BaseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var errBody struct {
			Detail any `json:"detail"`
		}
		se := &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
		if json.Unmarshal(body, &errBody) == nil && errBody.Detail != nil {
			if s, ok := errBody.Detail.(string); ok {
				se.Detail = s
			} else if raw, err := json.Marshal(errBody.Detail); err == nil {
				se.Detail = string(raw)
			}
		}
		return se
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
