package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"oandarates/internal/domain"
)

// Browser-like headers; the labs endpoint rejects default Go user agents.
var defaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
	"Accept":     "application/json, text/plain, */*",
}

type FinancingRatesClient struct {
	http *http.Client
	url  string
}

func (c *FinancingRatesClient) GetFinancingRates(ctx context.Context) (*domain.RatesDocument, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create financing rates request: %w", err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute financing rates request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read financing rates response: %w", err)
	}

	doc, err := domain.DecodeDocument(raw)
	if err != nil {
		return nil, nil, err
	}
	return doc, raw, nil
}

func NewFinancingRatesClient(httpClient *http.Client, url string) *FinancingRatesClient {
	return &FinancingRatesClient{http: httpClient, url: url}
}
