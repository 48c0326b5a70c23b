// Package classifier talks to the external direction classifier. The model
// behind the endpoint is a black box; this client only upholds the feature
// contract: column names and order from the features package, one row per
// candle index, per-row direction probabilities back.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ictdetect/internal/features"
)

// Client posts feature tables to the classifier service.
type Client struct {
	httpClient *http.Client
	url        string
	logger     zerolog.Logger
}

// Prediction is one per-row classifier output.
type Prediction struct {
	Index     int     `json:"index"`
	ProbLong  float64 `json:"prob_long"`
	ProbShort float64 `json:"prob_short"`
}

type request struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
	Indexes []int       `json:"indexes"`
}

type responseBody struct {
	Predictions []Prediction `json:"predictions"`
}

// NewClient creates a classifier client.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     log.With().Str("component", "classifier_client").Logger(),
	}
}

// Predict sends the feature rows and returns per-row probabilities.
func (c *Client) Predict(ctx context.Context, rows []features.Row) ([]Prediction, error) {
	req := request{Columns: features.Columns}
	for _, r := range rows {
		req.Rows = append(req.Rows, r.Values())
		req.Indexes = append(req.Indexes, r.Index)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	c.logger.Debug().Int("rows", len(rows)).Msg("Sending feature table to classifier")

	var body []byte
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}

	var out responseBody
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing classifier response")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if len(out.Predictions) != len(rows) {
		return nil, fmt.Errorf("classifier returned %d predictions for %d rows", len(out.Predictions), len(rows))
	}
	return out.Predictions, nil
}
