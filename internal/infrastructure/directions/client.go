package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/route-service/internal/config"
	"github.com/route-service/internal/domain"
	"github.com/route-service/internal/domain/repository"
)

const maxErrorBody = 512

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает клиент Directions API (Google-совместимый)
func NewClient(cfg *config.DirectionsConfig, logger *zap.Logger) repository.DirectionsRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

func formatPoint(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// GetDrivingRoute запрашивает маршрут на автомобиле через точки в заданном порядке.
// Промежуточные точки передаются как остановки, без optimize:true.
func (c *client) GetDrivingRoute(
	ctx context.Context,
	origin, destination domain.Coordinate,
	waypoints []domain.Coordinate,
) (*domain.DirectionsResponse, error) {
	params := url.Values{}
	params.Set("origin", formatPoint(origin))
	params.Set("destination", formatPoint(destination))
	params.Set("mode", "driving")
	if len(waypoints) > 0 {
		points := make([]string, len(waypoints))
		for i, w := range waypoints {
			points[i] = formatPoint(w)
		}
		params.Set("waypoints", strings.Join(points, "|"))
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	endpoint := c.baseURL + "/directions/json?" + params.Encode()

	c.logger.Debug("Calling Directions API", zap.Int("waypoints", len(waypoints)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("directions API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var dirResp domain.DirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dirResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if dirResp.Status != domain.DirectionsStatusOK {
		return nil, fmt.Errorf("directions API returned status %s: %s", dirResp.Status, dirResp.ErrorMessage)
	}
	if len(dirResp.Routes) == 0 {
		return nil, fmt.Errorf("directions API returned no routes")
	}

	return &dirResp, nil
}
