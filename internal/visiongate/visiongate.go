// Package visiongate screens mugshots before publication. The scoring model
// runs out of process behind an HTTP endpoint; when no endpoint is
// configured every image is approved so the pipeline never stalls on an
// optional dependency.
package visiongate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"rosterpost/internal/config"
	"rosterpost/internal/logging"
)

// Assessment is the gate's verdict on one image.
type Assessment struct {
	Approved bool    `json:"approved"`
	Reason   string  `json:"reason"`
	Score    float64 `json:"score"`
}

// Gate decides whether a mugshot is publishable.
type Gate interface {
	Assess(ctx context.Context, imagePath string) (Assessment, error)
}

// Noop approves everything. Used when the gate is disabled or unreachable
// at configuration time.
type Noop struct{}

func (Noop) Assess(ctx context.Context, imagePath string) (Assessment, error) {
	return Assessment{Approved: true, Reason: "vision gate disabled"}, nil
}

// Client calls an external visual question-answering endpoint. The image is
// uploaded as a multipart file; the endpoint answers with an Assessment.
type Client struct {
	http     *resty.Client
	endpoint string
	logger   *slog.Logger
}

func NewClient(cfg config.Vision, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	http := resty.New()
	http.SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second)
	return &Client{
		http:     http,
		endpoint: cfg.Endpoint,
		logger:   logger.With(logging.Component("visiongate")),
	}
}

// FromConfig returns the configured gate: the HTTP client when enabled,
// Noop otherwise.
func FromConfig(cfg config.Vision, logger *slog.Logger) Gate {
	if !cfg.Enabled {
		return Noop{}
	}
	return NewClient(cfg, logger)
}

func (c *Client) Assess(ctx context.Context, imagePath string) (Assessment, error) {
	var assessment Assessment
	res, err := c.http.R().
		SetContext(ctx).
		SetFile("image", imagePath).
		SetResult(&assessment).
		Post(c.endpoint)
	if err != nil {
		return Assessment{}, fmt.Errorf("vision gate request: %w", err)
	}
	if res.StatusCode() >= 400 {
		return Assessment{}, fmt.Errorf("vision gate request: status %d: %s", res.StatusCode(), res.String())
	}
	c.logger.Debug("image assessed",
		logging.Bool("approved", assessment.Approved),
		logging.String("reason", assessment.Reason),
		logging.Float64("score", assessment.Score))
	return assessment, nil
}
