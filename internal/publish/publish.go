// Package publish sends composed posts to the outbound media API.
//
// Publication is a two-step exchange against the Graph API: create a media
// container from a public image URL plus caption, then commit the container.
// Only a successful commit counts as published; callers must not mark a job
// posted on any failure.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"rosterpost/internal/config"
	"rosterpost/internal/logging"
)

// Stages of the two-step exchange, reported on failure.
const (
	StageCreate = "create"
	StageCommit = "commit"
)

// PublishError describes a failed API exchange.
type PublishError struct {
	Stage      string
	HTTPStatus int
	Body       string
	Err        error
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publish %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("publish %s: status %d: %s", e.Stage, e.HTTPStatus, e.Body)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Publisher commits one post to the outbound platform.
type Publisher interface {
	Publish(ctx context.Context, imageURL, caption string) (postID string, err error)
}

type containerResponse struct {
	ID string `json:"id"`
}

// Client is the Graph API publisher.
type Client struct {
	http        *resty.Client
	baseURL     string
	accessToken string
	businessID  string
	logger      *slog.Logger
}

func NewClient(cfg config.Posting, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	http := resty.New()
	http.SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second)
	return &Client{
		http:        http,
		baseURL:     cfg.GraphBaseURL,
		accessToken: cfg.AccessToken,
		businessID:  cfg.BusinessID,
		logger:      logger.With(logging.Component("publish")),
	}
}

// Publish creates a media container for the image and caption, then commits
// it. The returned id is the platform's published-media id.
func (c *Client) Publish(ctx context.Context, imageURL, caption string) (string, error) {
	containerID, err := c.createContainer(ctx, imageURL, caption)
	if err != nil {
		return "", err
	}
	c.logger.Debug("media container created", logging.String("container_id", containerID))

	postID, err := c.commitContainer(ctx, containerID)
	if err != nil {
		return "", err
	}
	c.logger.Info("post published", logging.String("post_id", postID))
	return postID, nil
}

func (c *Client) createContainer(ctx context.Context, imageURL, caption string) (string, error) {
	var result containerResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"image_url":    imageURL,
			"caption":      caption,
			"access_token": c.accessToken,
		}).
		SetResult(&result).
		Post(fmt.Sprintf("%s/%s/media", c.baseURL, c.businessID))
	if err != nil {
		return "", &PublishError{Stage: StageCreate, Err: err}
	}
	if res.StatusCode() >= 400 {
		return "", &PublishError{Stage: StageCreate, HTTPStatus: res.StatusCode(), Body: res.String()}
	}
	if result.ID == "" {
		return "", &PublishError{Stage: StageCreate, HTTPStatus: res.StatusCode(), Body: "response missing container id"}
	}
	return result.ID, nil
}

func (c *Client) commitContainer(ctx context.Context, containerID string) (string, error) {
	var result containerResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"creation_id":  containerID,
			"access_token": c.accessToken,
		}).
		SetResult(&result).
		Post(fmt.Sprintf("%s/%s/media_publish", c.baseURL, c.businessID))
	if err != nil {
		return "", &PublishError{Stage: StageCommit, Err: err}
	}
	if res.StatusCode() >= 400 {
		return "", &PublishError{Stage: StageCommit, HTTPStatus: res.StatusCode(), Body: res.String()}
	}
	if result.ID == "" {
		return "", &PublishError{Stage: StageCommit, HTTPStatus: res.StatusCode(), Body: "response missing media id"}
	}
	return result.ID, nil
}

// ImageURL maps a stored mugshot to its public location: the configured base
// joined with the file's basename. The mugshot directory is assumed to be
// mirrored to static hosting out of band.
func ImageURL(imageBaseURL, mugshotPath string) string {
	base := imageBaseURL
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", trimTrailingSlash(base), url.PathEscape(filepath.Base(mugshotPath)))
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// TestMode logs the post it would have made and succeeds without touching
// the network.
type TestMode struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewTestMode(logger *slog.Logger) *TestMode {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TestMode{
		logger: logger.With(logging.Component("publish")),
		now:    time.Now,
	}
}

func (p *TestMode) Publish(ctx context.Context, imageURL, caption string) (string, error) {
	p.logger.Info("test mode: post suppressed",
		logging.String("image_url", imageURL),
		logging.String("caption", caption))
	return fmt.Sprintf("test-%d", p.now().UnixNano()), nil
}
