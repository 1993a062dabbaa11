// Package primary talks to the trainer REST API.
package primary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/pkg/config"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/middleware/requestid"
	"github.com/noah-isme/trainer-console/pkg/session"
)

const (
	dashboardPath   = "/api/trainer/v1/dashboard/"
	coursesPath     = "/api/trainer/v1/course/"
	unitsPath       = "/api/units/"
	enrollmentsPath = "/api/enrollments/"
)

// Client is a thin, typed wrapper over the REST API. Every call takes the session explicitly.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New builds a client for cfg.BaseURL. A zero timeout leaves requests bounded only by their context.
func New(cfg config.PrimaryConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}
	return &Client{http: httpClient, logger: logger}
}

func (c *Client) request(ctx context.Context, sess session.Session) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if sess.Authenticated() {
		req.SetHeader("Authorization", "Token "+sess.Token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.SetHeader(requestid.HeaderKey, id)
	}
	return req
}

// do executes the call and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, sess session.Session, method, path string, body interface{}) ([]byte, error) {
	req := c.request(ctx, sess)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("primary request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, appErrors.Network(err)
	}
	if !resp.IsSuccess() {
		c.logger.Debug("primary request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, appErrors.FromHTTPStatus(resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func (c *Client) getJSON(ctx context.Context, sess session.Session, path string, out interface{}) error {
	raw, err := c.do(ctx, sess, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeJSON(raw, out)
}

func (c *Client) sendJSON(ctx context.Context, sess session.Session, method, path string, body, out interface{}) error {
	raw, err := c.do(ctx, sess, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeJSON(raw, out)
}

func decodeJSON(raw []byte, out interface{}) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "primary backend returned malformed JSON")
	}
	return nil
}

// decodeList accepts either a bare array or a paginated {"results": [...]} object.
func decodeList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := decodeJSON(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var page struct {
		Results []T `json:"results"`
	}
	if err := decodeJSON(trimmed, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []T{}, nil
	}
	return page.Results, nil
}

func listJSON[T any](ctx context.Context, c *Client, sess session.Session, path string) ([]T, error) {
	raw, err := c.do(ctx, sess, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

func coursePath(id string, action string) string {
	p := coursesPath + url.PathEscape(id) + "/"
	if action != "" {
		p += action + "/"
	}
	return p
}

func unitPath(id string) string {
	return fmt.Sprintf("%s%s/", unitsPath, url.PathEscape(id))
}
