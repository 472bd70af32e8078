// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

// Package remote implements the remote backing-store transports: a
// PostgREST-style HTTP client with a websocket change feed, and an
// alternative direct-Postgres backend.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/crohrer/booksync/internal/config"
	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

const restPrefix = "/rest/v1/"

// TokenFunc supplies the current access token for outbound requests.
// The session provider owns token lifecycle; the client only reads it.
type TokenFunc func() string

// Client is the REST implementation of the remote store, speaking the
// PostgREST conventions of the backing service. Change-feed subscriptions are
// delegated to an embedded websocket Feed.
type Client struct {
	http   *resty.Client
	apiKey string
	token  TokenFunc
	feed   *Feed
	log    *logger.Logger
}

func NewClient(cfg config.Remote, token TokenFunc, log *logger.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	realtimeURL := cfg.RealtimeURL
	if realtimeURL == "" {
		realtimeURL = deriveRealtimeURL(cfg.BaseURL)
	}

	return &Client{
		http:   cli,
		apiKey: cfg.APIKey,
		token:  token,
		feed:   NewFeed(realtimeURL, token, log),
		log:    log,
	}
}

// UpsertAuthors writes the given author records to the remote "Autor" table,
// creating or replacing by id.
func (c *Client) UpsertAuthors(ctx context.Context, recs []models.AuthorRemote) error {
	return c.upsert(ctx, models.TableAutor, recs)
}

// UpsertBooks writes the given book records to the remote "Buch" table,
// creating or replacing by id.
func (c *Client) UpsertBooks(ctx context.Context, recs []models.BookRemote) error {
	return c.upsert(ctx, models.TableBuch, recs)
}

// AuthorsSince returns every remote author with updated_at >= t.
func (c *Client) AuthorsSince(ctx context.Context, t time.Time) ([]models.AuthorRemote, error) {
	var recs []models.AuthorRemote
	if err := c.selectSince(ctx, models.TableAutor, t, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// BooksSince returns every remote book with updated_at >= t.
func (c *Client) BooksSince(ctx context.Context, t time.Time) ([]models.BookRemote, error) {
	var recs []models.BookRemote
	if err := c.selectSince(ctx, models.TableBuch, t, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// ProbeUpdatedAt fetches only the updated_at column of a single remote
// record. Returns ErrNotFound when the id does not exist remotely.
func (c *Client) ProbeUpdatedAt(ctx context.Context, table, id string) (time.Time, error) {
	var resp *resty.Response
	err := c.withRetry(ctx, func() error {
		var reqErr error
		resp, reqErr = c.req(ctx).
			SetQueryParam("id", "eq."+id).
			SetQueryParam("select", "updated_at").
			Get(restPrefix + table)
		return c.check(resp, reqErr)
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("probe %s/%s: %w", table, id, err)
	}

	var rows []struct {
		UpdatedAt time.Time `json:"updated_at"`
	}
	if err = json.Unmarshal(resp.Body(), &rows); err != nil {
		return time.Time{}, fmt.Errorf("probe %s/%s: %w: %w", table, id, ErrDecode, err)
	}
	if len(rows) == 0 {
		return time.Time{}, ErrNotFound
	}

	return rows[0].UpdatedAt, nil
}

// Subscribe opens the change-feed subscription. There is only ever one
// channel per client; a repeated call tears the previous one down first.
func (c *Client) Subscribe(ctx context.Context) (<-chan models.ChangeEvent, error) {
	return c.feed.Subscribe(ctx)
}

// Unsubscribe tears down the change-feed connection without touching the
// HTTP transport. Idempotent.
func (c *Client) Unsubscribe() error {
	return c.feed.Close()
}

// Close releases the client entirely. For the REST transport that is the
// change-feed connection; idle HTTP connections die on their own.
func (c *Client) Close() error {
	return c.feed.Close()
}

func (c *Client) upsert(ctx context.Context, table string, payload any) error {
	err := c.withRetry(ctx, func() error {
		resp, reqErr := c.req(ctx).
			SetHeader("Prefer", "resolution=merge-duplicates").
			SetBody(payload).
			Post(restPrefix + table)
		return c.check(resp, reqErr)
	})
	if err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}

	return nil
}

func (c *Client) selectSince(ctx context.Context, table string, t time.Time, out any) error {
	var resp *resty.Response
	err := c.withRetry(ctx, func() error {
		var reqErr error
		resp, reqErr = c.req(ctx).
			SetQueryParam("updated_at", "gte."+t.UTC().Format(time.RFC3339Nano)).
			SetQueryParam("order", "updated_at.asc").
			Get(restPrefix + table)
		return c.check(resp, reqErr)
	})
	if err != nil {
		return fmt.Errorf("select %s since %s: %w", table, t.UTC().Format(time.RFC3339Nano), err)
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("select %s: %w: %w", table, ErrDecode, err)
	}

	return nil
}

func (c *Client) req(ctx context.Context) *resty.Request {
	r := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if c.apiKey != "" {
		r.SetHeader("apikey", c.apiKey)
	}
	if token := c.token(); token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return r
}

// check maps a finished request to the package error taxonomy. Server-side
// (5xx) failures are marked retryable; client-side (4xx) failures are not.
func (c *Client) check(resp *resty.Response, reqErr error) error {
	if reqErr != nil {
		return retry.RetryableError(fmt.Errorf("%w: %w", ErrTransport, reqErr))
	}

	code := resp.StatusCode()
	switch {
	case code >= http.StatusInternalServerError:
		return retry.RetryableError(fmt.Errorf("%w: status %d", ErrTransport, code))
	case code >= http.StatusBadRequest:
		return fmt.Errorf("%w: status %d", ErrTransport, code)
	}

	return nil
}

func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(300*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return fn()
	})
}

// deriveRealtimeURL turns an http(s) base URL into the matching ws(s)
// realtime endpoint.
func deriveRealtimeURL(baseURL string) string {
	url := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url + "/realtime/v1"
}
