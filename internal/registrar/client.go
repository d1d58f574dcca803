// Package registrar provides the fetch/mutate capability the
// reconciliation core consumes: an HTTP client for a registrar-style
// records API, and a Cloudflare-backed adapter with the same surface.
// Reads go through an injected TTL cache; any mutation invalidates the
// domain's cached entries before returning.
package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
	"github.com/tempusbreve/dns-sync-helper/internal/ttlcache"
)

type Client struct {
	baseURL       string
	token         string
	httpClient    *http.Client
	cache         *ttlcache.Cache[[]dnsrec.Record]
	cacheTTL      time.Duration
	maxRetries    uint64
	retryInterval time.Duration
	log           *logrus.Entry
}

func WithBaseURL(u string) func(*Client) {
	return func(c *Client) { c.baseURL = u }
}

func WithToken(token string) func(*Client) {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables read-through caching of record fetches. A zero ttl
// leaves caching disabled.
func WithCache(cache *ttlcache.Cache[[]dnsrec.Record], ttl time.Duration) func(*Client) {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func WithRetry(maxRetries uint64, interval time.Duration) func(*Client) {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryInterval = interval
	}
}

func WithLogger(log *logrus.Entry) func(*Client) {
	return func(c *Client) { c.log = log }
}

func NewClient(options ...func(*Client)) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		maxRetries:    3,
		retryInterval: 500 * time.Millisecond,
		log:           logrus.NewEntry(logrus.StandardLogger()),
	}

	for _, fn := range options {
		fn(c)
	}

	return c
}

func recordsKey(domain string) string { return "dns:" + domain + ":records" }

func (c *Client) cacheEnabled() bool { return c.cache != nil && c.cacheTTL > 0 }

// Records fetches the domain's records, consulting the cache first.
// The returned slice is a snapshot; later mutations do not change it.
func (c *Client) Records(ctx context.Context, domain string) ([]dnsrec.Record, error) {
	if c.cacheEnabled() {
		if records, ok := c.cache.Get(recordsKey(domain)); ok {
			c.log.WithField("domain", domain).Debug("records served from cache")
			// Hand out a copy so in-place edits by the caller cannot
			// corrupt the cached snapshot.
			return slices.Clone(records), nil
		}
	}

	var payload struct {
		Records []dnsrec.Record `json:"records"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/domains/"+domain+"/records", nil, &payload); err != nil {
		return nil, fmt.Errorf("listing records for %s: %w", domain, err)
	}

	for i := range payload.Records {
		payload.Records[i].Type = dnsrec.ParseType(string(payload.Records[i].Type))
	}

	if c.cacheEnabled() {
		c.cache.SetTTL(recordsKey(domain), slices.Clone(payload.Records), c.cacheTTL)
	}
	return payload.Records, nil
}

// SetRecords writes a record batch. With force set the registrar
// overwrites colliding records instead of rejecting them.
func (c *Client) SetRecords(ctx context.Context, domain string, records []dnsrec.Record, force bool) error {
	body := struct {
		Records []dnsrec.Record `json:"records"`
		Force   bool            `json:"force,omitempty"`
	}{Records: records, Force: force}

	if err := c.do(ctx, http.MethodPost, "/v1/domains/"+domain+"/records:set", body, nil); err != nil {
		return fmt.Errorf("setting records for %s: %w", domain, err)
	}

	c.invalidate(domain)
	c.log.WithFields(logrus.Fields{"domain": domain, "records": len(records), "force": force}).Info("records written")
	return nil
}

// DeleteRecords deletes records by full body; the registrar does not
// accept bare (name, type) keys.
func (c *Client) DeleteRecords(ctx context.Context, domain string, records []dnsrec.Record) error {
	body := struct {
		Records []dnsrec.Record `json:"records"`
	}{Records: records}

	if err := c.do(ctx, http.MethodPost, "/v1/domains/"+domain+"/records:delete", body, nil); err != nil {
		return fmt.Errorf("deleting records for %s: %w", domain, err)
	}

	c.invalidate(domain)
	c.log.WithFields(logrus.Fields{"domain": domain, "records": len(records)}).Info("records deleted")
	return nil
}

func (c *Client) invalidate(domain string) {
	if c.cache == nil {
		return
	}
	if n := c.cache.Invalidate("dns:" + domain); n > 0 {
		c.log.WithFields(logrus.Fields{"domain": domain, "entries": n}).Debug("cache invalidated")
	}
}

// do issues one request, retrying transient failures with bounded
// exponential backoff. Client errors are never retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	attempt := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			serr := &StatusError{Code: resp.StatusCode, Body: string(raw)}
			if transient(resp.StatusCode) {
				c.log.WithFields(logrus.Fields{"status": resp.StatusCode, "path": path}).Warn("transient registrar error")
				return serr
			}
			return backoff.Permanent(serr)
		}

		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
			}
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
}
