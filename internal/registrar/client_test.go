package registrar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
	"github.com/tempusbreve/dns-sync-helper/internal/ttlcache"
)

func newTestClient(serverURL string, options ...func(*Client)) *Client {
	base := []func(*Client){
		WithBaseURL(serverURL),
		WithToken("test-token"),
		WithRetry(2, time.Millisecond),
	}
	return NewClient(append(base, options...)...)
}

func TestRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.URL.Path != "/v1/domains/example.com/records" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"records":[
			{"type":"a","name":"@","address":"1.2.3.4","ttl":300},
			{"type":"MX","name":"@","preference":10,"exchange":"mail.example.com"}
		]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	records, err := c.Records(context.Background(), "example.com")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Type tags are normalized to uppercase on the way in.
	assert.Equal(t, dnsrec.TypeA, records[0].Type)
	assert.Equal(t, "1.2.3.4", records[0].Address)
	require.NotNil(t, records[1].Preference)
	assert.Equal(t, 10, *records[1].Preference)
}

func TestRecordsServedFromCacheUntilMutation(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			hits++
			w.Write([]byte(`{"records":[{"type":"A","name":"@","address":"1.2.3.4"}]}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cache := ttlcache.New[[]dnsrec.Record](time.Minute)
	c := newTestClient(server.URL, WithCache(cache, time.Minute))
	ctx := context.Background()

	_, err := c.Records(ctx, "example.com")
	require.NoError(t, err)
	_, err = c.Records(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	// Mutating drops the domain's cached entries; the next read goes
	// back to the registrar.
	require.NoError(t, c.SetRecords(ctx, "example.com", []dnsrec.Record{
		{Type: dnsrec.TypeA, Name: "@", Address: "5.6.7.8"},
	}, true))

	_, err = c.Records(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestCachedRecordsAreIsolatedFromCallers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[{"type":"A","name":"@","address":"1.2.3.4"}]}`))
	}))
	defer server.Close()

	cache := ttlcache.New[[]dnsrec.Record](time.Minute)
	c := newTestClient(server.URL, WithCache(cache, time.Minute))
	ctx := context.Background()

	first, err := c.Records(ctx, "example.com")
	require.NoError(t, err)
	first[0].Address = "6.6.6.6"

	second, err := c.Records(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "1.2.3.4", second[0].Address)

	// Editing a cache-served slice must not bleed into later reads
	// either.
	second[0].Address = "7.7.7.7"
	third, err := c.Records(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", third[0].Address)
}

func TestCacheInvalidationIsScopedToDomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[]}`))
	}))
	defer server.Close()

	cache := ttlcache.New[[]dnsrec.Record](time.Minute)
	cache.Set("dns:other.com:records", []dnsrec.Record{{Type: dnsrec.TypeA, Name: "@"}})

	c := newTestClient(server.URL, WithCache(cache, time.Minute))
	require.NoError(t, c.DeleteRecords(context.Background(), "example.com", []dnsrec.Record{
		{Type: dnsrec.TypeA, Name: "@", Address: "1.2.3.4"},
	}))

	_, ok := cache.Get("dns:other.com:records")
	assert.True(t, ok)
}

func TestZeroCacheTTLDisablesCaching(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"records":[]}`))
	}))
	defer server.Close()

	cache := ttlcache.New[[]dnsrec.Record](time.Minute)
	c := newTestClient(server.URL, WithCache(cache, 0))
	ctx := context.Background()

	_, err := c.Records(ctx, "example.com")
	require.NoError(t, err)
	_, err = c.Records(ctx, "example.com")
	require.NoError(t, err)

	assert.Equal(t, 2, hits)
	assert.Equal(t, 0, cache.Len())
}

func TestTransientErrorIsRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"records":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Records(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestClientErrorIsNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"domain not found"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Records(context.Background(), "missing.com")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	// Status and raw body ride along for the caller to inspect.
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.Code)
	assert.Contains(t, serr.Body, "domain not found")
}

func TestSetRecordsPayload(t *testing.T) {
	var got struct {
		Records []dnsrec.Record `json:"records"`
		Force   bool            `json:"force"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/domains/example.com/records:set" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	err := c.SetRecords(context.Background(), "example.com", []dnsrec.Record{
		{Type: dnsrec.TypeA, Name: "@", Address: "1.2.3.4"},
	}, true)
	require.NoError(t, err)

	require.Len(t, got.Records, 1)
	assert.Equal(t, "1.2.3.4", got.Records[0].Address)
	assert.True(t, got.Force)
}
