package registrar

import (
	"testing"

	"github.com/cloudflare/cloudflare-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

func TestRelName(t *testing.T) {
	assert.Equal(t, "@", relName("example.com", "example.com"))
	assert.Equal(t, "@", relName("Example.COM.", "example.com"))
	assert.Equal(t, "www", relName("www.example.com", "example.com"))
	assert.Equal(t, "_sip._tcp", relName("_sip._tcp.example.com", "example.com"))
}

func TestAbsName(t *testing.T) {
	assert.Equal(t, "example.com", absName("@", "example.com"))
	assert.Equal(t, "example.com", absName("", "example.com"))
	assert.Equal(t, "www.example.com", absName("www", "example.com"))
	assert.Equal(t, "www.example.com", absName("www.example.com", "example.com"))
}

func TestFromCF(t *testing.T) {
	priority := uint16(10)
	rec := fromCF("example.com", &cloudflare.DNSRecord{
		Type:     "MX",
		Name:     "example.com",
		Content:  "mail.example.com",
		Priority: &priority,
		TTL:      3600,
	})

	assert.Equal(t, dnsrec.TypeMX, rec.Type)
	assert.Equal(t, "@", rec.Name)
	assert.Equal(t, "mail.example.com", rec.Exchange)
	require.NotNil(t, rec.Preference)
	assert.Equal(t, 10, *rec.Preference)
	assert.Equal(t, 3600, rec.TTL)
}

func TestFromCFSRVData(t *testing.T) {
	rec := fromCF("example.com", &cloudflare.DNSRecord{
		Type: "SRV",
		Name: "_sip._tcp.example.com",
		Data: map[string]any{
			"service":  "_sip",
			"proto":    "_tcp",
			"priority": float64(10),
			"weight":   float64(20),
			"port":     float64(5060),
			"target":   "sip.example.com",
		},
	})

	assert.Equal(t, "_sip._tcp", rec.Name)
	assert.Equal(t, "_sip:_tcp:10:20:5060:sip.example.com", dnsrec.CanonicalValue(rec))
}

func TestToCFParams(t *testing.T) {
	params, err := toCFParams("example.com", dnsrec.Record{
		Type: dnsrec.TypeCNAME, Name: "www", Target: "app.example.dev", TTL: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, "CNAME", params.Type)
	assert.Equal(t, "www.example.com", params.Name)
	assert.Equal(t, "app.example.dev", params.Content)

	params, err = toCFParams("example.com", dnsrec.Record{
		Type: dnsrec.TypeTXT, Name: "@", Text: "v=spf1 -all",
	})
	require.NoError(t, err)
	assert.Equal(t, `"v=spf1 -all"`, params.Content)

	params, err = toCFParams("example.com", dnsrec.Record{
		Type: dnsrec.TypeMX, Name: "@", Preference: dnsrec.Int(10), Exchange: "mail.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com", params.Content)
	require.NotNil(t, params.Priority)
	assert.Equal(t, uint16(10), *params.Priority)

	_, err = toCFParams("example.com", dnsrec.Record{Type: dnsrec.TypeTLSA, Name: "@"})
	assert.Error(t, err)
}

func TestFromCFToCFRoundTripMatchesFingerprint(t *testing.T) {
	orig := dnsrec.Record{Type: dnsrec.TypeA, Name: "www", Address: "1.2.3.4", TTL: 300}

	params, err := toCFParams("example.com", orig)
	require.NoError(t, err)

	back := fromCF("example.com", &cloudflare.DNSRecord{
		Type:    params.Type,
		Name:    params.Name,
		Content: params.Content,
		TTL:     params.TTL,
	})

	assert.Equal(t, dnsrec.Fingerprint(orig, true), dnsrec.Fingerprint(back, true))
}
