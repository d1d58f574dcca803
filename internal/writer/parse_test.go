package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

func TestParseMXValue(t *testing.T) {
	pref, exchange, err := ParseMXValue("10 mail.example.com")
	require.NoError(t, err)
	assert.Equal(t, 10, pref)
	assert.Equal(t, "mail.example.com", exchange)

	for _, bad := range []string{"", "mail.example.com", "ten mail.example.com", "10 mail extra"} {
		_, _, err := ParseMXValue(bad)
		require.ErrorIs(t, err, ErrBadValue, bad)
	}

	_, _, err = ParseMXValue("onlyhost")
	assert.Contains(t, err.Error(), `"<preference> <exchange>"`)
}

func TestParseSRVValue(t *testing.T) {
	priority, weight, port, target, err := ParseSRVValue("10 20 5060 sip.example.com")
	require.NoError(t, err)
	assert.Equal(t, 10, priority)
	assert.Equal(t, 20, weight)
	assert.Equal(t, 5060, port)
	assert.Equal(t, "sip.example.com", target)

	for _, bad := range []string{"", "10 20 5060", "10 twenty 5060 sip.example.com"} {
		_, _, _, _, err := ParseSRVValue(bad)
		require.ErrorIs(t, err, ErrBadValue, bad)
	}
}

func TestValidateSRVName(t *testing.T) {
	assert.NoError(t, ValidateSRVName("_sip._tcp"))
	assert.NoError(t, ValidateSRVName("_SIP._TCP.example.com"))
	assert.ErrorIs(t, ValidateSRVName("sip._tcp"), ErrBadValue)
	assert.ErrorIs(t, ValidateSRVName("_sip.tcp"), ErrBadValue)
	assert.ErrorIs(t, ValidateSRVName("www"), ErrBadValue)
}

func TestBuildRecord(t *testing.T) {
	rec, err := BuildRecord("mx", "@", "10 Mail.Example.com", 3600)
	require.NoError(t, err)
	assert.Equal(t, dnsrec.TypeMX, rec.Type)
	require.NotNil(t, rec.Preference)
	assert.Equal(t, 10, *rec.Preference)
	assert.Equal(t, "Mail.Example.com", rec.Exchange)
	assert.Equal(t, 3600, rec.TTL)

	rec, err = BuildRecord("srv", "_sip._tcp", "10 20 5060 sip.example.com", 0)
	require.NoError(t, err)
	assert.Equal(t, "_sip", rec.Service)
	assert.Equal(t, "_tcp", rec.Protocol)
	require.NotNil(t, rec.Port)
	assert.Equal(t, 5060, *rec.Port)
	assert.Equal(t, "sip.example.com", rec.Target)

	rec, err = BuildRecord("A", "www", " 1.2.3.4 ", 0)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", rec.Address)

	rec, err = BuildRecord("txt", "@", " v=spf1 -all ", 0)
	require.NoError(t, err)
	assert.Equal(t, " v=spf1 -all ", rec.Text)
}

func TestBuildRecordValidation(t *testing.T) {
	_, err := BuildRecord("srv", "www", "10 20 5060 sip.example.com", 0)
	require.ErrorIs(t, err, ErrBadValue)
	assert.Contains(t, err.Error(), "_service._protocol")

	_, err = BuildRecord("mx", "@", "mail.example.com", 0)
	require.ErrorIs(t, err, ErrBadValue)

	_, err = BuildRecord("soa", "@", "whatever", 0)
	require.ErrorIs(t, err, ErrBadValue)
}
