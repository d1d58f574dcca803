package writer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

var ErrBadValue = errors.New("malformed record value")

var srvNamePattern = regexp.MustCompile(`^_[^.]+\._[^.]+(\..*)?$`)

// ParseMXValue splits a free-text MX value into its structured fields.
func ParseMXValue(value string) (preference int, exchange string, err error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("%w: MX value %q must be \"<preference> <exchange>\"", ErrBadValue, value)
	}
	preference, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("%w: MX preference %q must be numeric", ErrBadValue, fields[0])
	}
	return preference, fields[1], nil
}

// ParseSRVValue splits a free-text SRV value into its structured
// fields.
func ParseSRVValue(value string) (priority, weight, port int, target string, err error) {
	fields := strings.Fields(value)
	if len(fields) != 4 {
		return 0, 0, 0, "", fmt.Errorf("%w: SRV value %q must be \"<priority> <weight> <port> <target>\"", ErrBadValue, value)
	}
	nums := make([]int, 3)
	for i, label := range []string{"priority", "weight", "port"} {
		nums[i], err = strconv.Atoi(fields[i])
		if err != nil {
			return 0, 0, 0, "", fmt.Errorf("%w: SRV %s %q must be numeric", ErrBadValue, label, fields[i])
		}
	}
	return nums[0], nums[1], nums[2], fields[3], nil
}

// ValidateSRVName enforces the _service._protocol owner-name shape
// required when a caller supplies no structured service/protocol
// fields.
func ValidateSRVName(name string) error {
	if !srvNamePattern.MatchString(dnsrec.NormalizeName(name)) {
		return fmt.Errorf("%w: SRV name %q must look like \"_service._protocol\"", ErrBadValue, name)
	}
	return nil
}

// BuildRecord constructs a record from a type tag, owner name and
// free-text value, deriving structured MX/SRV fields from the value.
// Validation failures surface here, before any network call.
func BuildRecord(rtype, name, value string, ttl int) (dnsrec.Record, error) {
	rec := dnsrec.Record{Type: dnsrec.ParseType(rtype), Name: name, TTL: ttl}

	switch rec.Type {
	case dnsrec.TypeA, dnsrec.TypeAAAA:
		rec.Address = strings.TrimSpace(value)
	case dnsrec.TypeCNAME, dnsrec.TypeALIAS, dnsrec.TypeNS, dnsrec.TypePTR:
		rec.Target = strings.TrimSpace(value)
	case dnsrec.TypeTXT:
		rec.Text = value
	case dnsrec.TypeMX:
		pref, exchange, err := ParseMXValue(value)
		if err != nil {
			return dnsrec.Record{}, err
		}
		rec.Preference = dnsrec.Int(pref)
		rec.Exchange = exchange
	case dnsrec.TypeSRV:
		if err := ValidateSRVName(name); err != nil {
			return dnsrec.Record{}, err
		}
		priority, weight, port, target, err := ParseSRVValue(value)
		if err != nil {
			return dnsrec.Record{}, err
		}
		rec.Priority = dnsrec.Int(priority)
		rec.Weight = dnsrec.Int(weight)
		rec.Port = dnsrec.Int(port)
		rec.Target = target

		parts := strings.SplitN(dnsrec.NormalizeName(name), ".", 3)
		rec.Service, rec.Protocol = parts[0], parts[1]
	default:
		return dnsrec.Record{}, fmt.Errorf("%w: unsupported record type %q", ErrBadValue, rtype)
	}

	return rec, nil
}
