// Package reconcile classifies a desired record set against the
// registrar's actual state. Matching is by exact canonical fingerprint
// only; there is no fuzzy or closest-match pairing, so a record is
// either an exact match or not matched at all.
package reconcile

import (
	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

// DefaultTypes is the record-type scope used when the caller does not
// narrow the diff.
var DefaultTypes = []dnsrec.Type{
	dnsrec.TypeA,
	dnsrec.TypeAAAA,
	dnsrec.TypeCNAME,
	dnsrec.TypeMX,
	dnsrec.TypeTXT,
	dnsrec.TypeSRV,
}

// Result partitions both inputs: every considered expected record is
// matched or missing, every considered actual record is matched or
// unexpected.
type Result struct {
	Missing    []dnsrec.Record
	Unexpected []dnsrec.Record
}

// Diff compares expected records against the registrar's actual
// records. Types outside the considered set are invisible in both
// directions. When includeTTL is true a TTL mismatch on an otherwise
// identical record yields one missing entry and one unexpected entry;
// callers depend on those count semantics.
func Diff(expected, actual []dnsrec.Record, includeTTL bool, types []dnsrec.Type) Result {
	if len(types) == 0 {
		types = DefaultTypes
	}
	considered := make(map[dnsrec.Type]bool, len(types))
	for _, t := range types {
		considered[t] = true
	}

	var filtered []dnsrec.Record
	for _, r := range actual {
		if considered[r.Type] {
			filtered = append(filtered, r)
		}
	}

	ix := dnsrec.BuildIndex(filtered, includeTTL)
	matched := make(map[string]bool)

	var res Result
	for _, r := range expected {
		if !considered[r.Type] {
			continue
		}
		fp := dnsrec.Fingerprint(r, includeTTL)
		if ix.Has(fp) {
			matched[fp] = true
		} else {
			res.Missing = append(res.Missing, r)
		}
	}

	for _, r := range filtered {
		if !matched[dnsrec.Fingerprint(r, includeTTL)] {
			res.Unexpected = append(res.Unexpected, r)
		}
	}

	return res
}

// Report is the caller-facing summary of a diff, with each listed
// record reduced to its comparable fields.
type Report struct {
	Domain          string           `json:"domain"`
	ExpectedCount   int              `json:"expectedCount"`
	MissingCount    int              `json:"missingCount"`
	UnexpectedCount int              `json:"unexpectedCount"`
	Missing         []map[string]any `json:"missing"`
	Unexpected      []map[string]any `json:"unexpected"`
}

func NewReport(domain string, expected []dnsrec.Record, res Result) Report {
	rep := Report{
		Domain:          domain,
		ExpectedCount:   len(expected),
		MissingCount:    len(res.Missing),
		UnexpectedCount: len(res.Unexpected),
	}
	for _, r := range res.Missing {
		rep.Missing = append(rep.Missing, dnsrec.ComparableFields(r))
	}
	for _, r := range res.Unexpected {
		rep.Unexpected = append(rep.Unexpected, dnsrec.ComparableFields(r))
	}
	return rep
}
