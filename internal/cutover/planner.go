// Package cutover plans the migration of a domain's root and www web
// records from one hosting provider to another. Planning is read-only:
// it produces upserts and deletes for a caller to apply separately and
// never touches the mutation capability itself.
package cutover

import (
	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

// Scope of a cutover: only these record types at these owner names are
// ever planned against. Everything else is passed through untouched.
var (
	scopeTypes = map[dnsrec.Type]bool{
		dnsrec.TypeA:     true,
		dnsrec.TypeAAAA:  true,
		dnsrec.TypeCNAME: true,
		dnsrec.TypeALIAS: true,
	}
	scopeNames = map[string]bool{"@": true, "www": true}
)

// Desired is the target state of a cutover, built from at most three
// literal values. Empty fields are simply not part of the desired set.
type Desired struct {
	RootA    string
	RootAAAA string
	WWWCname string
}

func (d Desired) records() []dnsrec.Record {
	var recs []dnsrec.Record
	if d.RootA != "" {
		recs = append(recs, dnsrec.Record{Type: dnsrec.TypeA, Name: "@", Address: d.RootA})
	}
	if d.RootAAAA != "" {
		recs = append(recs, dnsrec.Record{Type: dnsrec.TypeAAAA, Name: "@", Address: d.RootAAAA})
	}
	if d.WWWCname != "" {
		recs = append(recs, dnsrec.Record{Type: dnsrec.TypeCNAME, Name: "www", Target: d.WWWCname})
	}
	return recs
}

// Plan is the read-only outcome of cutover analysis. OtherRecords
// counts the out-of-scope records by type; they are never deleted.
type Plan struct {
	Upserts                 []dnsrec.Record
	Deletes                 []dnsrec.Record
	LikelyThirdPartyManaged bool
	OtherRecords            map[dnsrec.Type]int
}

// PlanCutover diffs the current root/www web records against the
// desired state. Matching is TTL-insensitive. A nil signature table
// uses the built-in defaults.
func PlanCutover(actual []dnsrec.Record, desired Desired, sigs *SignatureTable) Plan {
	if sigs == nil {
		sigs = DefaultSignatures()
	}

	var current, other []dnsrec.Record
	for _, r := range actual {
		if scopeTypes[r.Type] && scopeNames[dnsrec.NormalizeName(r.Name)] {
			current = append(current, r)
		} else {
			other = append(other, r)
		}
	}

	want := desired.records()
	currentIx := dnsrec.BuildIndex(current, false)
	wantIx := dnsrec.BuildIndex(want, false)

	plan := Plan{
		OtherRecords:            dnsrec.SummarizeByType(other),
		LikelyThirdPartyManaged: thirdPartyManaged(actual, sigs),
	}

	for _, r := range want {
		if !currentIx.Has(dnsrec.Fingerprint(r, false)) {
			plan.Upserts = append(plan.Upserts, r)
		}
	}
	for _, r := range current {
		if !wantIx.Has(dnsrec.Fingerprint(r, false)) {
			plan.Deletes = append(plan.Deletes, r)
		}
	}

	return plan
}

// thirdPartyManaged scans the root/www records of every type for known
// hosting-provider signatures: addresses on A/AAAA records, and
// provider markers in any hostname-bearing field.
func thirdPartyManaged(actual []dnsrec.Record, sigs *SignatureTable) bool {
	for _, r := range actual {
		if !scopeNames[dnsrec.NormalizeName(r.Name)] {
			continue
		}
		switch r.Type {
		case dnsrec.TypeA, dnsrec.TypeAAAA:
			if sigs.MatchesAddress(r.Address) {
				return true
			}
		case dnsrec.TypeCNAME, dnsrec.TypeALIAS:
			if sigs.MatchesHost(r.Target) {
				return true
			}
		case dnsrec.TypeMX:
			if sigs.MatchesHost(r.Exchange) {
				return true
			}
		case dnsrec.TypeSRV:
			if sigs.MatchesHost(r.Target) {
				return true
			}
		case dnsrec.TypeTXT:
			if sigs.MatchesHost(r.Text) {
				return true
			}
		}
	}
	return false
}
