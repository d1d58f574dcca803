package dnsrec

import (
	"strconv"
	"strings"
)

// CanonicalValue encodes a record's type-specific payload as a
// deterministic string, independent of how the record was built.
// Hostnames are lowercased with trailing dots stripped; missing
// optional fields become empty segments so fingerprints of partially
// specified records stay comparable. Unrecognized types encode to "".
func CanonicalValue(r Record) string {
	switch r.Type {
	case TypeA, TypeAAAA:
		return strings.TrimSpace(r.Address)
	case TypeCNAME, TypeALIAS, TypeNS, TypePTR:
		return NormalizeHost(r.Target)
	case TypeMX:
		// Preference defaults to -1 so an absent preference never
		// collides with a real preference of 0.
		pref := -1
		if r.Preference != nil {
			pref = *r.Preference
		}
		return strconv.Itoa(pref) + ":" + NormalizeHost(r.Exchange)
	case TypeTXT:
		// TXT content is semantically significant as-is.
		return r.Text
	case TypeSRV:
		return strings.Join([]string{
			r.Service,
			r.Protocol,
			optInt(r.Priority),
			optInt(r.Weight),
			optInt(r.Port),
			NormalizeHost(r.Target),
		}, ":")
	case TypeCAA:
		return strconv.Itoa(r.Flag) + ":" + r.Tag + ":" + r.Value
	case TypeHTTPS, TypeSVCB:
		return strings.Join([]string{
			optInt(r.SvcPriority),
			NormalizeHost(r.TargetName),
			r.SvcParams,
			optInt(r.Port),
			r.Scheme,
		}, ":")
	case TypeTLSA:
		return strings.Join([]string{
			optInt(r.Port),
			r.Protocol,
			optInt(r.Usage),
			optInt(r.Selector),
			optInt(r.Matching),
			stripSpace(strings.ToLower(r.AssociationData)),
		}, ":")
	}
	return ""
}

// Fingerprint composes type, normalized name, canonical value and an
// optional TTL into a single comparison key. When includeTTL is false
// the TTL segment is always empty, never omitted, so fingerprint shape
// stays constant.
func Fingerprint(r Record, includeTTL bool) string {
	ttl := ""
	if includeTTL && r.TTL > 0 {
		ttl = strconv.Itoa(r.TTL)
	}
	return string(r.Type) + "|" + NormalizeName(r.Name) + "|" + CanonicalValue(r) + "|" + ttl
}

// ComparableFields reduces a record to exactly the fields relevant to
// its type plus ttl, for stable report output.
func ComparableFields(r Record) map[string]any {
	out := map[string]any{
		"type": string(r.Type),
		"name": r.Name,
	}
	if r.TTL > 0 {
		out["ttl"] = r.TTL
	}
	switch r.Type {
	case TypeA, TypeAAAA:
		out["address"] = r.Address
	case TypeCNAME, TypeALIAS, TypeNS, TypePTR:
		out["target"] = r.Target
	case TypeMX:
		if r.Preference != nil {
			out["preference"] = *r.Preference
		}
		out["exchange"] = r.Exchange
	case TypeTXT:
		out["text"] = r.Text
	case TypeSRV:
		out["service"] = r.Service
		out["protocol"] = r.Protocol
		putInt(out, "priority", r.Priority)
		putInt(out, "weight", r.Weight)
		putInt(out, "port", r.Port)
		out["target"] = r.Target
	case TypeCAA:
		out["flag"] = r.Flag
		out["tag"] = r.Tag
		out["value"] = r.Value
	case TypeHTTPS, TypeSVCB:
		putInt(out, "svcPriority", r.SvcPriority)
		out["targetName"] = r.TargetName
		out["svcParams"] = r.SvcParams
		putInt(out, "port", r.Port)
		out["scheme"] = r.Scheme
	case TypeTLSA:
		putInt(out, "port", r.Port)
		out["protocol"] = r.Protocol
		putInt(out, "usage", r.Usage)
		putInt(out, "selector", r.Selector)
		putInt(out, "matching", r.Matching)
		out["associationData"] = r.AssociationData
	}
	return out
}

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func putInt(m map[string]any, key string, p *int) {
	if p != nil {
		m[key] = *p
	}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
