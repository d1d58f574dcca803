package dnsrec

import "strings"

type Type string

func (t Type) String() string { return string(t) }

const (
	TypeA     = Type("A")
	TypeAAAA  = Type("AAAA")
	TypeCNAME = Type("CNAME")
	TypeMX    = Type("MX")
	TypeTXT   = Type("TXT")
	TypeSRV   = Type("SRV")
	TypeALIAS = Type("ALIAS")
	TypeCAA   = Type("CAA")
	TypeHTTPS = Type("HTTPS")
	TypeSVCB  = Type("SVCB")
	TypeNS    = Type("NS")
	TypePTR   = Type("PTR")
	TypeTLSA  = Type("TLSA")
)

var knownTypes = map[Type]bool{
	TypeA: true, TypeAAAA: true, TypeCNAME: true, TypeMX: true,
	TypeTXT: true, TypeSRV: true, TypeALIAS: true, TypeCAA: true,
	TypeHTTPS: true, TypeSVCB: true, TypeNS: true, TypePTR: true,
	TypeTLSA: true,
}

// ParseType normalizes a caller-supplied type tag. Tags are
// case-insensitive at the boundary and uppercase internally; unknown
// tags pass through so forward-compatible records survive a round trip.
func ParseType(s string) Type {
	return Type(strings.ToUpper(strings.TrimSpace(s)))
}

func (t Type) Known() bool { return knownTypes[t] }

// Record is one registrar record. Name and Type are always set; the
// remaining fields are populated according to Type. Numeric fields
// whose absence must stay distinguishable from zero are pointers.
type Record struct {
	Type Type   `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
	TTL  int    `json:"ttl,omitempty" yaml:"ttl,omitempty"`

	// A and AAAA.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	// CNAME, ALIAS, NS and PTR.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// MX.
	Preference *int   `json:"preference,omitempty" yaml:"preference,omitempty"`
	Exchange   string `json:"exchange,omitempty" yaml:"exchange,omitempty"`

	// TXT.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// SRV. Protocol and Port are shared with TLSA, SvcPriority lives
	// with the HTTPS/SVCB fields below.
	Service  string `json:"service,omitempty" yaml:"service,omitempty"`
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Priority *int   `json:"priority,omitempty" yaml:"priority,omitempty"`
	Weight   *int   `json:"weight,omitempty" yaml:"weight,omitempty"`
	Port     *int   `json:"port,omitempty" yaml:"port,omitempty"`

	// CAA. A missing flag canonicalizes the same as flag 0.
	Flag  int    `json:"flag,omitempty" yaml:"flag,omitempty"`
	Tag   string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// HTTPS and SVCB.
	SvcPriority *int   `json:"svcPriority,omitempty" yaml:"svcPriority,omitempty"`
	TargetName  string `json:"targetName,omitempty" yaml:"targetName,omitempty"`
	SvcParams   string `json:"svcParams,omitempty" yaml:"svcParams,omitempty"`
	Scheme      string `json:"scheme,omitempty" yaml:"scheme,omitempty"`

	// TLSA.
	Usage           *int   `json:"usage,omitempty" yaml:"usage,omitempty"`
	Selector        *int   `json:"selector,omitempty" yaml:"selector,omitempty"`
	Matching        *int   `json:"matching,omitempty" yaml:"matching,omitempty"`
	AssociationData string `json:"associationData,omitempty" yaml:"associationData,omitempty"`
}

// NormalizeHost lowercases a hostname and strips surrounding
// whitespace and the trailing dot.
func NormalizeHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}

// NormalizeName normalizes an owner name the same way as a hostname.
// The registrar's zone-apex shorthand "@" passes through unchanged,
// and an empty name means the apex.
func NormalizeName(name string) string {
	n := NormalizeHost(name)
	if n == "" {
		return "@"
	}
	return n
}

// Int is a convenience for building records with pointer fields.
func Int(v int) *int { return &v }
