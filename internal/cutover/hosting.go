package cutover

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/c-robinson/iplib"
	"gopkg.in/yaml.v3"
)

// SignatureTable is the lookup data the third-party-hosting heuristic
// matches against: exact record addresses, CIDR prefixes, and hostname
// substring markers. It is injected rather than hardcoded so the list
// can be versioned and extended without touching matching logic.
type SignatureTable struct {
	Addresses   []string `yaml:"addresses"`
	Prefixes    []string `yaml:"prefixes"`
	HostMarkers []string `yaml:"hostMarkers"`
}

// DefaultSignatures covers the hosting providers commonly found on
// root/www records during a cutover.
func DefaultSignatures() *SignatureTable {
	return &SignatureTable{
		Addresses: []string{
			"76.76.21.21", // Vercel
			"75.2.60.5",   // Netlify
		},
		Prefixes: []string{
			"66.241.124.0/22",  // Fly.io anycast
			"2a09:8280::/29",   // Fly.io anycast v6
			"185.199.108.0/22", // GitHub Pages
		},
		HostMarkers: []string{
			"vercel-dns.com",
			"fly.dev",
			"github.io",
			"netlify.app",
			"pages.dev",
			"herokudns.com",
		},
	}
}

// LoadSignatures reads a YAML overlay and appends it to the defaults.
func LoadSignatures(path string) (*SignatureTable, error) {
	table := DefaultSignatures()
	if path == "" {
		return table, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signature table: %w", err)
	}

	var overlay SignatureTable
	if err := yaml.Unmarshal(buf, &overlay); err != nil {
		return nil, fmt.Errorf("parsing signature table: %w", err)
	}

	table.Addresses = append(table.Addresses, overlay.Addresses...)
	table.Prefixes = append(table.Prefixes, overlay.Prefixes...)
	table.HostMarkers = append(table.HostMarkers, overlay.HostMarkers...)
	return table, nil
}

// MatchesAddress reports whether addr is a known hosting-provider
// address, either exactly or by CIDR containment. Unparseable
// addresses and prefixes never match.
func (t *SignatureTable) MatchesAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	for _, a := range t.Addresses {
		if addr == a {
			return true
		}
	}

	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}

	for _, prefix := range t.Prefixes {
		if prefixContains(prefix, ip) {
			return true
		}
	}
	return false
}

// MatchesHost reports whether a hostname-bearing value carries a known
// provider marker.
func (t *SignatureTable) MatchesHost(value string) bool {
	value = strings.ToLower(value)
	for _, marker := range t.HostMarkers {
		if strings.Contains(value, marker) {
			return true
		}
	}
	return false
}

func prefixContains(prefix string, ip net.IP) bool {
	base, length, ok := splitPrefix(prefix)
	if !ok {
		return false
	}

	if base.To4() != nil {
		if ip.To4() == nil {
			return false
		}
		return iplib.NewNet4(base, length).Contains(ip)
	}
	if ip.To4() != nil {
		return false
	}
	return iplib.NewNet6(base, length, 0).Contains(ip)
}

func splitPrefix(prefix string) (net.IP, int, bool) {
	base, lengthStr, found := strings.Cut(prefix, "/")
	if !found {
		return nil, 0, false
	}
	ip := net.ParseIP(strings.TrimSpace(base))
	if ip == nil {
		return nil, 0, false
	}
	length, err := strconv.Atoi(strings.TrimSpace(lengthStr))
	if err != nil {
		return nil, 0, false
	}
	return ip, length, true
}
