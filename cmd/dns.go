package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
	"github.com/tempusbreve/dns-sync-helper/internal/registrar"
	"github.com/tempusbreve/dns-sync-helper/internal/ttlcache"
	"github.com/tempusbreve/dns-sync-helper/internal/writer"
)

var dnsCmd = &cobra.Command{
	Use:     "dns",
	Short:   "DNS record reconciliation commands",
	GroupID: toolsGroup,
}

var dnsOpts = dnsOptions{}

func init() {
	rootCmd.AddCommand(dnsCmd)

	const (
		dnsAPIURL   = "api-url"
		dnsToken    = "token"
		dnsDomain   = "domain"
		dnsBackend  = "backend"
		dnsZoneID   = "zone-id"
		dnsCacheTTL = "cache-ttl"
	)

	dnsCmd.PersistentFlags().StringVar(&dnsOpts.apiURL, dnsAPIURL, "", "Base URL of the registrar API")
	dnsCmd.PersistentFlags().StringVar(&dnsOpts.token, dnsToken, "", "Token for registrar auth")
	dnsCmd.PersistentFlags().StringVar(&dnsOpts.backend, dnsBackend, "registrar", "DNS backend (registrar or cloudflare)")
	dnsCmd.PersistentFlags().StringVar(&dnsOpts.zoneID, dnsZoneID, "", "Cloudflare Zone ID (cloudflare backend only)")
	dnsCmd.PersistentFlags().DurationVar(&dnsOpts.cacheTTL, dnsCacheTTL, time.Minute, "Read cache TTL; 0 disables caching")

	dnsCmd.PersistentFlags().StringVar(&dnsOpts.domain, dnsDomain, "", "Domain to operate on")
	_ = dnsCmd.MarkPersistentFlagRequired(dnsDomain)
}

type dnsOptions struct {
	apiURL   string
	token    string
	domain   string
	backend  string
	zoneID   string
	cacheTTL time.Duration
}

func (o dnsOptions) Provider() (writer.Provider, error) {
	switch o.backend {
	case "cloudflare":
		return registrar.NewCloudflareDNS(
			registrar.WithCFToken(o.token),
			registrar.WithCFZoneID(o.zoneID),
		), nil
	case "registrar":
		return registrar.NewClient(
			registrar.WithBaseURL(o.apiURL),
			registrar.WithToken(o.token),
			registrar.WithCache(ttlcache.New[[]dnsrec.Record](o.cacheTTL), o.cacheTTL),
		), nil
	}
	return nil, fmt.Errorf("unknown backend %q", o.backend)
}

func (o dnsOptions) MustProvider() writer.Provider {
	p, err := o.Provider()
	cobra.CheckErr(err)
	return p
}

// recordEntry is one record in a YAML record file. A free-text content
// string may stand in for the structured MX/SRV fields. The key is
// "content" rather than "value" because "value" already belongs to the
// CAA field of the embedded record.
type recordEntry struct {
	dnsrec.Record `yaml:",inline"`
	Content       string `yaml:"content"`
}

type recordFile struct {
	Records []recordEntry `yaml:"records"`
}

// loadRecordFile reads caller-supplied records, deriving structured
// fields from free-text values and enforcing TTL bounds.
func loadRecordFile(path string) ([]dnsrec.Record, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}

	var file recordFile
	if err := yaml.Unmarshal(buf, &file); err != nil {
		return nil, fmt.Errorf("parsing record file: %w", err)
	}

	records := make([]dnsrec.Record, 0, len(file.Records))
	for i, entry := range file.Records {
		rec := entry.Record
		rec.Type = dnsrec.ParseType(string(rec.Type))

		if entry.Content != "" {
			if rec, err = writer.BuildRecord(string(rec.Type), rec.Name, entry.Content, rec.TTL); err != nil {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}
		}

		if rec.TTL != 0 && (rec.TTL < 60 || rec.TTL > 86400) {
			return nil, fmt.Errorf("record %d: ttl %d out of bounds (60-86400)", i+1, rec.TTL)
		}

		records = append(records, rec)
	}

	return records, nil
}
