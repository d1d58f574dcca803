package registrar

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudflare/cloudflare-go"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

// CloudflareDNS implements the fetch/mutate capability on top of the
// Cloudflare API, for domains whose zone lives there instead of behind
// the generic registrar endpoint.
type CloudflareDNS struct {
	token  string
	zoneID string
}

func WithCFToken(token string) func(*CloudflareDNS) {
	return func(d *CloudflareDNS) { d.token = token }
}

// WithCFZoneID skips the zone lookup by name.
func WithCFZoneID(zoneID string) func(*CloudflareDNS) {
	return func(d *CloudflareDNS) { d.zoneID = zoneID }
}

func NewCloudflareDNS(options ...func(*CloudflareDNS)) *CloudflareDNS {
	dns := &CloudflareDNS{}

	for _, fn := range options {
		fn(dns)
	}

	return dns
}

func (a *CloudflareDNS) Records(ctx context.Context, domain string) ([]dnsrec.Record, error) {
	api, err := cfAPI(a.token)
	if err != nil {
		return nil, err
	}

	id, err := cfZoneID(api, a.zoneID, domain)
	if err != nil {
		return nil, err
	}

	records, err := listRecords(ctx, api, id)
	if err != nil {
		return nil, err
	}

	var res []dnsrec.Record
	for _, rec := range records {
		res = append(res, fromCF(domain, &rec))
	}

	return res, nil
}

// SetRecords creates each record in the batch. Cloudflare has no batch
// force semantics; the conflict-aware writer has already deleted any
// colliding records before this is called.
func (a *CloudflareDNS) SetRecords(ctx context.Context, domain string, records []dnsrec.Record, _ bool) error {
	api, err := cfAPI(a.token)
	if err != nil {
		return err
	}

	id, err := cfZoneID(api, a.zoneID, domain)
	if err != nil {
		return err
	}

	zid := cloudflare.ZoneIdentifier(id)
	for _, rec := range records {
		params, err := toCFParams(domain, rec)
		if err != nil {
			return err
		}
		if _, err := api.CreateDNSRecord(ctx, zid, params); err != nil {
			return fmt.Errorf("creating %s record %q: %w", rec.Type, rec.Name, err)
		}
	}

	return nil
}

// DeleteRecords resolves each record to its Cloudflare ID by canonical
// fingerprint and deletes the matches.
func (a *CloudflareDNS) DeleteRecords(ctx context.Context, domain string, records []dnsrec.Record) error {
	api, err := cfAPI(a.token)
	if err != nil {
		return err
	}

	id, err := cfZoneID(api, a.zoneID, domain)
	if err != nil {
		return err
	}

	doomed := dnsrec.BuildIndex(records, false)

	existing, err := listRecords(ctx, api, id)
	if err != nil {
		return err
	}

	zid := cloudflare.ZoneIdentifier(id)
	for _, rec := range existing {
		converted := fromCF(domain, &rec)
		if !doomed.Has(dnsrec.Fingerprint(converted, false)) {
			continue
		}
		if err := api.DeleteDNSRecord(ctx, zid, rec.ID); err != nil {
			return fmt.Errorf("deleting record %s: %w", rec.ID, err)
		}
	}

	return nil
}

func cfAPI(token string) (*cloudflare.API, error) {
	return cloudflare.NewWithAPIToken(
		token,
		cloudflare.UserAgent("dns-sync-helper"))
}

func cfZoneID(api *cloudflare.API, zoneID, zoneName string) (string, error) {
	if zoneID != "" {
		return zoneID, nil
	}

	return api.ZoneIDByName(zoneName)
}

func listRecords(ctx context.Context, api *cloudflare.API, zoneID string) ([]cloudflare.DNSRecord, error) {
	var res, records []cloudflare.DNSRecord
	var info *cloudflare.ResultInfo
	var err error

	zid := cloudflare.ZoneIdentifier(zoneID)
	p := cloudflare.ListDNSRecordsParams{}

	for {
		if records, info, err = api.ListDNSRecords(ctx, zid, p); err != nil {
			return res, err
		}

		res = append(res, records...)

		if info.HasMorePages() {
			p.ResultInfo.Page = info.Page + 1
			continue
		}

		return res, nil
	}
}

// fromCF converts a Cloudflare record to the canonical model, with the
// owner name made zone-relative.
func fromCF(domain string, r *cloudflare.DNSRecord) dnsrec.Record {
	rec := dnsrec.Record{
		Type: dnsrec.ParseType(r.Type),
		Name: relName(r.Name, domain),
		TTL:  r.TTL,
	}

	switch rec.Type {
	case dnsrec.TypeA, dnsrec.TypeAAAA:
		rec.Address = r.Content
	case dnsrec.TypeCNAME, dnsrec.TypeALIAS, dnsrec.TypeNS, dnsrec.TypePTR:
		rec.Target = r.Content
	case dnsrec.TypeTXT:
		rec.Text = strings.Trim(r.Content, `"`)
	case dnsrec.TypeMX:
		rec.Exchange = r.Content
		if r.Priority != nil {
			rec.Preference = dnsrec.Int(int(*r.Priority))
		}
	case dnsrec.TypeSRV:
		data := dataMap(r.Data)
		rec.Service = dataString(data, "service")
		rec.Protocol = dataString(data, "proto")
		rec.Priority = dataInt(data, "priority")
		rec.Weight = dataInt(data, "weight")
		rec.Port = dataInt(data, "port")
		rec.Target = dataString(data, "target")
	case dnsrec.TypeCAA:
		data := dataMap(r.Data)
		if f := dataInt(data, "flags"); f != nil {
			rec.Flag = *f
		}
		rec.Tag = dataString(data, "tag")
		rec.Value = dataString(data, "value")
	}

	return rec
}

func toCFParams(domain string, rec dnsrec.Record) (cloudflare.CreateDNSRecordParams, error) {
	params := cloudflare.CreateDNSRecordParams{
		Type: string(rec.Type),
		Name: absName(rec.Name, domain),
		TTL:  rec.TTL,
	}

	switch rec.Type {
	case dnsrec.TypeA, dnsrec.TypeAAAA:
		params.Content = rec.Address
	case dnsrec.TypeCNAME, dnsrec.TypeALIAS, dnsrec.TypeNS, dnsrec.TypePTR:
		params.Content = rec.Target
	case dnsrec.TypeTXT:
		params.Content = ensureQuoted(rec.Text)
	case dnsrec.TypeMX:
		params.Content = rec.Exchange
		if rec.Preference != nil {
			priority := uint16(*rec.Preference)
			params.Priority = &priority
		}
	case dnsrec.TypeSRV:
		params.Data = map[string]any{
			"service":  rec.Service,
			"proto":    rec.Protocol,
			"name":     absName(rec.Name, domain),
			"priority": derefInt(rec.Priority),
			"weight":   derefInt(rec.Weight),
			"port":     derefInt(rec.Port),
			"target":   rec.Target,
		}
	case dnsrec.TypeCAA:
		params.Data = map[string]any{
			"flags": rec.Flag,
			"tag":   rec.Tag,
			"value": rec.Value,
		}
	default:
		return params, fmt.Errorf("record type %q is not supported by the cloudflare backend", rec.Type)
	}

	return params, nil
}

// relName makes a fully qualified Cloudflare name zone-relative, with
// "@" for the apex.
func relName(fqdn, domain string) string {
	name := dnsrec.NormalizeHost(fqdn)
	domain = dnsrec.NormalizeHost(domain)
	if name == domain {
		return "@"
	}
	return strings.TrimSuffix(name, "."+domain)
}

func absName(name, domain string) string {
	name = dnsrec.NormalizeName(name)
	if name == "@" {
		return domain
	}
	if name == domain || strings.HasSuffix(name, "."+domain) {
		return name
	}
	return name + "." + domain
}

func dataMap(data any) map[string]any {
	m, _ := data.(map[string]any)
	return m
}

func dataString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func dataInt(m map[string]any, key string) *int {
	switch v := m[key].(type) {
	case float64:
		return dnsrec.Int(int(v))
	case int:
		return dnsrec.Int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return dnsrec.Int(n)
		}
	}
	return nil
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func ensureQuoted(s string) string {
	if len(s) > 0 {
		if s[0] != '"' {
			s = strconv.Quote(s)
		}
		if s[len(s)-1] != '"' {
			s = strconv.Quote(s)
		}
	}
	return s
}
