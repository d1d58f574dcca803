// Package writer applies record batches to a registrar without
// double-applying or silently dropping records. Before an overwrite it
// deletes any existing record sharing (name, type) with the batch; for
// deletions it resolves caller-supplied targets into full record
// bodies, since the registrar requires bodies rather than keys.
package writer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

// Provider is the fetch/mutate capability the writer drives. Both the
// HTTP registrar client and the Cloudflare adapter implement it.
type Provider interface {
	Records(ctx context.Context, domain string) ([]dnsrec.Record, error)
	SetRecords(ctx context.Context, domain string, records []dnsrec.Record, force bool) error
	DeleteRecords(ctx context.Context, domain string, records []dnsrec.Record) error
}

// Target names a record to delete by (name, type) only.
type Target struct {
	Name string
	Type dnsrec.Type
}

type Writer struct {
	provider Provider
	log      *logrus.Entry
}

func WithProvider(p Provider) func(*Writer) {
	return func(w *Writer) { w.provider = p }
}

func WithLogger(log *logrus.Entry) func(*Writer) {
	return func(w *Writer) { w.log = log }
}

func New(options ...func(*Writer)) *Writer {
	w := &Writer{log: logrus.NewEntry(logrus.StandardLogger())}

	for _, fn := range options {
		fn(w)
	}

	return w
}

// Save overwrites records at the registrar. Existing records that
// collide with the batch on (normalized name, type) are deleted in one
// call, then the batch is written in one forced call; with no
// collisions the delete is skipped entirely. Calls run strictly in
// order: fetch, delete, write.
//
// Concurrent Saves for the same domain are not serialized; their
// conflict snapshots may race.
func (w *Writer) Save(ctx context.Context, domain string, records []dnsrec.Record) error {
	if len(records) == 0 {
		return nil
	}

	current, err := w.provider.Records(ctx, domain)
	if err != nil {
		return fmt.Errorf("fetching current records: %w", err)
	}

	incoming := make(map[string]bool, len(records))
	for _, r := range records {
		incoming[collisionKey(r.Name, r.Type)] = true
	}

	var conflicts []dnsrec.Record
	for _, r := range current {
		if incoming[collisionKey(r.Name, r.Type)] {
			conflicts = append(conflicts, r)
		}
	}

	log := w.log.WithFields(logrus.Fields{
		"domain":    domain,
		"records":   len(records),
		"conflicts": len(conflicts),
	})

	force := false
	if len(conflicts) > 0 {
		force = true
		if err := w.provider.DeleteRecords(ctx, domain, conflicts); err != nil {
			return fmt.Errorf("deleting conflicting records: %w", err)
		}
	}

	if err := w.provider.SetRecords(ctx, domain, records, force); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}

	log.Info("records saved")
	return nil
}

// Delete resolves each (name, type) target against the registrar's
// current records and deletes every match in one call. A target may
// resolve to zero or more records; when nothing resolves, no network
// mutation is issued at all.
func (w *Writer) Delete(ctx context.Context, domain string, targets []Target) error {
	if len(targets) == 0 {
		return nil
	}

	current, err := w.provider.Records(ctx, domain)
	if err != nil {
		return fmt.Errorf("fetching current records: %w", err)
	}

	wanted := make(map[string]bool, len(targets))
	for _, t := range targets {
		wanted[collisionKey(t.Name, t.Type)] = true
	}

	var resolved []dnsrec.Record
	for _, r := range current {
		if wanted[collisionKey(r.Name, r.Type)] {
			resolved = append(resolved, r)
		}
	}

	if len(resolved) == 0 {
		w.log.WithField("domain", domain).Debug("no records matched delete targets")
		return nil
	}

	if err := w.provider.DeleteRecords(ctx, domain, resolved); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}

	w.log.WithFields(logrus.Fields{
		"domain":  domain,
		"deleted": len(resolved),
	}).Info("records deleted")
	return nil
}

func collisionKey(name string, rtype dnsrec.Type) string {
	return dnsrec.NormalizeName(name) + "|" + string(rtype)
}
