package cmd

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

var dnsReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read DNS records",
	Run: func(cmd *cobra.Command, args []string) {
		provider := dnsOpts.MustProvider()

		records, err := provider.Records(cmd.Context(), dnsOpts.domain)
		cobra.CheckErr(err)

		for _, rec := range records {
			ttl := "default TTL"
			if rec.TTL > 0 {
				ttl = humanize.RelTime(time.Now(), time.Now().Add(time.Duration(rec.TTL)*time.Second), "TTL", "")
			}
			cmd.Printf("%s %s :: %s (%s)\n", rec.Type, rec.Name, dnsrec.CanonicalValue(rec), ttl)
		}

		cmd.Printf("\n%d records", len(records))
		for rtype, count := range dnsrec.SummarizeByType(records) {
			cmd.Printf(" %s=%d", rtype, count)
		}
		cmd.Println()
	},
}

func init() {
	dnsCmd.AddCommand(dnsReadCmd)
}
