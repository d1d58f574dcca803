package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
	"github.com/tempusbreve/dns-sync-helper/internal/reconcile"
)

var dnsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check registrar records against an expected record file",
	Run: func(cmd *cobra.Command, args []string) {
		expected, err := loadRecordFile(checkOpts.expectedFile)
		cobra.CheckErr(err)

		provider := dnsOpts.MustProvider()
		actual, err := provider.Records(cmd.Context(), dnsOpts.domain)
		cobra.CheckErr(err)

		var types []dnsrec.Type
		for _, t := range checkOpts.types {
			types = append(types, dnsrec.ParseType(t))
		}

		res := reconcile.Diff(expected, actual, checkOpts.includeTTL, types)
		report := reconcile.NewReport(dnsOpts.domain, expected, res)

		cmd.Printf("%s: %d expected, %d missing, %d unexpected\n",
			report.Domain, report.ExpectedCount, report.MissingCount, report.UnexpectedCount)

		for _, rec := range res.Missing {
			cmd.Printf("missing:    %s %s :: %s\n", rec.Type, rec.Name, dnsrec.CanonicalValue(rec))
		}
		for _, rec := range res.Unexpected {
			cmd.Printf("unexpected: %s %s :: %s\n", rec.Type, rec.Name, dnsrec.CanonicalValue(rec))
		}
	},
}

var checkOpts = dnsCheckOpts{}

type dnsCheckOpts struct {
	expectedFile string
	includeTTL   bool
	types        []string
}

func init() {
	dnsCmd.AddCommand(dnsCheckCmd)

	const (
		checkExpected   = "expected"
		checkIncludeTTL = "include-ttl"
		checkTypes      = "types"
	)

	dnsCheckCmd.Flags().StringVar(&checkOpts.expectedFile, checkExpected, "", "YAML file with expected records")
	_ = dnsCheckCmd.MarkFlagRequired(checkExpected)

	dnsCheckCmd.Flags().BoolVar(&checkOpts.includeTTL, checkIncludeTTL, false, "Treat TTL differences as mismatches")
	dnsCheckCmd.Flags().StringSliceVar(&checkOpts.types, checkTypes, nil, "Record types to consider (default A,AAAA,CNAME,MX,TXT,SRV)")
}
