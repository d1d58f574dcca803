package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tempusbreve/dns-sync-helper/internal/cutover"
	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
)

var dnsCutoverCmd = &cobra.Command{
	Use:   "cutover",
	Short: "Plan a root/www hosting cutover",
	Long: `Plan the record changes needed to point the root and www web
records at a new host. The plan is only printed; apply it with "dns save"
and "dns delete".`,
	Run: func(cmd *cobra.Command, args []string) {
		sigs, err := cutover.LoadSignatures(cutoverOpts.signatureFile)
		cobra.CheckErr(err)

		provider := dnsOpts.MustProvider()
		actual, err := provider.Records(cmd.Context(), dnsOpts.domain)
		cobra.CheckErr(err)

		plan := cutover.PlanCutover(actual, cutover.Desired{
			RootA:    cutoverOpts.rootA,
			RootAAAA: cutoverOpts.rootAAAA,
			WWWCname: cutoverOpts.wwwCname,
		}, sigs)

		if plan.LikelyThirdPartyManaged {
			cmd.Println("warning: current records look managed by a third-party host")
		}

		for _, rec := range plan.Upserts {
			cmd.Printf("upsert: %s %s :: %s\n", rec.Type, rec.Name, dnsrec.CanonicalValue(rec))
		}
		for _, rec := range plan.Deletes {
			cmd.Printf("delete: %s %s :: %s\n", rec.Type, rec.Name, dnsrec.CanonicalValue(rec))
		}
		if len(plan.Upserts) == 0 && len(plan.Deletes) == 0 {
			cmd.Println("nothing to change")
		}

		if len(plan.OtherRecords) > 0 {
			cmd.Printf("untouched:")
			for rtype, count := range plan.OtherRecords {
				cmd.Printf(" %s=%d", rtype, count)
			}
			cmd.Println()
		}
	},
}

var cutoverOpts = dnsCutoverOpts{}

type dnsCutoverOpts struct {
	rootA         string
	rootAAAA      string
	wwwCname      string
	signatureFile string
}

func init() {
	dnsCmd.AddCommand(dnsCutoverCmd)

	const (
		cutoverRootA    = "root-a"
		cutoverRootAAAA = "root-aaaa"
		cutoverWWWCname = "www-cname"
		cutoverSigs     = "signatures"
	)

	dnsCutoverCmd.Flags().StringVar(&cutoverOpts.rootA, cutoverRootA, "", "Desired A record address for the root")
	dnsCutoverCmd.Flags().StringVar(&cutoverOpts.rootAAAA, cutoverRootAAAA, "", "Desired AAAA record address for the root")
	dnsCutoverCmd.Flags().StringVar(&cutoverOpts.wwwCname, cutoverWWWCname, "", "Desired CNAME target for www")
	dnsCutoverCmd.Flags().StringVar(&cutoverOpts.signatureFile, cutoverSigs, "", "YAML overlay for the hosting signature table")
}
