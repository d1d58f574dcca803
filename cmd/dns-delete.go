package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tempusbreve/dns-sync-helper/internal/dnsrec"
	"github.com/tempusbreve/dns-sync-helper/internal/writer"
)

var dnsDeleteCmd = &cobra.Command{
	Use:   "delete TYPE:NAME [TYPE:NAME...]",
	Short: "Delete DNS records by type and name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var targets []writer.Target
		for _, arg := range args {
			rtype, name, found := strings.Cut(arg, ":")
			if !found {
				return fmt.Errorf("target %q must look like TYPE:NAME, e.g. A:www", arg)
			}
			targets = append(targets, writer.Target{
				Name: name,
				Type: dnsrec.ParseType(rtype),
			})
		}

		w := writer.New(writer.WithProvider(dnsOpts.MustProvider()))
		if err := w.Delete(cmd.Context(), dnsOpts.domain, targets); err != nil {
			return err
		}

		cmd.Printf("deleted matching records from %s\n", dnsOpts.domain)
		return nil
	},
}

func init() {
	dnsCmd.AddCommand(dnsDeleteCmd)
}
