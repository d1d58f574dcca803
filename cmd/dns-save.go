package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tempusbreve/dns-sync-helper/internal/writer"
)

var dnsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save DNS records, overwriting colliding ones",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := loadRecordFile(saveOpts.recordFile)
		cobra.CheckErr(err)

		w := writer.New(writer.WithProvider(dnsOpts.MustProvider()))
		cobra.CheckErr(w.Save(cmd.Context(), dnsOpts.domain, records))

		cmd.Printf("saved %d records to %s\n", len(records), dnsOpts.domain)
	},
}

var saveOpts = dnsSaveOpts{}

type dnsSaveOpts struct {
	recordFile string
}

func init() {
	dnsCmd.AddCommand(dnsSaveCmd)

	const saveRecords = "records"

	dnsSaveCmd.Flags().StringVar(&saveOpts.recordFile, saveRecords, "", "YAML file with records to save")
	_ = dnsSaveCmd.MarkFlagRequired(saveRecords)
}
