package cmd

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a wiki page and print its cleaned content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newSession()
		if err != nil {
			return err
		}
		defer rt.close()

		page, retrieveErr := rt.service.Retrieve(cmd.Context(), args[0])
		if retrieveErr != nil {
			return retrieveErr
		}
		return rt.emit(cmd.OutOrStdout(), page)
	},
}
