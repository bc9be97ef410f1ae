package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Clean a downloaded wiki page read from a file or standard input",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		rt, err := newSession()
		if err != nil {
			return err
		}
		defer rt.close()

		page, cleanErr := rt.service.FromContent(sourceURL, content)
		if cleanErr != nil {
			return cleanErr
		}
		return rt.emit(cmd.OutOrStdout(), page)
	},
}

// readInput returns the named file, or stdin when no file (or "-") is given.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("error reading standard input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", args[0], err)
	}
	return string(data), nil
}
