package cmd

import (
	"github.com/spf13/cobra"

	"github.com/passfold/passfold/pkg/errors"
	"github.com/passfold/passfold/pkg/save"
)

var inspectFlags struct {
	format string
	output string
	vaults []string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <export-file>",
	Short: "Print the normalized entries of a vault export",
	Long: `Inspect loads a vault export and prints its normalized entries to
stdout, without modifying anything. Useful for checking what dedupe
would operate on.`,
	Example: `  passfold inspect export.zip
  passfold inspect -f bitwarden --output json bitwarden-export.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFlags.format, "format", "f", "", "export format (bitwarden, protonpass, protondb); detected when omitted")
	inspectCmd.Flags().StringVar(&inspectFlags.output, "output", "yaml", "output format (yaml, json)")
	inspectCmd.Flags().StringSliceVar(&inspectFlags.vaults, "vaults", nil, "vault names to include (default all)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	_, vaults, err := loadExport(cmd, args[0], inspectFlags.format, inspectFlags.vaults)
	if err != nil {
		return err
	}
	switch inspectFlags.output {
	case "yaml":
		return save.WriteYAML(cmd.OutOrStdout(), vaults)
	case "json":
		return save.WriteJSON(cmd.OutOrStdout(), vaults)
	default:
		return errors.NewValidationError("output", inspectFlags.output, "must be yaml or json")
	}
}
