package cmd

import (
	"github.com/spf13/cobra"

	"github.com/passfold/passfold/internal/sources"
	"github.com/passfold/passfold/pkg/errors"
	"github.com/passfold/passfold/pkg/logging"
	"github.com/passfold/passfold/pkg/save"
	"github.com/passfold/passfold/pkg/vault"
)

var dedupeFlags struct {
	format string
	output string
	vaults []string
	dryRun bool
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe [flags] <export-file>",
	Short: "Clean and merge duplicate entries in a vault export",
	Long: `Dedupe loads a vault export, normalizes names and URLs, merges entries
that share an identity (item id, name and type), and writes the result.

Formats that carry their own container (Proton Pass) are written back in
that container; for others the normalized vaults are written as JSON.`,
	Example: `  passfold dedupe -o deduped.zip export.zip
  passfold dedupe -f bitwarden -o deduped.json bitwarden-export.json
  passfold dedupe --vaults Personal --dry-run export.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runDedupe,
}

func init() {
	dedupeCmd.Flags().StringVarP(&dedupeFlags.format, "format", "f", "", "export format (bitwarden, protonpass, protondb); detected when omitted")
	dedupeCmd.Flags().StringVarP(&dedupeFlags.output, "output", "o", "", "output file path")
	dedupeCmd.Flags().StringSliceVar(&dedupeFlags.vaults, "vaults", nil, "vault names to include (default all)")
	dedupeCmd.Flags().BoolVar(&dedupeFlags.dryRun, "dry-run", false, "report duplicates without writing output")
	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, args []string) error {
	path := args[0]
	if dedupeFlags.output == "" && !dedupeFlags.dryRun {
		return errors.NewValidationError("output", "", "an output path is required unless --dry-run is set")
	}

	src, vaults, err := loadExport(cmd, path, dedupeFlags.format, dedupeFlags.vaults)
	if err != nil {
		return err
	}

	total, kept := 0, 0
	for _, v := range vaults {
		before := v.Len()
		v.Clean()
		if err := v.MergeDuplicates(); err != nil {
			return err
		}
		logging.Info().
			Str("vault", v.Name).
			Int("entries", before).
			Int("merged", before-v.Len()).
			Msg("Deduplicated vault")
		total += before
		kept += v.Len()
	}
	logging.Info().
		Int("entries", total).
		Int("duplicates_merged", total-kept).
		Msg("Dedupe complete")

	if dedupeFlags.dryRun {
		return nil
	}
	return saveExport(src, dedupeFlags.output, vaults)
}

// loadExport resolves the format (detecting it when unset) and loads the
// export into normalized vaults.
func loadExport(cmd *cobra.Command, path, format string, vaultNames []string) (sources.Source, []*vault.Vault, error) {
	f := sources.Format(format)
	if format == "" {
		detected, err := sources.Detect(path)
		if err != nil {
			return nil, nil, err
		}
		f = detected
		logging.Debug().Str("format", f.String()).Str("path", path).Msg("Detected export format")
	}
	src, err := sources.For(f, sources.WithVaultNames(vaultNames))
	if err != nil {
		return nil, nil, err
	}
	vaults, err := src.Load(cmd.Context(), path)
	if err != nil {
		return nil, nil, err
	}
	return src, vaults, nil
}

// saveExport writes vaults in the source's own format when it can, falling
// back to plain JSON.
func saveExport(src sources.Source, path string, vaults []*vault.Vault) error {
	if saver, ok := src.(sources.Saver); ok {
		if err := saver.Save(path, vaults); err != nil {
			return err
		}
		logging.Info().Str("path", path).Str("format", src.Format().String()).Msg("Wrote deduplicated export")
		return nil
	}
	if err := save.JSON(path, vaults); err != nil {
		return err
	}
	logging.Info().Str("path", path).Str("format", "json").Msg("Wrote deduplicated vaults")
	return nil
}
