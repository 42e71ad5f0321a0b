package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alimgiray/gitmentor/internal/services"
	"github.com/spf13/cobra"
)

var (
	withCommits bool
	exportPath  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the normalized GitHub profile the language model would see.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, collector, err := newCollector()
		if err != nil {
			return err
		}

		identity, err := resolveIdentity(cmd.Context(), client)
		if err != nil {
			return err
		}

		profile, err := collector.Collect(cmd.Context(), identity, withCommits)
		if err != nil {
			return err
		}

		if exportPath != "" {
			buf, err := services.NewProfileExportService().Workbook(profile)
			if err != nil {
				return err
			}
			if err := os.WriteFile(exportPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", exportPath, err)
			}
			headingColor.Fprintf(cmd.OutOrStdout(), "Profile of %s written to %s\n", identity.Username, exportPath)
			return nil
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(profile)
	},
}

func init() {
	profileCmd.Flags().BoolVar(&withCommits, "commits", false, "include recent commits of the three most recently updated repositories")
	profileCmd.Flags().StringVar(&exportPath, "xlsx", "", "write the profile as an .xlsx workbook to this path instead of printing it")
}
