package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/blue/internal/settings"
	"github.com/iiroan/blue/internal/version"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool
	versionCmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Long:        `Print detailed version information about blue.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get(settings.SchemaVersion)
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, info)
			}
			fmt.Fprintf(out, "Version:        %s\n", info.Version)
			fmt.Fprintf(out, "Commit:         %s\n", info.Commit)
			fmt.Fprintf(out, "Build Date:     %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go Version:     %s\n", info.GoVersion)
			fmt.Fprintf(out, "OS/Arch:        %s\n", info.Platform)
			fmt.Fprintf(out, "Schema:         v%d\n", info.SchemaVersion)
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")
	return versionCmd
}
