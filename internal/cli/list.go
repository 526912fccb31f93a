package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/boilr-dev/relcollect/internal/collector"
	"github.com/boilr-dev/relcollect/internal/platform"
	"github.com/spf13/cobra"
)

// listEntry represents a discovered build directory for display.
type listEntry struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Artifact string `json:"artifact,omitempty"`
	Target   string `json:"target"`
	Ready    bool   `json:"ready"`
}

func newListCmd(a *app) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List build directories and their artifacts",
		Long:  `List the build directories under the project root without copying anything.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			c := collector.New(a.fs, log, cfg.CollectorOptions())
			builds, err := c.Discover()
			if err != nil {
				return err
			}

			entries := make([]listEntry, 0, len(builds))
			for _, b := range builds {
				e := listEntry{
					Name:     b.Name,
					Platform: platform.ID(b.Name, cfg.Prefix),
					Target:   c.TargetFor(b.Name).DirectoryPath,
				}
				if path, ok := c.ResolveArtifact(b); ok {
					e.Artifact = path
					e.Ready = true
				}
				entries = append(entries, e)
			}

			if listJSON {
				return printListJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No build directories found in %s.\n", cfg.ProjectRoot)
				return nil
			}
			return printListTable(cmd, entries)
		},
	}
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	return cmd
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tPLATFORM\tARTIFACT\tTARGET")
	for _, e := range entries {
		artifact := e.Artifact
		if artifact == "" {
			artifact = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Platform, artifact, e.Target)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
