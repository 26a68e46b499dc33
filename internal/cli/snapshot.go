package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	sio "github.com/matzehuels/scenegraph/pkg/io"
	"github.com/matzehuels/scenegraph/pkg/store"
)

// snapshotCommand creates the revision snapshot commands.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Store and restore diagram revisions",
		Long: `Store and restore diagram revisions.

Snapshots go to MongoDB when [mongo] uri is configured. Without it an
in-memory store is used, which only lasts for the command.`,
	}

	cmd.AddCommand(c.snapshotSaveCommand())
	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotRestoreCommand())

	return cmd
}

func (c *CLI) snapshotSaveCommand() *cobra.Command {
	var writeBack bool

	cmd := &cobra.Command{
		Use:               "save [file]",
		Short:             "Store the scene as a new revision",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := sio.Import(args[0])
			if err != nil {
				return err
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			before := d.Revision()
			snap, err := store.SaveNext(ctx, st, d)
			if err != nil {
				return err
			}
			printSuccess("Saved revision %s", StyleNumber.Render(strconv.Itoa(snap.Revision)))
			printKeyValue("diagram", snap.DiagramID)
			printKeyValue("fingerprint", snap.Fingerprint)

			if writeBack && snap.Revision != before {
				if err := sio.Export(d, args[0]); err != nil {
					return err
				}
				printFile(args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&writeBack, "write", "w", false, "write the raised revision back to the file")
	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [file|diagram-id]",
		Short: "List stored revisions of a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := diagramID(args[0])
			if err != nil {
				return err
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			snaps, err := st.List(ctx, id)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("No revisions stored for %s", id)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), snapshotTable(snaps))
			return nil
		},
	}
}

func (c *CLI) snapshotRestoreCommand() *cobra.Command {
	var (
		revision int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "restore [file|diagram-id]",
		Short: "Write a stored revision to a scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := diagramID(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return fmt.Errorf("--output is required")
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			var snap store.Snapshot
			if cmd.Flags().Changed("revision") {
				snap, err = st.Get(ctx, id, revision)
			} else {
				snap, err = st.Latest(ctx, id)
			}
			if err != nil {
				return err
			}
			d, err := store.Restore(snap)
			if err != nil {
				return err
			}
			if err := sio.Export(d, output); err != nil {
				return err
			}
			printSuccess("Restored revision %d", snap.Revision)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "revision to restore (default: latest)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "scene file to write (.toml or .json)")
	return cmd
}

// diagramID accepts either a scene file or a bare diagram ID.
func diagramID(arg string) (string, error) {
	if _, err := os.Stat(arg); err != nil {
		return arg, nil
	}
	d, err := sio.Import(arg)
	if err != nil {
		return "", err
	}
	return d.ID().String(), nil
}

func snapshotTable(snaps []store.Snapshot) string {
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			strconv.Itoa(s.Revision),
			s.Fingerprint,
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Rev", "Fingerprint", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 {
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}
