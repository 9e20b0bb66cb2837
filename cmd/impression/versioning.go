package main

import (
	"fmt"
	"os"

	"github.com/impresslabs/impression"
	"github.com/impresslabs/impression/internal/report"
	"github.com/spf13/cobra"
)

var versioningCmd = &cobra.Command{
	Use:     "design-versioning",
	Aliases: []string{"versioning"},
	Short:   "Track design token changes with content-addressed snapshots",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	versioningCmd.PersistentFlags().String("store", ".impression/versions", "Snapshot store directory")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot <tokens.json>",
		Short: "Record a new snapshot of a token file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringP("message", "m", "", "Snapshot message")

	versioningCmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Initialize an empty snapshot store",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				dir := storeDir()
				if _, err := impression.InitStore(dir); err != nil {
					return err
				}
				fmt.Printf("Initialized snapshot store in %s\n", dir)
				return nil
			},
		},
		snapshotCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List all snapshots",
			Args:  cobra.NoArgs,
			RunE:  runList,
		},
		&cobra.Command{
			Use:   "diff <from> [to]",
			Short: "Show changes between two snapshots",
			Long:  `Diff two snapshots by ID. Either ID may be "current"; to defaults to current.`,
			Args:  cobra.RangeArgs(1, 2),
			RunE:  runDiff,
		},
		&cobra.Command{
			Use:   "rollback <id> <output.json>",
			Short: "Restore a snapshot's tokens and move the current pointer",
			Args:  cobra.ExactArgs(2),
			RunE:  runRollback,
		},
		&cobra.Command{
			Use:   "changelog [output.md]",
			Short: "Render the snapshot history as a markdown changelog",
			Args:  cobra.RangeArgs(0, 1),
			RunE:  runChangelog,
		},
	)
}

func storeDir() string {
	return getStringWithFallback("store", "versioning.store", ".impression/versions")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	message, _ := cmd.Flags().GetString("message")
	store, err := impression.OpenStore(storeDir())
	if err != nil {
		return err
	}
	ds, err := impression.LoadReference(args[0])
	if err != nil {
		return err
	}
	snap, err := store.Commit(ds, message)
	if err != nil {
		return err
	}
	fmt.Printf("Snapshot %s v%s", snap.ID, snap.Version)
	if snap.Changes > 0 {
		fmt.Printf(" (%d changes, severity %s)", snap.Changes, snap.Severity)
	}
	fmt.Println()
	return nil
}

func runList(_ *cobra.Command, _ []string) error {
	store, err := impression.OpenStore(storeDir())
	if err != nil {
		return err
	}
	snapshots, err := store.List()
	if err != nil {
		return err
	}
	current, err := store.Current()
	if err != nil {
		return err
	}
	for _, snap := range snapshots {
		marker := " "
		if current != nil && snap.ID == current.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  v%-8s %s  %s\n", marker, snap.ID, snap.Version, snap.Timestamp, snap.Message)
	}
	return nil
}

func runDiff(_ *cobra.Command, args []string) error {
	store, err := impression.OpenStore(storeDir())
	if err != nil {
		return err
	}
	to := "current"
	if len(args) == 2 {
		to = args[1]
	}
	changes, err := store.Diff(args[0], to)
	if err != nil {
		return err
	}
	r := report.NewReporter(os.Stdout, getBoolWithFallback("color", "color", false))
	r.PrintChanges(changes)
	return nil
}

func runRollback(_ *cobra.Command, args []string) error {
	store, err := impression.OpenStore(storeDir())
	if err != nil {
		return err
	}
	ds, snap, err := store.Rollback(args[0])
	if err != nil {
		return err
	}
	out, err := impression.GenerateImpression(ds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}
	fmt.Printf("Rolled back to %s v%s, wrote %s\n", snap.ID, snap.Version, args[1])
	return nil
}

func runChangelog(_ *cobra.Command, args []string) error {
	store, err := impression.OpenStore(storeDir())
	if err != nil {
		return err
	}
	changelog, err := store.Changelog()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := os.WriteFile(args[0], []byte(changelog), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", args[0], err)
		}
		fmt.Printf("Wrote changelog to %s\n", args[0])
		return nil
	}
	fmt.Print(changelog)
	return nil
}
