package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verdantloop/chronogarden/internal/config"
	"github.com/verdantloop/chronogarden/internal/persistence"
)

func newExportCmd() *cobra.Command {
	var (
		slot string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a save slot as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := persistence.Open(cfg.SaveDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			state, err := store.Load(context.Background(), slot)
			if err != nil {
				return err
			}
			raw, err := persistence.Export(state)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			return os.WriteFile(out, raw, 0o644)
		},
	}
	cmd.Flags().StringVar(&slot, "slot", persistence.DefaultSlot, "save slot to export")
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file, - for stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	var slot string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON snapshot into a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			state, err := persistence.Import(raw)
			if err != nil {
				return err
			}
			store, err := persistence.Open(cfg.SaveDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Save(context.Background(), slot, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s's garden into slot %q\n", state.PlayerName, slot)
			return nil
		},
	}
	cmd.Flags().StringVar(&slot, "slot", persistence.DefaultSlot, "save slot to import into")
	return cmd
}

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := persistence.Open(cfg.SaveDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			slots, err := store.Slots(context.Background())
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saves yet")
				return nil
			}
			for _, info := range slots {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s v%d  %s\n",
					info.Slot, info.Version, info.SavedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}
