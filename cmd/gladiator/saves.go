package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arenalabs/gladiator/internal/repositories/save"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage save slots",
	Long:  `Inspect, export, import, and delete save slots. Exports are portable JSON blobs; imports are validated before anything is overwritten.`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all save slots",
	RunE:  runSavesList,
}

var savesExportCmd = &cobra.Command{
	Use:   "export <slot> [file]",
	Short: "Export a slot to a file or stdout",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSavesExport,
}

var savesImportCmd = &cobra.Command{
	Use:   "import <slot> <file>",
	Short: "Import an exported blob into a slot",
	Args:  cobra.ExactArgs(2),
	RunE:  runSavesImport,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Clear a named slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesExportCmd)
	savesCmd.AddCommand(savesImportCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSavesList(cmd *cobra.Command, args []string) error {
	setupLogging()
	repo, err := newRepository()
	if err != nil {
		return err
	}

	out, err := repo.ListSlots(cmd.Context(), save.ListSlotsInput{})
	if err != nil {
		return fmt.Errorf("failed to list slots: %w", err)
	}

	for _, slot := range out.Slots {
		if !slot.HasData {
			fmt.Printf("%-10s (empty)\n", slot.SlotID)
			continue
		}
		when := time.Unix(slot.Timestamp, 0).Format("2006-01-02 15:04")
		fmt.Printf("%-10s %s — level %d, %d gold, in %s (%s)\n",
			slot.SlotID, slot.Name, slot.Level, slot.Gold, slot.City, when)
	}
	return nil
}

func runSavesExport(cmd *cobra.Command, args []string) error {
	setupLogging()
	repo, err := newRepository()
	if err != nil {
		return err
	}

	out, err := repo.Export(cmd.Context(), save.ExportInput{SlotID: args[0]})
	if err != nil {
		return fmt.Errorf("failed to export slot %s: %w", args[0], err)
	}
	if out.Data == nil {
		return fmt.Errorf("slot %s is empty", args[0])
	}

	if len(args) == 1 {
		_, err = os.Stdout.Write(out.Data)
		return err
	}
	if err := os.WriteFile(args[1], out.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[1], err)
	}
	fmt.Printf("Exported %s to %s\n", args[0], args[1])
	return nil
}

func runSavesImport(cmd *cobra.Command, args []string) error {
	setupLogging()
	repo, err := newRepository()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	out, err := repo.Import(cmd.Context(), save.ImportInput{SlotID: args[0], Data: data})
	if err != nil {
		return fmt.Errorf("failed to import into slot %s: %w", args[0], err)
	}

	fmt.Printf("Imported %s into %s (schema v%d)\n", out.Record.Character.Name, args[0], out.Record.SchemaVersion)
	return nil
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	setupLogging()
	repo, err := newRepository()
	if err != nil {
		return err
	}

	if _, err := repo.Delete(cmd.Context(), save.DeleteInput{SlotID: args[0]}); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", args[0], err)
	}
	fmt.Printf("Cleared %s\n", args[0])
	return nil
}
