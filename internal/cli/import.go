package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/source"
)

// importCommand creates the import command for loading items into a database.
func (c *CLI) importCommand() *cobra.Command {
	var (
		dbPath string
		merge  bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "import [items]",
		Short: "Load an item file into a SQLite or MongoDB store",
		Long: `Load an item file into a SQLite or MongoDB store.

By default the database is replaced with the file's items, after a
confirmation when it already holds items (skip it with --yes). With --merge,
items are upserted by type and id, keeping everything else. MongoDB targets
(--db mongodb://host/db/collection) always append.

The database can then be used anywhere an item file is accepted:

  roadmap layout items.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], dbPath, merge, yes)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "roadmap.db", "target database: SQLite path or mongodb:// URI")
	cmd.Flags().BoolVar(&merge, "merge", false, "upsert instead of replacing the stored items")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace existing items without asking")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, input, dbPath string, merge, yes bool) error {
	if strings.EqualFold(filepath.Ext(input), ".db") {
		return fmt.Errorf("%s is already a database", input)
	}
	recs, err := source.NewFile(input).Records()
	if err != nil {
		return err
	}

	if !merge && !yes && isTerminal(os.Stdin) {
		ok, err := confirmReplace(ctx, dbPath)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Import cancelled")
			return nil
		}
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Storing %d items...", len(recs)))
	spinner.Start()
	n, err := storeRecords(ctx, dbPath, recs, merge)
	if err != nil {
		spinner.StopWithError("Import failed")
		return fmt.Errorf("import into %s: %w", dbPath, err)
	}
	prog.done(fmt.Sprintf("Stored %d items", n))
	spinner.StopWithSuccess(fmt.Sprintf("Imported %d items", n))
	printFile(dbPath)
	printNewline()
	printNextStep("Compute a frame", appName+" layout "+dbPath)
	return nil
}

func storeRecords(ctx context.Context, dbPath string, recs []item.Record, merge bool) (int, error) {
	if strings.HasPrefix(dbPath, "mongodb://") || strings.HasPrefix(dbPath, "mongodb+srv://") {
		m, err := source.ConnectMongo(ctx, dbPath)
		if err != nil {
			return 0, err
		}
		defer m.Close()
		return m.Insert(ctx, recs)
	}

	db, err := source.OpenSQLite(strings.TrimPrefix(dbPath, "sqlite://"))
	if err != nil {
		return 0, err
	}
	defer db.Close()
	if merge {
		return db.Upsert(ctx, recs)
	}
	return db.Replace(ctx, recs)
}

// confirmReplace asks before replacing a SQLite database that already holds
// items. Empty or missing databases and MongoDB targets need no answer.
func confirmReplace(ctx context.Context, dbPath string) (bool, error) {
	path, ok := strings.CutPrefix(dbPath, "sqlite://")
	if !ok && strings.Contains(dbPath, "://") {
		return true, nil
	}
	if _, err := os.Stat(path); err != nil {
		return true, nil
	}
	db, err := source.OpenSQLite(path)
	if err != nil {
		return false, err
	}
	existing, err := db.Records(ctx)
	db.Close()
	if err != nil || len(existing) == 0 {
		return true, err
	}

	confirmed := false
	err = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Replace the %d items in %s?", len(existing), path)).
			Description("Use --merge to upsert instead.").
			Affirmative("Replace").
			Negative("Cancel").
			Value(&confirmed),
	)).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
