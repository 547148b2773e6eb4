package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MohamedAbuthar/gas/core/config"
	"github.com/MohamedAbuthar/gas/core/database"
	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/core/logger"
	"github.com/MohamedAbuthar/gas/feature/dailyupdate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOutDir string
	exportLatest bool
)

// exportCmd writes a stored daily-update batch to a local xlsx file.
var exportCmd = &cobra.Command{
	Use:   "export [batch-id]",
	Short: "Export a daily-update batch to an Excel file",
	Long: `Renders a stored daily-update batch as an xlsx workbook and writes it
to the output directory.

Examples:
  # Export one batch by id
  export 2f1c9a7e-...

  # Export the most recent batch
  export --latest

  # Export into a specific directory
  export --latest --out /tmp/reports`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExport(cmd.Context(), args)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutDir, "out", ".", "directory to write the workbook into")
	exportCmd.Flags().BoolVar(&exportLatest, "latest", false, "export the most recent batch")
	RootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, args []string) {
	if len(args) == 0 && !exportLatest {
		fmt.Println("Provide a batch id or --latest")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}
	store := docstore.NewFromDB(db)

	// Local export only; no object storage archiving and no roster needed.
	svc := dailyupdate.NewService(store, nil, "", nil, logg)

	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	if exportLatest {
		batches, err := svc.List(ctx)
		if err != nil {
			logg.Fatal("Failed to list batches", zap.Error(err))
		}
		if len(batches) == 0 {
			logg.Fatal("No daily-update batches stored")
		}
		id = batches[0].ID
	}

	data, filename, err := svc.Export(ctx, id)
	if err != nil {
		logg.Fatal("Export failed", zap.String("id", id), zap.Error(err))
	}

	out := filepath.Join(exportOutDir, filename)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		logg.Fatal("Failed to write workbook", zap.String("path", out), zap.Error(err))
	}

	fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
}
