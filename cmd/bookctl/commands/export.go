package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/pkg/container"
	"bookreview-backend/pkg/logger"
)

var (
	// Export flags
	outFile      string
	filterAuthor string
	filterGenre  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export books with review statistics to an Excel file",
	Long: `Export books, their review count and average rating to an .xlsx file.

Examples:
  bookctl export --out books.xlsx
  bookctl export --out herbert.xlsx --author "Frank Herbert"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context())
	},
}

func init() {
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "books.xlsx", "Output file")
	exportCmd.Flags().StringVar(&filterAuthor, "author", "", "Only books by this author (exact match)")
	exportCmd.Flags().StringVar(&filterGenre, "genre", "", "Only books in this genre (exact match)")
}

func runExport(ctx context.Context) error {
	app, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	f, err := app.BookService.ExportBooks(ctx, model.BookFilter{
		Author: filterAuthor,
		Genre:  filterGenre,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("close export workbook", err)
		}
	}()

	if err := f.SaveAs(outFile); err != nil {
		return fmt.Errorf("save %s: %w", outFile, err)
	}

	fmt.Printf("Exported books to %s\n", outFile)
	return nil
}
