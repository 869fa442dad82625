package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fabsheet/services"
)

// newConvertCmd builds the offline converter: one measurement file in,
// one cutting sheet out, no server and no database involved.
func newConvertCmd() *cobra.Command {
	var (
		outPath string
		title   string
		owner   string
		site    string
		phone   string
	)

	cmd := &cobra.Command{
		Use:   "convert <measurements.csv|measurements.xlsx>",
		Short: "Convert a measurement file into a cutting sheet",
		Long: "Reads a .csv or .xlsx measurement file (same columns as the import\n" +
			"template) and writes the computed cutting sheet. The output format\n" +
			"follows the -o extension: .xlsx or .pdf.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath := args[0]
			f, err := os.Open(inPath)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			result, err := services.ValidateMeasurementFile(f, filepath.Base(inPath))
			if err != nil {
				return fmt.Errorf("parse input: %w", err)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: row %d, %s: %s\n", w.Row, w.Field, w.Message)
			}

			batch := services.Process(result.Rows)
			meta := services.SheetMeta{
				Title:       title,
				OwnerName:   owner,
				SiteAddress: site,
				Phone:       phone,
				CompanyName: os.Getenv("FABSHEET_COMPANY_NAME"),
				CreatedDate: time.Now().Format("02 Jan 2006"),
			}
			data := services.BuildSheetData(meta, batch)

			if outPath == "" {
				outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + "_sheet.xlsx"
			}

			var out []byte
			switch strings.ToLower(filepath.Ext(outPath)) {
			case ".xlsx":
				out, err = services.GenerateExcel(data)
			case ".pdf":
				out, err = services.GeneratePDF(data)
			default:
				return fmt.Errorf("unsupported output extension %q (use .xlsx or .pdf)", filepath.Ext(outPath))
			}
			if err != nil {
				return fmt.Errorf("generate sheet: %w", err)
			}

			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows, %.3f Sf total)\n",
				outPath, len(batch.Rows), batch.TotalAreaSqft)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (.xlsx or .pdf, default <input>_sheet.xlsx)")
	cmd.Flags().StringVar(&title, "title", "Cutting Sheet", "sheet title")
	cmd.Flags().StringVar(&owner, "owner", "", "owner name printed on the sheet")
	cmd.Flags().StringVar(&site, "site", "", "site address printed on the sheet")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone printed on the sheet")

	return cmd
}
