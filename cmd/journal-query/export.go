package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrylee0412/journal-query/internal/session"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export search results to RIS citation files",
	Long: `Export runs a search and writes results to an RIS file. Three modes:

  --page N      export one result page (at the interactive page size)
  --pages A-B   export an inclusive page range, fetched in 200-record
                batches and capped at 2000 records per export
  --all         select every result (up to 2000) and export the selection

Exports past the cap must be split into separate page ranges.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	sess, err := sessionFromFlags(cmd)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = loadConfig().Export.OutputDir
	}

	ctx := context.Background()
	if err := sess.RunSearch(ctx); err != nil {
		return err
	}
	if sess.Phase() == session.PhaseError {
		fmt.Println(sess.ErrorMessage())
		return nil
	}

	switch {
	case cmd.Flags().Changed("pages"):
		spec, _ := cmd.Flags().GetString("pages")
		start, end, err := parsePageRange(spec)
		if err != nil {
			return err
		}
		path, err := sess.ExportPageRange(ctx, start, end, outDir)
		if err != nil {
			return err
		}
		return reportExport(path)

	case cmd.Flags().Changed("all"):
		if err := sess.SelectAllResults(ctx); err != nil {
			return err
		}
		path, err := sess.ExportSelected(outDir)
		if err != nil {
			return err
		}
		return reportExport(path)

	default:
		page, _ := cmd.Flags().GetInt("page")
		if page > 1 {
			if err := sess.ChangePage(ctx, page); err != nil {
				return err
			}
		}
		path, err := sess.ExportCurrentPage(outDir)
		if err != nil {
			return err
		}
		return reportExport(path)
	}
}

func reportExport(path string) error {
	if path == "" {
		fmt.Println("Nothing to export.")
		return nil
	}
	fmt.Println("Exported to", path)
	return nil
}

// parsePageRange parses "A-B" (or a lone "A") into inclusive page bounds.
func parsePageRange(spec string) (int, int, error) {
	start, end := spec, spec
	if i := strings.IndexByte(spec, '-'); i >= 0 {
		start, end = spec[:i], spec[i+1:]
	}
	a, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page range %q", spec)
	}
	b, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page range %q", spec)
	}
	return a, b, nil
}

func init() {
	addSearchFlags(exportCmd)
	exportCmd.Flags().Int("page", 1, "export this result page")
	exportCmd.Flags().String("pages", "", "export an inclusive page range, e.g. 2-4")
	exportCmd.Flags().Bool("all", false, "select all results (up to 2000) and export them")
	exportCmd.Flags().String("out", "", "output directory (default from config)")

	rootCmd.AddCommand(exportCmd)
}
