package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrylee0412/journal-query/internal/journals"
	"github.com/harrylee0412/journal-query/internal/session"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search OpenAlex works scoped to the filtered journal list",
	Long: `Search runs one OpenAlex works query scoped to the ISSNs of the journals
passing the current filter. Keywords use OpenAlex search syntax, e.g.
"artificial intelligence" OR "machine learning". Year bounds are inclusive.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	sess, err := sessionFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := sess.RunSearch(ctx); err != nil {
		return err
	}
	if sess.Phase() == session.PhaseError {
		fmt.Println(sess.ErrorMessage())
		return nil
	}

	if page, _ := cmd.Flags().GetInt("page"); page > 1 {
		if err := sess.ChangePage(ctx, page); err != nil {
			return err
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := writeWorksJSON(os.Stdout, sess.Works()); err != nil {
			return err
		}
	} else {
		writeWorksTable(os.Stdout, sess.Works(), sess.TotalCount(), sess.CurrentPage(), sess.TotalPages())
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := sess.WriteQueryFile(save); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", save)
	}
	return nil
}

// addSearchFlags registers the flags shared by search and export.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("keywords", "", "free-text keywords (OpenAlex search syntax)")
	cmd.Flags().StringSlice("fields", nil, "filter journals by research field label")
	cmd.Flags().StringSlice("ranks", nil, "filter journals by ABS rank: 4*, 4, 3, 2, 1")
	cmd.Flags().Bool("ft50", false, "restrict to FT50 journals (unions with --utd24)")
	cmd.Flags().Bool("utd24", false, "restrict to UTD24 journals (unions with --ft50)")
	cmd.Flags().String("from", "", "publication year lower bound (YYYY, inclusive)")
	cmd.Flags().String("to", "", "publication year upper bound (YYYY, inclusive)")
	cmd.Flags().String("sort", "", "sort order: cited_by_count:desc, publication_date:desc, publication_date:asc, display_name:asc")
	cmd.Flags().Int("page-size", 0, "results per page: 20, 30, 40, 50")
	cmd.Flags().String("load", "", "load filter and query from a saved query file")
}

// sessionFromFlags builds a Session and applies the shared search flags.
// A --load file is applied first; explicit flags override it.
func sessionFromFlags(cmd *cobra.Command) (*session.Session, error) {
	cfg := loadConfig()
	sess := newSession(cfg, openCache(cfg))

	filter := journals.Filter{}
	keywords := ""
	yearFrom, yearTo := "", ""

	if load, _ := cmd.Flags().GetString("load"); load != "" {
		qf, err := session.ReadQueryFile(load)
		if err != nil {
			return nil, err
		}
		filter = qf.Filter.ToFilter()
		keywords = qf.Query.Keywords
		yearFrom, yearTo = qf.Query.YearFrom, qf.Query.YearTo
		if qf.Query.Sort != "" {
			if err := sess.ChangeSort(context.Background(), qf.Query.Sort); err != nil {
				return nil, err
			}
		}
		if qf.Query.PageSize != 0 {
			if err := sess.ChangePageSize(context.Background(), qf.Query.PageSize); err != nil {
				return nil, err
			}
		}
	}

	if cmd.Flags().Changed("fields") {
		filter.Fields, _ = cmd.Flags().GetStringSlice("fields")
	}
	if cmd.Flags().Changed("ranks") {
		filter.Ranks, _ = cmd.Flags().GetStringSlice("ranks")
	}
	if cmd.Flags().Changed("ft50") {
		filter.FT50, _ = cmd.Flags().GetBool("ft50")
	}
	if cmd.Flags().Changed("utd24") {
		filter.UTD24, _ = cmd.Flags().GetBool("utd24")
	}
	if cmd.Flags().Changed("keywords") {
		keywords, _ = cmd.Flags().GetString("keywords")
	}
	if cmd.Flags().Changed("from") {
		yearFrom, _ = cmd.Flags().GetString("from")
	}
	if cmd.Flags().Changed("to") {
		yearTo, _ = cmd.Flags().GetString("to")
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}
	sess.ApplyFilter(filter)
	sess.SetKeywords(keywords)
	sess.SetYearRange(yearFrom, yearTo)

	if sortBy, _ := cmd.Flags().GetString("sort"); sortBy != "" {
		if err := sess.ChangeSort(context.Background(), sortBy); err != nil {
			return nil, err
		}
	}
	if size, _ := cmd.Flags().GetInt("page-size"); size != 0 {
		if err := sess.ChangePageSize(context.Background(), size); err != nil {
			return nil, err
		}
	}

	return sess, nil
}

func init() {
	addSearchFlags(searchCmd)
	searchCmd.Flags().Int("page", 1, "result page to show")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")

	rootCmd.AddCommand(searchCmd)
}
