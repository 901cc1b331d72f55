package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrylee0412/journal-query/internal/journals"
)

var journalsCmd = &cobra.Command{
	Use:   "journals",
	Short: "Preview the journal allow-list under the current filter",
	Long: `Journals prints the allow-list entries passing the filter flags, with the
derived ISSN set that would scope a search. Use it to check a filter before
running expensive queries.`,
	RunE: runJournals,
}

func runJournals(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	list := loadJournals(cfg)

	filter := journals.Filter{}
	filter.Fields, _ = cmd.Flags().GetStringSlice("fields")
	filter.Ranks, _ = cmd.Flags().GetStringSlice("ranks")
	filter.FT50, _ = cmd.Flags().GetBool("ft50")
	filter.UTD24, _ = cmd.Flags().GetBool("utd24")
	if err := filter.Validate(); err != nil {
		return err
	}

	matched := journals.Apply(list, filter)
	issns := journals.ISSNList(matched)

	if issnOnly, _ := cmd.Flags().GetBool("issn"); issnOnly {
		for _, issn := range issns {
			fmt.Println(issn)
		}
		return nil
	}

	if len(matched) == 0 {
		fmt.Println("No journals match the filter.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-60s  %-30s  %-5s  %s\n", "Journal", "Field", "Rank", "ISSN")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, j := range matched {
		title := j.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		field := journals.FieldLabel(j)
		if len(field) > 30 {
			field = field[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-60s  %-30s  %-5s  %s\n", title, field, j.ABSRank, j.ISSN)
	}
	fmt.Fprintf(os.Stdout, "\n%d journals, %d usable ISSNs\n", len(matched), len(issns))
	return nil
}

var journalsFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the research field labels present in the allow-list",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, f := range journals.Fields(loadJournals(loadConfig())) {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	journalsCmd.Flags().StringSlice("fields", nil, "filter by research field label")
	journalsCmd.Flags().StringSlice("ranks", nil, "filter by ABS rank: 4*, 4, 3, 2, 1")
	journalsCmd.Flags().Bool("ft50", false, "restrict to FT50 journals")
	journalsCmd.Flags().Bool("utd24", false, "restrict to UTD24 journals")
	journalsCmd.Flags().Bool("issn", false, "print only the derived ISSN list")

	journalsCmd.AddCommand(journalsFieldsCmd)
	rootCmd.AddCommand(journalsCmd)
}
