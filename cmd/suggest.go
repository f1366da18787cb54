package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"conectads/social/internal/social"
	"conectads/social/internal/suggest"
)

var (
	suggestTop    int
	suggestGender string
	suggestMinAge int
	suggestMaxAge int
	suggestJSON   bool
)

// suggestionView is the printable form of a suggestion
type suggestionView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Priority int    `json:"priority"`
	Label    string `json:"label"`
	Via      string `json:"via"`
	ViaID    string `json:"via_id"`
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <id>",
	Short: "Suggest friends of friends, ranked by the quality of the shared friendship",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if _, ok := s.net.Profile(args[0]); !ok {
			return fmt.Errorf("%w: %s", social.ErrProfileNotFound, args[0])
		}

		filter := suggest.Filter{Gender: suggestGender, MinAge: suggestMinAge, MaxAge: suggestMaxAge}
		results := runSuggest(s.net, args[0], filter, suggestTop)

		if suggestJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(toViews(results))
		}
		printSuggestions(cmd.OutOrStdout(), args[0], results)
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVar(&suggestTop, "top", 0, "Show at most N suggestions (0 = all)")
	suggestCmd.Flags().StringVar(&suggestGender, "gender", "", "Only suggest this gender (case-insensitive)")
	suggestCmd.Flags().IntVar(&suggestMinAge, "min-age", 0, "Minimum age (0 = no bound)")
	suggestCmd.Flags().IntVar(&suggestMaxAge, "max-age", 0, "Maximum age (0 = no bound)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(net *social.Network, id string, filter suggest.Filter, top int) []suggest.Suggestion {
	if filter.IsZero() && top > 0 {
		return net.TopSuggestions(id, top)
	}
	results := net.Suggest(id, filter)
	if top > 0 && len(results) > top {
		results = results[:top]
	}
	return results
}

func toViews(results []suggest.Suggestion) []suggestionView {
	views := make([]suggestionView, len(results))
	for i, r := range results {
		views[i] = suggestionView{
			ID:       r.Profile.ID,
			Name:     r.Profile.FullName,
			Age:      r.Profile.Age,
			Gender:   r.Profile.Gender,
			Priority: r.Priority,
			Label:    social.QualityLabel(r.Priority),
			Via:      r.Via,
			ViaID:    r.ViaID,
		}
	}
	return views
}

func printSuggestions(w io.Writer, id string, results []suggest.Suggestion) {
	fmt.Fprintf(w, "\n  %s\n", heading(fmt.Sprintf("Suggestions for %s (%d)", id, len(results))))
	if len(results) == 0 {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("no suggestions"))
		return
	}
	for i, r := range results {
		fmt.Fprintf(w, "  %2d. %s %-24s %d, %s  %s\n",
			i+1, stars(r.Priority), r.Profile.FullName, r.Profile.Age, r.Profile.Gender,
			dimStyle.Render("via "+r.Via))
	}
	fmt.Fprintln(w)
}
