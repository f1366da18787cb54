package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"conectads/social/internal/social"
)

var (
	statsJSON    bool
	statsMetrics bool
	statsTopN    int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Network statistics: users, friendships, components, popularity",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		if statsMetrics {
			return s.metrics.WriteText(out)
		}

		summary := s.net.Summarize(statsTopN)
		if statsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}
		printSummary(out, s.net, summary)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsMetrics, "metrics", false, "Dump Prometheus metrics collected while loading")
	statsCmd.Flags().IntVar(&statsTopN, "top-n", 5, "Number of users to show per list")
	rootCmd.AddCommand(statsCmd)
}

func printSummary(w io.Writer, net *social.Network, s *social.Summary) {
	t := s.Topology
	fmt.Fprintf(w, "\n  %s\n", heading("NETWORK"))
	fmt.Fprintln(w, "  ────────────────────────────────────────")
	fmt.Fprintf(w, "  Users: %d  Friendships: %d  Components: %d\n", t.TotalUsers, t.TotalFriendships, t.NumComponents)
	if t.NumComponents > 0 {
		fmt.Fprintf(w, "  Largest component: %d  Smallest: %d\n", t.LargestComponent, t.SmallestComponent)
	}
	fmt.Fprintf(w, "  Average friends per user: %.2f\n", t.AverageFriends)
	if t.MostPopular != "" {
		fmt.Fprintf(w, "  Most popular: %s (%d friends)\n", t.MostPopular, t.MaxFriends)
	}

	if t.FriendlessCount > 0 {
		fmt.Fprintf(w, "  Friendless: %d users\n", t.FriendlessCount)
		for _, id := range t.FriendlessIDs {
			name := "?"
			if p, ok := net.Profile(id); ok {
				name = p.FullName
			}
			fmt.Fprintf(w, "    - %s (%s)\n", id, name)
		}
		if t.FriendlessCount > len(t.FriendlessIDs) {
			fmt.Fprintf(w, "    ... and %d more\n", t.FriendlessCount-len(t.FriendlessIDs))
		}
	}

	if t.TotalUsers > 0 {
		fmt.Fprintln(w, "\n  Friend-count distribution:")
		for _, b := range t.DegreeHistogram {
			if b.Count > 0 {
				fmt.Fprintf(w, "    %5s: %4d  %s\n", b.Label, b.Count, bar(b.Count, t.TotalUsers, 20))
			}
		}
	}

	if len(t.Popular) > 0 {
		fmt.Fprintln(w, "\n  Most connected:")
		for _, p := range t.Popular {
			fmt.Fprintf(w, "    %-24s %d\n", p.Name, p.FriendCount)
		}
	}

	r := s.Registry
	fmt.Fprintf(w, "\n  %s\n", heading("REGISTRY"))
	fmt.Fprintln(w, "  ────────────────────────────────────────")
	fmt.Fprintf(w, "  Buckets: %d  Entries: %d  Load factor: %.2f\n", r.BucketCount, r.Size, r.LoadFactor)
	fmt.Fprintf(w, "  Used buckets: %d  Longest chain: %d\n", r.NonEmptyBuckets, r.MaxChainLength)
	fmt.Fprintf(w, "  Registered in connectivity index: %d\n\n", s.RegisteredUsers)
}
