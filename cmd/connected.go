package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"conectads/social/internal/social"
)

var connectedJSON bool

var connectedCmd = &cobra.Command{
	Use:   "connected <idA> <idB>",
	Short: "Check whether two users belong to the same network component",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := s.net.CheckConnection(args[0], args[1])
		if err != nil {
			return err
		}
		if connectedJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printConnection(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	connectedCmd.Flags().BoolVar(&connectedJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(connectedCmd)
}

func printConnection(w io.Writer, r *social.ConnectionReport) {
	switch {
	case r.Direct:
		fmt.Fprintf(w, "  %s and %s are friends %s %s\n", r.NameA, r.NameB, stars(r.Quality), r.Label)
	case r.Connected:
		fmt.Fprintf(w, "  %s and %s are connected through a component of %d users\n", r.NameA, r.NameB, r.ComponentSize)
	default:
		fmt.Fprintf(w, "  %s and %s are %s\n", r.NameA, r.NameB, errorStyle.Render("not connected"))
	}
}
