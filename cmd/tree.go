package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"conectads/social/internal/social"
)

var treeJSON bool

var treeCmd = &cobra.Command{
	Use:   "tree <id>",
	Short: "Show the path from a user to the root of its component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		tree, ok := s.net.Tree(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", social.ErrProfileNotFound, args[0])
		}
		if treeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tree)
		}
		printTree(cmd.OutOrStdout(), s.net, tree)
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(treeCmd)
}

func printTree(w io.Writer, net *social.Network, t *social.Tree) {
	names := make([]string, len(t.Path))
	for i, id := range t.Path {
		names[i] = id
		if p, ok := net.Profile(id); ok {
			names[i] = p.FullName
		}
	}
	fmt.Fprintf(w, "\n  %s\n", heading("Component tree for "+names[0]))
	fmt.Fprintf(w, "  %s %s\n", strings.Join(names, " → "), dimStyle.Render("(root)"))
	fmt.Fprintf(w, "  component size: %d\n\n", t.ComponentSize)
}
