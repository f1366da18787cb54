package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"conectads/social/internal/social"
)

var befriendCmd = &cobra.Command{
	Use:   "befriend <idA> <idB> <quality>",
	Short: "Establish a friendship of quality 1-5 between two users",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		quality, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quality must be a number: %q", args[2])
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.AddFriendship(args[0], args[1], quality); err != nil {
			return err
		}
		s.warnEphemeral()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s - %s %s %s\n",
			okStyle.Render("friends"), args[0], args[1], stars(quality), social.QualityLabel(quality))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(befriendCmd)
}
