package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"conectads/social/internal/social"
)

var (
	profileID     string
	profileName   string
	profileAge    int
	profileGender string
	profileJSON   bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create and inspect profiles",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a profile (a random ID is generated when --id is omitted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		id := profileID
		if id == "" {
			id = uuid.NewString()
		}
		if err := s.AddProfile(id, profileName, profileAge, strings.ToUpper(profileGender)); err != nil {
			return err
		}
		s.warnEphemeral()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", okStyle.Render("created"), profileName, id)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a profile and its friends",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		v, ok := s.net.View(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", social.ErrProfileNotFound, args[0])
		}
		if profileJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}
		printProfile(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	profileCreateCmd.Flags().StringVar(&profileID, "id", "", "Unique user ID")
	profileCreateCmd.Flags().StringVar(&profileName, "name", "", "Full name")
	profileCreateCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileCreateCmd.Flags().StringVar(&profileGender, "gender", "", "Gender (e.g. M, F)")
	profileCreateCmd.MarkFlagRequired("name")
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output as JSON")

	profileCmd.AddCommand(profileCreateCmd, profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

func printProfile(w io.Writer, v *social.ProfileView) {
	fmt.Fprintf(w, "\n  %s\n", heading(v.Name))
	fmt.Fprintf(w, "  id: %s  age: %d  gender: %s\n", v.ID, v.Age, v.Gender)
	if len(v.Friends) == 0 {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("no friends yet"))
		return
	}
	fmt.Fprintf(w, "\n  Friends (%d):\n", len(v.Friends))
	for _, f := range v.Friends {
		fmt.Fprintf(w, "    %s %-24s %s\n", stars(f.Quality), f.Name, dimStyle.Render(f.Label))
	}
	fmt.Fprintln(w)
}
