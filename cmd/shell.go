package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"conectads/social/internal/suggest"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive menu over a loaded network",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		sh := &shell{
			s:   s,
			in:  bufio.NewScanner(cmd.InOrStdin()),
			out: cmd.OutOrStdout(),
		}
		return sh.run()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const menu = `
  1. Create profile
  2. Find profile
  3. Establish friendship
  4. Suggest friends
  5. Check connection
  6. Show statistics
  7. Load profiles from file
  8. Load connections from file
  9. Show user tree
  0. Exit
`

type shell struct {
	s   *session
	in  *bufio.Scanner
	out io.Writer
}

// ask prints a prompt and reads one trimmed line; ok is false at end of input
func (sh *shell) ask(prompt string) (string, bool) {
	fmt.Fprintf(sh.out, "%s: ", prompt)
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

// askInt reads a number; an empty answer yields def
func (sh *shell) askInt(prompt string, def int) (int, bool, error) {
	line, ok := sh.ask(prompt)
	if !ok {
		return 0, false, nil
	}
	if line == "" {
		return def, true, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, true, fmt.Errorf("not a number: %q", line)
	}
	return n, true, nil
}

func (sh *shell) fail(err error) {
	fmt.Fprintf(sh.out, "  %s\n", errorStyle.Render(err.Error()))
}

func (sh *shell) run() error {
	for {
		fmt.Fprintf(sh.out, "\n  %s\n%s", heading("MAIN MENU"), menu)
		choice, ok := sh.ask("\nSelect an option")
		if !ok {
			return sh.in.Err()
		}

		var more bool
		var err error
		switch choice {
		case "1":
			more, err = sh.createProfile()
		case "2":
			more, err = sh.findProfile()
		case "3":
			more, err = sh.befriend()
		case "4":
			more, err = sh.suggest()
		case "5":
			more, err = sh.checkConnection()
		case "6":
			printSummary(sh.out, sh.s.net, sh.s.net.Summarize(5))
			more = true
		case "7":
			more, err = sh.load(sh.s.loadProfiles)
		case "8":
			more, err = sh.load(sh.s.loadConnections)
		case "9":
			more, err = sh.tree()
		case "0":
			fmt.Fprintln(sh.out, "\n  Thanks for using Conecta-DS!")
			return nil
		default:
			fmt.Fprintln(sh.out, "  Invalid option, try again.")
			more = true
		}
		if err != nil {
			sh.fail(err)
		}
		if !more {
			return sh.in.Err()
		}
	}
}

func (sh *shell) createProfile() (bool, error) {
	id, ok := sh.ask("ID (empty for a random one)")
	if !ok {
		return false, nil
	}
	if id == "" {
		id = uuid.NewString()
	}
	name, ok := sh.ask("Full name")
	if !ok {
		return false, nil
	}
	age, ok, err := sh.askInt("Age", 0)
	if !ok || err != nil {
		return ok, err
	}
	gender, ok := sh.ask("Gender")
	if !ok {
		return false, nil
	}
	if err := sh.s.AddProfile(id, name, age, strings.ToUpper(gender)); err != nil {
		return true, err
	}
	fmt.Fprintf(sh.out, "  %s %s (%s)\n", okStyle.Render("created"), name, id)
	return true, nil
}

func (sh *shell) findProfile() (bool, error) {
	id, ok := sh.ask("ID")
	if !ok {
		return false, nil
	}
	v, found := sh.s.net.View(id)
	if !found {
		fmt.Fprintf(sh.out, "  no profile with ID %s\n", id)
		return true, nil
	}
	printProfile(sh.out, v)
	return true, nil
}

func (sh *shell) befriend() (bool, error) {
	a, ok := sh.ask("First user ID")
	if !ok {
		return false, nil
	}
	b, ok := sh.ask("Second user ID")
	if !ok {
		return false, nil
	}
	q, ok, err := sh.askInt("Quality (1-5)", 0)
	if !ok || err != nil {
		return ok, err
	}
	if err := sh.s.AddFriendship(a, b, q); err != nil {
		return true, err
	}
	fmt.Fprintf(sh.out, "  %s %s - %s %s\n", okStyle.Render("friends"), a, b, stars(q))
	return true, nil
}

func (sh *shell) suggest() (bool, error) {
	id, ok := sh.ask("User ID")
	if !ok {
		return false, nil
	}
	if _, found := sh.s.net.Profile(id); !found {
		fmt.Fprintf(sh.out, "  no profile with ID %s\n", id)
		return true, nil
	}
	gender, ok := sh.ask("Gender filter (empty for any)")
	if !ok {
		return false, nil
	}
	minAge, ok, err := sh.askInt("Minimum age (empty for none)", 0)
	if !ok || err != nil {
		return ok, err
	}
	maxAge, ok, err := sh.askInt("Maximum age (empty for none)", 0)
	if !ok || err != nil {
		return ok, err
	}
	top, ok, err := sh.askInt("How many (empty for all)", 0)
	if !ok || err != nil {
		return ok, err
	}
	filter := suggest.Filter{Gender: gender, MinAge: minAge, MaxAge: maxAge}
	printSuggestions(sh.out, id, runSuggest(sh.s.net, id, filter, top))
	return true, nil
}

func (sh *shell) checkConnection() (bool, error) {
	a, ok := sh.ask("First user ID")
	if !ok {
		return false, nil
	}
	b, ok := sh.ask("Second user ID")
	if !ok {
		return false, nil
	}
	report, err := sh.s.net.CheckConnection(a, b)
	if err != nil {
		return true, err
	}
	printConnection(sh.out, report)
	return true, nil
}

func (sh *shell) load(fn func(path string) error) (bool, error) {
	path, ok := sh.ask("File path")
	if !ok {
		return false, nil
	}
	if err := fn(path); err != nil {
		return true, err
	}
	fmt.Fprintf(sh.out, "  %s %s\n", okStyle.Render("loaded"), path)
	return true, nil
}

func (sh *shell) tree() (bool, error) {
	id, ok := sh.ask("User ID")
	if !ok {
		return false, nil
	}
	t, found := sh.s.net.Tree(id)
	if !found {
		fmt.Fprintf(sh.out, "  no profile with ID %s\n", id)
		return true, nil
	}
	printTree(sh.out, sh.s.net, t)
	return true, nil
}
