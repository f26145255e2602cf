package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go-portfolio-app/internal/admin"
	"go-portfolio-app/internal/auth"
	"go-portfolio-app/internal/config"
	"go-portfolio-app/internal/logger"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	settingsPath string
	baseURLFlag  string
	apiKeyFlag   string
	tokenFlag    string
	verboseFlag  bool
)

// settings resolves the settings file and applies flag overrides.
func settings() (admin.Settings, string, error) {
	path := settingsPath
	if path == "" {
		p, err := admin.DefaultSettingsPath()
		if err != nil {
			return admin.Settings{}, "", err
		}
		path = p
	}
	s, err := admin.LoadSettings(path)
	if err != nil {
		return admin.Settings{}, "", err
	}
	if baseURLFlag != "" {
		s.BaseURL = baseURLFlag
	}
	if apiKeyFlag != "" {
		s.APIKey = apiKeyFlag
	}
	if tokenFlag != "" {
		s.Token = tokenFlag
	}
	return s, path, nil
}

func newClient(s admin.Settings) *admin.Client {
	return admin.NewClient(s.BaseURL, admin.WithAPIKey(s.APIKey), admin.WithToken(s.Token))
}

func newLogger() logger.Logger {
	level := "warn"
	if verboseFlag {
		level = "debug"
	}
	return logger.New(config.LogConfig{Level: level, Format: "console", Service: "portfolio-admin"}, os.Stderr)
}

// newManager builds a Manager and loads the collections.
func newManager(ctx context.Context, confirm admin.Confirmer) (*admin.Manager, error) {
	s, _, err := settings()
	if err != nil {
		return nil, err
	}
	m := admin.NewManager(newClient(s), confirm, newLogger())
	if err := m.LoadAll(ctx); err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return m, nil
}

// readSecret reads a line from the terminal without echo, or from stdin when
// it is not a terminal.
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var rootCmd = &cobra.Command{
	Use:          "portfolio-admin",
	Short:        "Manage portfolio content through the admin API",
	SilenceUsage: true,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange the admin password for a token and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, path, err := settings()
		if err != nil {
			return err
		}
		password, err := readSecret("Admin password: ")
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		token, expires, err := admin.NewClient(s.BaseURL).Token(cmd.Context(), password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		s.Token = token
		if err := admin.SaveSettings(path, s); err != nil {
			return err
		}
		fmt.Printf("Logged in to %s until %s\n", s.BaseURL, expires.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for auth.admin_password_hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readSecret("Password: ")
		if err != nil {
			return err
		}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			again, err := readSecret("Repeat password: ")
			if err != nil {
				return err
			}
			if again != password {
				return errors.New("passwords do not match")
			}
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List projects, blogs, skills and subscribers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := []admin.Kind{admin.KindProject, admin.KindBlog, admin.KindSkill, admin.KindSubscriber}
		if len(args) == 1 {
			k, err := admin.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []admin.Kind{k}
		}
		m, err := newManager(cmd.Context(), nil)
		if err != nil {
			return err
		}
		state := m.State()
		for i, k := range kinds {
			if i > 0 {
				fmt.Println()
			}
			printCollection(os.Stdout, k, state)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show newsletter statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd.Context(), nil)
		if err != nil {
			return err
		}
		st := m.State().Stats
		fmt.Printf("Total subscribers:      %d\n", st.TotalSubscribers)
		fmt.Printf("Active subscribers:     %d\n", st.ActiveSubscribers)
		fmt.Printf("Recent (last 30 days):  %d\n", st.RecentSubscriptions)
		return nil
	},
}

var templateCmd = &cobra.Command{
	Use:   "template <kind> [id]",
	Short: "Print a blank or existing edit buffer as JSON",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := admin.ParseKind(args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			buf, err := blankBuffer(kind)
			if err != nil {
				return err
			}
			return writeJSON(os.Stdout, buf)
		}

		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}
		m, err := newManager(cmd.Context(), nil)
		if err != nil {
			return err
		}
		buf, err := existingBuffer(m.State(), kind, id)
		if err != nil {
			return err
		}
		return writeJSON(os.Stdout, buf)
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <kind>",
	Short: "Create or update an entity from a JSON edit buffer",
	Long:  "Reads an edit buffer (see 'template') from --file or stdin. A buffer without an id is created, one with an id is updated.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := admin.ParseKind(args[0])
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")
		in := io.Reader(os.Stdin)
		if file != "" && file != "-" {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		m, err := newManager(cmd.Context(), nil)
		if err != nil {
			return err
		}
		if err := beginEdit(m, kind, in); err != nil {
			return err
		}
		err = m.Save(cmd.Context(), kind)
		fmt.Println(m.LastResult())
		return err
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete an entity after confirmation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := admin.ParseKind(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}
		yes, _ := cmd.Flags().GetBool("yes")

		var confirm admin.Confirmer = admin.Decline
		switch {
		case yes:
			confirm = admin.Accept
		case term.IsTerminal(int(os.Stdin.Fd())):
			confirm = admin.PromptConfirmer{In: os.Stdin, Out: os.Stderr}
		}

		m, err := newManager(cmd.Context(), confirm)
		if err != nil {
			return err
		}
		err = m.Delete(cmd.Context(), kind, id)
		fmt.Println(m.LastResult())
		return err
	},
}

func blankBuffer(kind admin.Kind) (interface{}, error) {
	switch kind {
	case admin.KindProject:
		return admin.BlankProject(), nil
	case admin.KindBlog:
		return admin.BlankBlogPost(), nil
	case admin.KindSkill:
		return admin.BlankSkill(), nil
	}
	return nil, admin.ErrReadOnly
}

func existingBuffer(s admin.State, kind admin.Kind, id int64) (interface{}, error) {
	switch kind {
	case admin.KindProject:
		for _, p := range s.Projects {
			if p.ID == id {
				return p.ToInput(), nil
			}
		}
	case admin.KindBlog:
		for _, b := range s.Blogs {
			if b.ID == id {
				return b.ToInput(), nil
			}
		}
	case admin.KindSkill:
		for _, sk := range s.Skills {
			if sk.ID == id {
				return sk.ToInput(), nil
			}
		}
	default:
		return nil, admin.ErrReadOnly
	}
	return nil, fmt.Errorf("%s #%d not found", kind, id)
}

// beginEdit decodes a JSON edit buffer for kind and opens it on m.
func beginEdit(m *admin.Manager, kind admin.Kind, r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	switch kind {
	case admin.KindProject:
		in := admin.BlankProject()
		if err := dec.Decode(&in); err != nil {
			return fmt.Errorf("decoding project: %w", err)
		}
		m.BeginProjectEdit(in)
	case admin.KindBlog:
		in := admin.BlankBlogPost()
		if err := dec.Decode(&in); err != nil {
			return fmt.Errorf("decoding blog post: %w", err)
		}
		m.BeginBlogEdit(in)
	case admin.KindSkill:
		in := admin.BlankSkill()
		if err := dec.Decode(&in); err != nil {
			return fmt.Errorf("decoding skill: %w", err)
		}
		m.BeginSkillEdit(in)
	default:
		return admin.ErrReadOnly
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "settings file (default is the user config dir)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "url", "", "API base URL")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "admin API key")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "bearer token")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output")

	saveCmd.Flags().StringP("file", "f", "", "read the edit buffer from a file instead of stdin")
	deleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(loginCmd, hashPasswordCmd, listCmd, statsCmd, templateCmd, saveCmd, deleteCmd)
}
