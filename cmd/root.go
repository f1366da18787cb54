package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"conectads/social/internal/config"
	"conectads/social/internal/db"
	"conectads/social/internal/ingest"
	"conectads/social/internal/logging"
	"conectads/social/internal/metrics"
	"conectads/social/internal/social"
)

var (
	cfgFile         string
	profilesPath    string
	connectionsPath string
	dbPath          string
	logLevel        string
	logFormat       string
)

var rootCmd = &cobra.Command{
	Use:           "conecta",
	Short:         "Conecta-DS social network: profiles, friendships and friend suggestions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	pf.StringVar(&profilesPath, "profiles", "", "Profiles CSV loaded at startup (id,name,age,gender)")
	pf.StringVar(&connectionsPath, "connections", "", "Connections CSV loaded at startup (idA,idB,quality)")
	pf.StringVar(&dbPath, "db", "", "SQLite database to load from and persist changes to")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// loadConfig resolves configuration: defaults, then --config file, then
// CONECTA_* environment, then command-line flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if profilesPath != "" {
		cfg.Data.ProfilesPath = profilesPath
	}
	if connectionsPath != "" {
		cfg.Data.ConnectionsPath = connectionsPath
	}
	if dbPath != "" {
		cfg.Data.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg, cfg.Validate()
}

// session is a loaded network plus the optional store backing it
type session struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	net     *social.Network
	store   *db.DB
}

// openSession builds the network and replays every configured source into it:
// the database first, then the profiles CSV, then the connections CSV.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.New(os.Stderr, cfg.Logging)
	m := metrics.New()
	s := &session{
		cfg:     cfg,
		log:     log,
		metrics: m,
		net: social.New(social.Options{
			InitialBuckets:  cfg.Registry.InitialBuckets,
			InitialCapacity: cfg.Index.InitialCapacity,
			Logger:          log,
			Metrics:         m,
		}),
	}

	if cfg.Data.DBPath != "" {
		store, err := db.OpenDB(cfg.Data.DBPath)
		if err != nil {
			return nil, err
		}
		s.store = store
		pr, fr, err := ingest.LoadStore(store, s.net, s.net)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("loading %s: %w", cfg.Data.DBPath, err)
		}
		s.logReport("profiles", cfg.Data.DBPath, pr)
		s.logReport("friendships", cfg.Data.DBPath, fr)
	}

	if cfg.Data.ProfilesPath != "" {
		if err := s.loadProfiles(cfg.Data.ProfilesPath); err != nil {
			s.Close()
			return nil, err
		}
	}
	if cfg.Data.ConnectionsPath != "" {
		if err := s.loadConnections(cfg.Data.ConnectionsPath); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *session) loadProfiles(path string) error {
	report, err := ingest.LoadProfilesFile(path, s)
	if err != nil {
		return err
	}
	s.logReport("profiles", path, report)
	return nil
}

func (s *session) loadConnections(path string) error {
	report, err := ingest.LoadFriendshipsFile(path, s)
	if err != nil {
		return err
	}
	s.logReport("friendships", path, report)
	return nil
}

func (s *session) logReport(kind, source string, r *ingest.Report) {
	for _, e := range r.Errors {
		s.log.Warn("skipped input line", "kind", kind, "source", source, "line", e.Line, "error", e.Err)
	}
	s.log.Info("loaded", "kind", kind, "source", source, "count", r.Loaded, "skipped", r.Failed())
}

// AddProfile creates a profile and persists it when a store is open
func (s *session) AddProfile(id, name string, age int, gender string) error {
	in := social.ProfileInput{ID: id, FullName: name, Age: age, Gender: gender}
	if err := s.net.CreateProfile(in); err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	_, err := s.store.SaveProfile(db.ProfileRow{ID: id, FullName: name, Age: age, Gender: gender})
	return err
}

// AddFriendship establishes a friendship and persists it when a store is open
func (s *session) AddFriendship(a, b string, quality int) error {
	if err := s.net.EstablishFriendship(a, b, quality); err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	return s.store.SaveFriendship(a, b, quality)
}

// warnEphemeral notes that a change only lives for this invocation
func (s *session) warnEphemeral() {
	if s.store == nil {
		s.log.Warn("no --db configured; change is not persisted")
	}
}
