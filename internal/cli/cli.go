package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/penman/pkg/buildinfo"
	"github.com/matzehuels/penman/pkg/cache"
	"github.com/matzehuels/penman/pkg/config"
	"github.com/matzehuels/penman/pkg/httputil"
	"github.com/matzehuels/penman/pkg/translate"
)

const (
	// appName names the cache and config directories.
	appName = "penman"

	// defaultServer is the API base URL used by account and remote commands.
	defaultServer = "http://localhost:5000"
)

// Levels accepted by New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the logger and global flags shared by every command.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the level after flags are parsed.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the penman command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Penman translates text and renders it as handwriting",
		Long:         `Penman relays translations through MyMemory, renders text onto a handwriting canvas and paginates the result into PNG or PDF. It also runs the penman HTTP API.`,
		Version:      buildinfo.Current(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file (default $"+config.EnvFile+")")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.translateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.accountCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRelay creates a MyMemory relay backed by the local file cache.
func (c *CLI) newRelay(cfg config.Config, noCache bool) (*translate.Relay, error) {
	fc, err := newCache(cfg.Cache.Dir)
	if err != nil {
		return nil, err
	}
	provider := translate.NewMyMemory(translate.MyMemoryConfig{
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.Provider.Timeout.Std(),
		Email:   cfg.Provider.Email,
	})
	return translate.NewRelay(provider, translate.RelayOptions{
		Cache:    fc,
		CacheTTL: cfg.Cache.TTL.Std(),
		Policy:   providerPolicy(cfg.Provider),
		Logger:   c.Logger,
		NoCache:  noCache,
	}), nil
}

func providerPolicy(p config.ProviderConfig) httputil.Policy {
	return httputil.Policy{Attempts: p.Attempts, Delay: p.Backoff.Std()}
}

// newCache opens the translation file cache in dir, or the XDG cache
// directory when dir is empty. A missing home directory disables caching.
func newCache(dir string) (cache.Cache, error) {
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/penman/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
