package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tour/app/components"
	"github.com/vango-dev/tour/internal/config"
	"github.com/vango-dev/tour/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
)

// globalOptions are flags shared by every command.
type globalOptions struct {
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "tour",
		Short: "A server-driven tour of reactive widgets",
		Long: `tour serves a small set of reactive widgets: a counter with
progress bars, static and keyed dynamic lists, and a form with a
controlled and an uncontrolled input.

State lives on the server. The browser receives HTML on the first
request, then DOM patches over a WebSocket after every event.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to tour.yaml (default: ./tour.yaml if present)")

	rootCmd.AddCommand(
		serveCmd(opts),
		renderCmd(opts),
		rootsCmd(),
		publishCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the config file and the environment. Flags are applied
// by each command afterwards.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// lookupRoot resolves a root by name with a suggestion on typos.
func lookupRoot(name string) (components.Root, error) {
	r, ok := components.Lookup(name)
	if !ok {
		return components.Root{}, errors.UnknownRoot(name, components.Names())
	}
	return r, nil
}

// printError prints err, formatted with its code when it has one.
func printError(w io.Writer, err error) {
	if code := errors.Classify(err); code != "" {
		err = errors.FromError(err, code)
	}
	errors.Fprint(w, err)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}
