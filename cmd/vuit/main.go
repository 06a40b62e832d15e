package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vuit/vuit/internal/config"
	"github.com/vuit/vuit/internal/deps"
	"github.com/vuit/vuit/internal/match"
	"github.com/vuit/vuit/internal/recent"
	"github.com/vuit/vuit/internal/search"
	"github.com/vuit/vuit/internal/shell"
	"github.com/vuit/vuit/internal/term"
	"github.com/vuit/vuit/internal/tui"
	"github.com/vuit/vuit/pkg/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vuit",
	Short: "Vim User Interface Terminal - a buffer manager for vim",
	RunE:  runRoot,
}

func init() {
	rootCmd.Version = version.Version
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, cfgErr := config.Load()
	configWarn := ""
	if cfgErr != nil {
		configWarn = fmt.Sprintf("config %s unreadable, using defaults: %v", config.Path(), cfgErr)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	store, err := recent.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "recent list unavailable: %v\n", err)
	}

	tools := deps.Detect()
	for _, name := range deps.Missing(tools) {
		fmt.Fprintf(os.Stderr, "%s not found, using built-in fallback (%s)\n", name, deps.InstallHint(name))
	}
	cmdr := &shell.ExecCommander{}

	app := tui.New(tui.Deps{
		Cfg:        cfg,
		Tools:      tools,
		Cmdr:       cmdr,
		Recent:     store,
		Matcher:    match.New(tools.Matcher, cfg.MatchMode, cmdr),
		Searcher:   search.NewRunner(tools.Searcher),
		Shell:      term.New(cfg.Shell),
		WorkDir:    workDir,
		ConfigWarn: configWarn,
	})

	// a run error here means the terminal could not be initialized
	return app.Run()
}
