package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/items/internal/cli"
	"github.com/idilsaglam/items/internal/config"
	"github.com/idilsaglam/items/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Root flags (apply to every subcommand); they override the environment.
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	apiURL := fs.String("api", "", "API base URL, e.g. http://localhost:8080/api")
	theme := fs.String("theme", "", "classic | neon | mono")
	logLevel := fs.String("log-level", "", "debug | info | warn | error")
	logFile := fs.String("log-file", "", "diagnostic log path, or stderr")
	forceColor := fs.Bool("color", false, "force colors")
	noColor := fs.Bool("no-color", false, "disable colors")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if err := cfg.Validate(); err != nil {
		ui.Fail("config: " + err.Error())
		return 2
	}

	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(*forceColor, *noColor)

	code := cli.Run(fs.Args(), cli.Options{Config: cfg})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
