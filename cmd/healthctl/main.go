// Command healthctl is a single-user health tracker backed by a local SQLite file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Path of the SQLite database." type:"path" default:"~/.local/share/healthguide/health.db" env:"HEALTHCTL_DB"`
	Debug   bool   `help:"Log debug output to stderr."`

	Log       LogCmd       `cmd:"" help:"Save the metrics of a day."`
	Score     ScoreCmd     `cmd:"" help:"Score metrics without saving them."`
	Analytics AnalyticsCmd `cmd:"" help:"Show analytics for a period."`
	Report    ReportCmd    `cmd:"" help:"Print a report or write it as a PDF."`
	Chat      ChatCmd      `cmd:"" help:"Ask the symptom checker."`
	Meds      struct {
		Add AddMedCmd    `cmd:"" help:"Add a prescribed medication."`
		Rm  RemoveMedCmd `cmd:"" help:"Remove a prescribed medication."`
		Ls  ListMedsCmd  `cmd:"" help:"List prescribed medications." default:"1"`
	} `cmd:"" help:"Manage prescribed medications."`
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: debug,
		Level:           level,
		Prefix:          "healthctl",
	})
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("healthctl"),
		kong.Description("Daily health metrics, scores and reports"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v1.0.0"},
	)

	logger := newLogger(os.Stderr, CLI.Debug)

	app, err := openApp(CLI.DB, os.Stdout, logger)
	if err != nil {
		logger.Error("failed to open database", "path", CLI.DB, "err", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := ctx.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
