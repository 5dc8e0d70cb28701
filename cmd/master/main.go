package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-master/internal/cli"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Run     RunCmd     `cmd:"" help:"Master WAV files"`
	Analyze AnalyzeCmd `cmd:"" help:"Print level, spectrum and loudness measurements"`
	Watch   WatchCmd   `cmd:"" help:"Master WAV files as they appear in a directory"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals are shared by all commands.
type Globals struct {
	Log *logrus.Logger
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("master"),
		kong.Description("Offline mono mastering chain"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	globals := &Globals{Log: newLogger(cliArgs.LogLevel)}

	if err := ctx.Run(globals); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}

	log.SetLevel(lvl)

	return log
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run implements the command.
func (VersionCmd) Run() error {
	cli.PrintVersion(os.Stdout, version)
	return nil
}
