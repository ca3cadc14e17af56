package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"moleattack.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	NoColor  bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Sim        SimCmd           `cmd:"" default:"withargs" help:"Run the whole cabinet in the terminal"`
	Controller ControllerCmd    `cmd:"" help:"Run the game controller against a remote display"`
	Display    DisplayCmd       `cmd:"" help:"Run the display emulator as a websocket server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("moleattack"),
		kong.Description("Two-player whack-a-mole cabinet controller and simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
