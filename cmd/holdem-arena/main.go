package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Hand        HandCmd          `cmd:"" help:"Play a single hand between models"`
	HeadsUp     HeadsUpCmd       `cmd:"heads-up" help:"Run a heads-up match between two models"`
	RoundRobin  RoundRobinCmd    `cmd:"round-robin" help:"Run a round-robin tournament over every model pairing"`
	FullTable   FullTableCmd     `cmd:"full-table" help:"Run a full-table freeze-out tournament"`
	Leaderboard LeaderboardCmd   `cmd:"" help:"Show the ELO leaderboard"`
	Models      ModelsCmd        `cmd:"" help:"List models with known pricing"`
	Config      ConfigCmd        `cmd:"" help:"Show the effective configuration"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-arena"),
		kong.Description("No-limit hold'em evaluation arena for LLM agents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
