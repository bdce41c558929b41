package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/Makepad-fr/todos/internal/cli"
	"github.com/Makepad-fr/todos/internal/config"
	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/seed"
	"github.com/Makepad-fr/todos/internal/service"
	"github.com/Makepad-fr/todos/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := pflag.NewFlagSet("todos", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file (default ~/.config/todos/config.yaml)")
	filter := fs.StringP("filter", "f", "", "initial filter: all, pending or completed")
	group := fs.BoolP("group", "g", false, "group output by pending/done")
	theme := fs.String("theme", "", "classic, neon or mono")
	delay := fs.Duration("delay", 0, "simulated service delay (e.g. 200ms)")
	seedFile := fs.String("seed", "", "JSON or YAML file with the starting todos")
	color := fs.Bool("color", false, "keep colors when output is not a terminal")
	noColor := fs.Bool("no-color", false, "disable colors (wins over --color)")
	fs.SetInterspersed(true)
	fs.Usage = func() { cli.PrintHelp(os.Stderr); fmt.Fprintln(os.Stderr, "\nFlags:"); fs.PrintDefaults() }

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(1)
	}

	// Flags win over config.
	if fs.Changed("filter") {
		cfg.UI.Filter = *filter
	}
	if fs.Changed("group") {
		cfg.UI.Group = *group
	}
	if fs.Changed("theme") {
		cfg.UI.Theme = *theme
	}
	if fs.Changed("delay") {
		cfg.Service.Delay = *delay
	}
	if fs.Changed("seed") {
		cfg.Service.SeedFile = *seedFile
	}
	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}

	if err := logging.Configure(cfg.Log); err != nil {
		ui.Fail(os.Stderr, "logging: "+err.Error())
		os.Exit(1)
	}
	ui.SetColorForcing(*color, *noColor)
	ui.SetTheme(cfg.UI.Theme)

	opts := []service.Option{service.WithDelay(cfg.Service.Delay)}
	if cfg.Service.SeedFile != "" {
		todos, err := seed.Load(cfg.Service.SeedFile)
		if err != nil {
			ui.Fail(os.Stderr, "seed: "+err.Error())
			os.Exit(1)
		}
		opts = append(opts, service.WithSeed(todos))
	}

	args := fs.Args()
	if len(args) == 0 {
		args = []string{"ui"}
	}

	os.Exit(cli.Run(args, cli.Options{
		Service: service.NewMock(opts...),
		Filter:  model.Filter(cfg.UI.Filter),
		Group:   cfg.UI.Group,
	}))
}
