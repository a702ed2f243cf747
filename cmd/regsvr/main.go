package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/ZenLiuCN/regsvr"
	"github.com/ZenLiuCN/regsvr/presenter"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
)

const (
	name    = "regsvr"
	version = "1.0.0"
)

// env holds what the command talks to, replaced in tests.
type env struct {
	stdout io.Writer
	stderr io.Writer
	dialog presenter.Dialog
	loader regsvr.Loader
}

func main() {
	os.Exit(run(os.Args[1:], env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		dialog: presenter.SystemDialog(),
		loader: regsvr.DefaultLoader(),
	}))
}

func run(args []string, e env) int {
	if len(args) == 0 {
		presenter.Banner(e.stdout, name, version)
		return regsvr.InvalidArguments.ExitCode()
	}
	return exitCode(e.app().Run(append([]string{name}, normalize(args)...)))
}

func exitCode(err error) int {
	if err == nil {
		return regsvr.Success.ExitCode()
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return regsvr.InvalidArguments.ExitCode()
}

func (e env) app() *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Version = version
	app.Usage = "register or unregister COM server modules"
	app.HideHelp = true
	app.HideHelpCommand = true
	app.HideVersion = true
	app.Writer = e.stdout
	app.ErrWriter = e.stderr
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "silent", Aliases: []string{"s"}, Usage: "no dialog, only the result line"},
		&cli.BoolFlag{Name: "unregister", Aliases: []string{"u"}, Usage: "call DllUnregisterServer instead of DllRegisterServer"},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "debug logging to stderr"},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, EnvVars: []string{"REGSVR_CONFIG"}, Usage: "TOML configuration file"},
		&cli.BoolFlag{Name: "?", Usage: "print usage"},
	}
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.OnUsageError = func(ctx *cli.Context, err error, _ bool) error {
		e.logger(false).Warn("arguments", "error", err)
		return e.fail(ctx.Bool("silent"), ctx.Bool("unregister"))
	}
	app.Action = e.action
	return app
}

// fail presents InvalidArguments.
func (e env) fail(silent, unregister bool) error {
	p := &presenter.Presenter{Out: e.stdout, Dialog: e.dialog, Silent: silent}
	_ = p.Present(regsvr.InvalidArguments, regsvr.ModeOf(unregister))
	return cli.Exit("", regsvr.InvalidArguments.ExitCode())
}

func (e env) logger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))
}

func (e env) action(ctx *cli.Context) error {
	if ctx.Bool("?") {
		presenter.Banner(e.stdout, name, version)
		return cli.Exit("", regsvr.InvalidArguments.ExitCode())
	}
	cfg := regsvr.DefaultConfig()
	if p := ctx.String("config"); p != "" {
		var err error
		if cfg, err = regsvr.LoadConfig(p); err != nil {
			e.logger(ctx.Bool("debug")).Warn("configuration", "path", p, "error", err)
			return e.fail(ctx.Bool("silent"), ctx.Bool("unregister"))
		}
	}
	cfg.Silent = cfg.Silent || ctx.Bool("silent")
	cfg.Debug = cfg.Debug || ctx.Bool("debug")
	mode := regsvr.ModeOf(ctx.Bool("unregister"))
	paths := ctx.Args().Slice()
	if len(paths) == 0 {
		return e.fail(cfg.Silent, mode == regsvr.Unregister)
	}
	log := e.logger(cfg.Debug)
	reg, err := cfg.Registrar(e.loader)
	if err != nil {
		log.Warn("configuration", "error", err)
		return e.fail(cfg.Silent, mode == regsvr.Unregister)
	}
	reg.Logger = log
	requests := make([]regsvr.Request, 0, len(paths))
	for _, p := range paths {
		requests = append(requests, regsvr.Request{Path: p, Mode: mode, Silent: cfg.Silent})
	}
	outcome, reports := reg.Run(requests)
	out := &presenter.Presenter{Out: e.stdout, Dialog: e.dialog}
	for _, r := range reports {
		if err := out.Report(r); err != nil {
			log.Warn("present", "error", err)
		}
	}
	if cfg.Debug {
		log.Debug("run finished", "outcome", outcome, "reports", spew.Sdump(reports))
	}
	return cli.Exit("", outcome.ExitCode())
}
