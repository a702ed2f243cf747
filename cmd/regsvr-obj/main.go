package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ZenLiuCN/regsvr"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		slog.Error("failure", "error", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "regsvr-obj"
	app.Usage = "build and inspect Go object modules for regsvr"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}},
	}
	sdk := []cli.Flag{
		&cli.StringFlag{Name: "goroot", EnvVars: []string{"GOROOT"}, Usage: "go sdk root, default the one of this binary"},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "prepare",
			Action: prepare,
			Usage:  "prepare go sdk for goloader (copy cmd/internal to cmd/objfile)",
			Flags:  sdk,
		},
		{
			Name:   "clean",
			Action: clean,
			Usage:  "restore go sdk by removing cmd/objfile",
			Flags:  sdk,
		},
		{
			Name:   "build",
			Action: build,
			Usage:  "compile go sources of package main into an object module",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "module.o", Usage: "output object file"},
			},
			Args: true,
		},
		{
			Name:   "exports",
			Action: exports,
			Usage:  "display symbols of object modules and check the entry points",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "pkg", Aliases: []string{"p"}, Usage: "package path or default main"},
			},
			Args: true,
		},
	}
	return app
}

func logger(ctx *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if ctx.Bool("debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

func goroot(ctx *cli.Context) string {
	if r := ctx.String("goroot"); r != "" {
		return r
	}
	return runtime.GOROOT()
}

func prepare(ctx *cli.Context) error {
	root := goroot(ctx)
	done, err := regsvr.PrepareSDK(root, logger(ctx))
	if err != nil {
		return err
	}
	if done {
		fmt.Fprintf(ctx.App.Writer, "prepared %s\n", root)
	} else {
		fmt.Fprintf(ctx.App.Writer, "already prepared %s\n", root)
	}
	return nil
}

func clean(ctx *cli.Context) error {
	root := goroot(ctx)
	done, err := regsvr.CleanSDK(root, logger(ctx))
	if err != nil {
		return err
	}
	if done {
		fmt.Fprintf(ctx.App.Writer, "cleaned %s\n", root)
	} else {
		fmt.Fprintf(ctx.App.Writer, "nothing to clean %s\n", root)
	}
	return nil
}

func build(ctx *cli.Context) (err error) {
	src := ctx.Args().Slice()
	if len(src) == 0 {
		return fmt.Errorf("missing sources")
	}
	if _, err = exec.LookPath("go"); err != nil {
		return fmt.Errorf("missing go sdk: %w", err)
	}
	log := logger(ctx)
	out := ctx.String("out")
	if err = regsvr.CompileObject(ctx.Context, log, out, src); err != nil {
		return
	}
	symbols, err := regsvr.Exports(out, "main")
	if err != nil {
		return
	}
	if missing := regsvr.MissingEntryPoints(symbols, "main"); len(missing) > 0 {
		log.Warn("entry points missing", "module", out, "missing", strings.Join(missing, ", "))
	}
	log.Info("built", "module", out)
	return
}

func exports(ctx *cli.Context) (err error) {
	pkg := ctx.String("pkg")
	for _, f := range ctx.Args().Slice() {
		var symbols []string
		if symbols, err = regsvr.Exports(f, pkg); err != nil {
			return
		}
		fmt.Fprintf(ctx.App.Writer, "%s\n", f)
		for _, s := range symbols {
			fmt.Fprintf(ctx.App.Writer, "\t%s\n", s)
		}
		if missing := regsvr.MissingEntryPoints(symbols, pkg); len(missing) > 0 {
			fmt.Fprintf(ctx.App.Writer, "\tmissing: %s\n", strings.Join(missing, ", "))
		}
	}
	return
}
