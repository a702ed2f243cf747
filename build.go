package regsvr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/ZenLiuCN/fn"
	"github.com/pkujhd/goloader"
)

// CompileObject compile Go sources of package main into a relocatable object at out, loadable by [ObjectLoader].
// It requires the go tool on PATH.
func CompileObject(ctx context.Context, log *slog.Logger, out string, sources []string) (err error) {
	if len(sources) == 0 {
		return errors.New("no sources")
	}
	cfg, err := os.CreateTemp("", "importcfg")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(cfg.Name()) }()
	defer fn.IgnoreClose(cfg)
	list := exec.CommandContext(ctx, "go", append([]string{"list", "-deps", "-export", "-f",
		"{{if .Export}}packagefile {{.ImportPath}}={{.Export}}{{end}}"}, sources...)...)
	log.Debug("execute", "args", list.Args)
	b, err := list.Output()
	if err != nil {
		return fmt.Errorf("resolve imports: %w", commandError(err))
	}
	if _, err = cfg.WriteString(strings.Join(importcfg(b), "\n") + "\n"); err != nil {
		return err
	}
	compile := exec.CommandContext(ctx, "go", append([]string{"tool", "compile", "-p", "main", "-importcfg", cfg.Name(), "-o", out}, sources...)...)
	log.Debug("execute", "args", compile.Args)
	var stderr bytes.Buffer
	compile.Stderr = &stderr
	if err = compile.Run(); err != nil {
		return fmt.Errorf("compile: %w\n%s", err, stderr.String())
	}
	return nil
}

// importcfg keeps the packagefile lines of go list output, the package being compiled excluded.
func importcfg(out []byte) (v []string) {
	for _, l := range strings.Split(string(out), "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "packagefile command-line-arguments=") {
			continue
		}
		v = append(v, l)
	}
	return
}

func commandError(err error) error {
	var ee *exec.ExitError
	if errors.As(err, &ee) && len(ee.Stderr) > 0 {
		return fmt.Errorf("%w: %s", err, bytes.TrimSpace(ee.Stderr))
	}
	return err
}

// Exports list the symbols defined inside a Go object file.
func Exports(file, pkg string) ([]string, error) {
	if pkg == "" {
		pkg = "main"
	}
	return goloader.Parse(file, pkg)
}

// MissingEntryPoints returns the entry points of both modes not found in symbols of package pkg.
func MissingEntryPoints(symbols []string, pkg string) (missing []string) {
	if pkg == "" {
		pkg = "main"
	}
	for _, m := range []Mode{Register, Unregister} {
		if !slices.Contains(symbols, pkg+"."+m.EntryPoint()) {
			missing = append(missing, m.EntryPoint())
		}
	}
	return
}
