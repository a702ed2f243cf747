package regsvr

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the optional file configuration, command line flags take precedence.
//
//	silent = false
//	debug = false
//	scope = "module"   # or "run"
//	subsystem = "ole"  # "ole", "com" or "none"
type Config struct {
	Silent    bool   `toml:"silent"`
	Debug     bool   `toml:"debug"`
	Scope     string `toml:"scope"`
	Subsystem string `toml:"subsystem"`
}

func DefaultConfig() Config {
	return Config{Scope: ScopeModule.String(), Subsystem: SubsystemOLE}
}

// LoadConfig decode a TOML file over [DefaultConfig], unknown keys are rejected.
func LoadConfig(path string) (c Config, err error) {
	c = DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, 0, len(u))
		for _, k := range u {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return c, fmt.Errorf("%w: unknown keys %s", ErrConfig, strings.Join(keys, ", "))
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if _, err := ParseScope(c.Scope); err != nil {
		return err
	}
	_, err := NewSubsystem(c.Subsystem)
	return err
}

// Registrar built from this configuration.
func (c Config) Registrar(loader Loader) (*Registrar, error) {
	scope, err := ParseScope(c.Scope)
	if err != nil {
		return nil, err
	}
	sub, err := NewSubsystem(c.Subsystem)
	if err != nil {
		return nil, err
	}
	r := New(loader, sub)
	r.Scope = scope
	return r, nil
}
