package main

import (
	"fmt"

	"github.com/alnah/go-regexpage/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML. Flags other than
// --config are not merged: the output is what a build without flags uses.
func runConfig(args []string, env *Environment) error {
	flags, rest, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, rest[0])
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
