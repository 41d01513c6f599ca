package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"roomview/internal/commands"
	"roomview/internal/env"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "roomview:", err)
	}
	reg := commands.NewRegistry()
	reg.Default = "run"
	registerRun(reg)
	registerInspect(reg, os.Stdout)
	registerConfig(reg, os.Stdout)

	err := reg.Execute(os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrUsage), errors.Is(err, flag.ErrHelp):
		reg.Usage(os.Stderr)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "roomview:", err)
		os.Exit(1)
	}
}
