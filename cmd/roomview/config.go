package main

import (
	"flag"
	"fmt"
	"io"

	"roomview/internal/commands"
	"roomview/internal/engineconfig"
)

func registerConfig(reg *commands.Registry, w io.Writer) {
	var path string
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", engineconfig.Path(), "preferences file to write")
	reg.Register("config", "write the effective preferences (file, env overrides, defaults) to disk", fs, func() error {
		prefs, err := engineconfig.Load(path)
		if err != nil {
			return err
		}
		prefs.ApplyEnv()
		if err := prefs.Validate(); err != nil {
			return err
		}
		if err := engineconfig.Save(path, prefs); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", path)
		return nil
	})
}
