package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"roomview/internal/assets"
	"roomview/internal/commands"
	"roomview/internal/engineconfig"
	"roomview/internal/gltf"
	"roomview/internal/interact"
)

func registerInspect(reg *commands.Registry, w io.Writer) {
	var config, model, tags string
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.StringVar(&config, "config", engineconfig.Path(), "preferences file")
	fs.StringVar(&model, "model", "", "glTF/GLB room to inspect (overrides preferences)")
	fs.StringVar(&tags, "tags", "", "comma-separated group tags (overrides preferences)")
	reg.Register("inspect", "load a room without a window and list its clickable meshes", fs, func() error {
		prefs, err := engineconfig.Load(config)
		if err != nil {
			return err
		}
		prefs.ApplyEnv()
		if model != "" {
			prefs.Model = model
		}
		if tags != "" {
			prefs.Tags = strings.Split(tags, ",")
		}
		return inspect(w, prefs.Model, prefs.Tags)
	})
}

// inspect prints the clickable meshes of the room at ref with their tag,
// baseline color and node path.
func inspect(w io.Writer, ref string, tags []string) error {
	path, err := assets.Resolver{}.Resolve(context.Background(), ref)
	if err != nil {
		return err
	}
	root, err := gltf.Load(path)
	if err != nil {
		return err
	}
	classifier := interact.NewClassifier(tags, nil)
	set := classifier.Classify(root)
	fmt.Fprintf(w, "Tags: %s\n", strings.Join(classifier.Tags(), ", "))
	fmt.Fprintf(w, "Clickable meshes count: %d\n", set.Len())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range set.Items() {
		baseline := "-"
		if it.Baseline != nil {
			baseline = it.Baseline.HexString()
		}
		fmt.Fprintf(tw, "Clickable: %s\t%s\t%s\t%s\n", it.Node.Name, it.Tag, baseline, it.Node.Path())
	}
	return tw.Flush()
}
