package main

import (
	"context"
	"flag"
	"os"

	"roomview/internal/assets"
	"roomview/internal/camera"
	"roomview/internal/commands"
	"roomview/internal/debug"
	"roomview/internal/engineconfig"
	"roomview/internal/frame"
	"roomview/internal/graphics"
	"roomview/internal/logger"
	"roomview/internal/scene"
)

type runFlags struct {
	config, model string
	v, q          bool
}

func registerRun(reg *commands.Registry) {
	var f runFlags
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", engineconfig.Path(), "preferences file")
	fs.StringVar(&f.model, "model", "", "glTF/GLB room to load (overrides preferences)")
	fs.BoolVar(&f.v, "v", false, "debug logging, including hover transitions")
	fs.BoolVar(&f.q, "q", false, "only log errors")
	reg.Register("run", "open the room viewer (default)", fs, func() error { return run(f) })
}

func run(f runFlags) error {
	log := logger.New(
		logger.WithLevel(logger.LevelFromFlags(f.v, f.q)),
		logger.WithOutput(os.Stderr),
	)
	prefs, err := engineconfig.Load(f.config)
	if err != nil {
		log.Warnf("using default preferences: %v", err)
	}
	prefs.ApplyEnv()
	if f.model != "" {
		prefs.Model = f.model
	}

	cam := camera.New(engineconfig.Vec3(prefs.Camera.Position), engineconfig.Vec3(prefs.Camera.Target))
	cam.FovY = prefs.Camera.FovY
	cam.Near = prefs.Camera.Near
	cam.Far = prefs.Camera.Far
	cam.SetViewport(prefs.Window.Width, prefs.Window.Height)

	opts := frame.DefaultOptions()
	opts.Tags = prefs.Tags
	opts.Highlight = prefs.HighlightColor()
	opts.Damping = prefs.Camera.Damping
	opts.Bob = prefs.Camera.Bob
	opts.BobFrequency = prefs.Camera.BobFrequency
	opts.BobAmplitude = prefs.Camera.BobAmplitude
	opts.Resolve = assets.Resolver{}.Resolve
	if c := prefs.TestCube; c.Enabled {
		opts.Cube = frame.NewTestCube(c.Size, prefs.CubeColor(), engineconfig.Vec3(c.Position))
		opts.CubeSpin = c.Spin
	}

	drv := frame.New(cam, opts, log)
	defer drv.Close()
	log.Infof("loading %s", prefs.Model)
	drv.Load(context.Background(), prefs.Model)

	scn := scene.New(drv)
	scn.SetGridVisible(prefs.GridVisible)
	dbg := debug.New()
	dbg.ShowFPS = prefs.ShowFPS
	dbg.ShowMemAlloc = prefs.ShowMemAlloc
	dbg.ShowHover = prefs.ShowHover
	dbg.ShowLog = prefs.ShowLog
	dbg.LogLines = log.Lines

	update := func() {
		fx := scn.Update()
		dbg.SetStats(drv.Eligible().Len(), drv.Loading(), fx.Names())
	}
	draw := func() {
		scn.Draw()
		dbg.Draw()
	}
	graphics.Run(graphics.Window{
		Width:      prefs.Window.Width,
		Height:     prefs.Window.Height,
		Title:      prefs.Window.Title,
		TargetFPS:  prefs.Window.TargetFPS,
		Resizable:  prefs.Window.Resizable,
		Background: prefs.BackgroundColor().RGBA(),
	}, update, draw)
	return nil
}
