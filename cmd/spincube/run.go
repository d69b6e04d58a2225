package main

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spincube/internal/commands"
	"spincube/internal/config"
	"spincube/internal/debug"
	"spincube/internal/envmap"
	"spincube/internal/fonts"
	"spincube/internal/frame"
	"spincube/internal/graphics"
	"spincube/internal/interaction"
	"spincube/internal/logger"
	"spincube/internal/physics"
	"spincube/internal/scene"
	"spincube/internal/terminal"
)

const overlayFontSize = 32

type runOptions struct {
	settings  string
	dotenv    string
	spinModel string
	logPath   string
	font      string
	fps       int32
}

func run(opts runOptions) error {
	log := logger.New(opts.logPath)
	cfg, errs := config.LoadAll(opts.settings, opts.dotenv)
	for _, err := range errs {
		log.Logf("settings: %v", err)
	}
	if opts.spinModel != "" {
		if err := cfg.Set("spinModel", opts.spinModel); err != nil {
			return err
		}
	}
	newModel := func(name string) (physics.SpinModel, error) {
		return physics.NewSpinModel(name, int(opts.fps))
	}
	model, err := newModel(cfg.SpinModel)
	if err != nil {
		return err
	}

	var now float64
	ictx := interaction.NewContext()
	scn := scene.New(cfg, log)
	worker := envmap.NewWorker(cfg, log)
	sched := frame.New(ictx, cfg, model, scn, worker, worker, log)
	disp := interaction.NewDispatcher(ictx, cfg, func() float64 { return now }, log)
	disp.SetHitTester(scn)
	disp.SetResizer(scn)

	overlay := debug.New()
	overlay.SetShowFPS(cfg.ShowFPS)
	overlay.SetShowMemAlloc(cfg.ShowMemAlloc)
	overlay.SetShowState(cfg.ShowState)
	overlay.SetStateSource(func() debug.StateInfo {
		return debug.StateInfo{Snapshot: ictx.Snapshot(), SpinModel: sched.SpinModel().Name(), EnvDropped: worker.Dropped()}
	})

	reg := commands.NewRegistry()
	commands.RegisterSettings(reg, commands.Settings{
		Config: cfg,
		Path:   opts.settings,
		Log:    log,
		SetSpinModel: func(name string) error {
			m, err := newModel(name)
			if err != nil {
				return err
			}
			sched.SetSpinModel(m)
			return nil
		},
		Overlay: overlay,
	})
	term := terminal.New(log, reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	font := fonts.Load(opts.font)
	fontSettled := false
	input := graphics.NewInput()
	log.Logf("spincube: started with %s spin model", model.Name())

	update := func(elapsed float64) {
		now = elapsed
		if !fontSettled {
			fontSettled = applyFont(font, log, term, overlay)
		}
		term.Update()
		input.Poll(disp)
		sched.Tick(elapsed)
		if m, ok := worker.Poll(); ok {
			scn.UploadEnvironment(m)
		}
	}
	draw := func() {
		scn.Draw()
		overlay.Draw()
		term.Draw()
	}
	graphics.Run("spincube", opts.fps, update, draw, scn.Unload)
	log.Log("spincube: window closed")
	cancel()
	<-worker.Stopped()
	return nil
}

// applyFont loads the overlay font once the lookup settles. It reports whether it has settled.
func applyFont(p *fonts.Pending, log *logger.Logger, term *terminal.Terminal, overlay *debug.Debug) bool {
	select {
	case <-p.Done():
	default:
		return false
	}
	state, path, err := p.State()
	switch state {
	case fonts.StateReady:
		f := rl.LoadFontEx(path, overlayFontSize, nil)
		if f.Texture.ID == 0 {
			log.Logf("fonts: %s failed to load, using default font", path)
			return true
		}
		rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
		term.SetFont(f)
		overlay.SetFont(f)
		log.Logf("fonts: using %s", path)
		return true
	case fonts.StateFallback:
		log.Logf("%v; using default font", err)
	}
	return true
}
