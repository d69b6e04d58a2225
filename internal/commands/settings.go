package commands

import (
	"errors"
	"fmt"

	"spincube/internal/config"
	"spincube/internal/logger"
)

// Overlay is the part of the debug overlay the toggle commands drive.
type Overlay interface {
	SetShowFPS(show bool)
	SetShowMemAlloc(show bool)
	SetShowState(show bool)
}

// Settings is what the settings commands act on. The commands are the single writer of
// Config after startup; they run on the frame thread between ticks.
type Settings struct {
	Config *config.Config
	Path   string
	Log    *logger.Logger

	// SetSpinModel switches the scheduler's spin strategy by name.
	SetSpinModel func(name string) error
	Overlay      Overlay
}

// RegisterSettings adds set, get, save, reset, spin, fps, memalloc, state and help to r.
func RegisterSettings(r *Registry, s Settings) {
	cfg, log := s.Config, s.Log

	set := NewFlagSet("set")
	r.Register("set", "set <key> <value>", set, func() error {
		if set.NArg() != 2 {
			return errors.New("set: want <key> <value>")
		}
		key, value := set.Arg(0), set.Arg(1)
		if key == "spinModel" {
			return s.switchSpin(value)
		}
		if err := cfg.Set(key, value); err != nil {
			return err
		}
		s.syncOverlay()
		v, _ := cfg.Get(key)
		log.Logf("%s = %v", key, v)
		return nil
	})

	get := NewFlagSet("get")
	r.Register("get", "get [key]", get, func() error {
		if get.NArg() == 0 {
			for _, k := range config.Keys() {
				v, _ := cfg.Get(k)
				log.Logf("%s = %v", k, v)
			}
			return nil
		}
		key := get.Arg(0)
		v, ok := cfg.Get(key)
		if !ok {
			return &config.KeyError{Key: key, Err: config.ErrUnknownKey}
		}
		log.Logf("%s = %v", key, v)
		return nil
	})

	save := NewFlagSet("save")
	r.Register("save", "save", save, func() error {
		if err := config.Save(s.Path, cfg); err != nil {
			return err
		}
		log.Logf("settings saved to %s", s.Path)
		return nil
	})

	reset := NewFlagSet("reset")
	r.Register("reset", "reset", reset, func() error {
		cfg.Reset()
		if err := config.Remove(s.Path); err != nil {
			return err
		}
		if err := s.SetSpinModel(cfg.SpinModel); err != nil {
			return err
		}
		s.syncOverlay()
		log.Log("settings reset to defaults")
		return nil
	})

	spin := NewFlagSet("spin")
	r.Register("spin", "spin <spring|inertia|analytic>", spin, func() error {
		if spin.NArg() != 1 {
			return errors.New("spin: want a model name")
		}
		return s.switchSpin(spin.Arg(0))
	})

	s.registerToggle(r, "fps", func(v bool) { cfg.ShowFPS = v })
	s.registerToggle(r, "memalloc", func(v bool) { cfg.ShowMemAlloc = v })
	s.registerToggle(r, "state", func(v bool) { cfg.ShowState = v })

	help := NewFlagSet("help")
	r.Register("help", "help", help, func() error {
		for _, line := range r.Usage() {
			log.Log(line)
		}
		return nil
	})
}

// switchSpin validates name through Config first so a bad model leaves both untouched.
func (s Settings) switchSpin(name string) error {
	prev := s.Config.SpinModel
	if err := s.Config.Set("spinModel", name); err != nil {
		return err
	}
	if err := s.SetSpinModel(s.Config.SpinModel); err != nil {
		s.Config.SpinModel = prev
		return err
	}
	s.Log.Logf("spinModel = %s", s.Config.SpinModel)
	return nil
}

func (s Settings) registerToggle(r *Registry, name string, store func(bool)) {
	fs := NewFlagSet(name)
	show := fs.Bool("show", false, "show the overlay")
	hide := fs.Bool("hide", false, "hide the overlay")
	r.Register(name, name+" --show|--hide", fs, func() error {
		defer func() { *show, *hide = false, false }()
		if *show == *hide {
			return fmt.Errorf("%s: want exactly one of --show or --hide", name)
		}
		store(*show)
		s.syncOverlay()
		return nil
	})
}

func (s Settings) syncOverlay() {
	if s.Overlay == nil {
		return
	}
	s.Overlay.SetShowFPS(s.Config.ShowFPS)
	s.Overlay.SetShowMemAlloc(s.Config.ShowMemAlloc)
	s.Overlay.SetShowState(s.Config.ShowState)
}
