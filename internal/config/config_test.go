package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, errs := Load(filepath.Join(t.TempDir(), "nope.json"))
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if *c != *Default() {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestLoadRejectsBadKeysIndividually(t *testing.T) {
	path := writeFile(t, "settings.json", `{
		"springConstant": 0.08,
		"dampingFactor": "soft",
		"bounceMaxScale": 9,
		"warpSpeed": 0.4,
		"mystery": 1
	}`)
	c, errs := Load(path)
	if len(errs) != 3 {
		t.Fatalf("expected 3 rejected keys, got %d: %v", len(errs), errs)
	}
	if c.Spring != 0.08 || c.WarpSpeed != 0.4 {
		t.Fatalf("expected valid keys applied, got spring=%v warpSpeed=%v", c.Spring, c.WarpSpeed)
	}
	def := Default()
	if c.Damping != def.Damping || c.BounceMaxScale != def.BounceMaxScale {
		t.Fatalf("expected rejected keys to keep defaults, got damping=%v max=%v", c.Damping, c.BounceMaxScale)
	}

	var wrongType, outOfRange, unknown bool
	for _, err := range errs {
		var ke *KeyError
		if !errors.As(err, &ke) {
			t.Fatalf("expected *KeyError, got %T", err)
		}
		switch {
		case errors.Is(err, ErrWrongType):
			wrongType = ke.Key == "dampingFactor"
		case errors.Is(err, ErrOutOfRange):
			outOfRange = ke.Key == "bounceMaxScale"
		case errors.Is(err, ErrUnknownKey):
			unknown = ke.Key == "mystery"
		}
	}
	if !wrongType || !outOfRange || !unknown {
		t.Fatalf("unexpected error classification: %v", errs)
	}
}

func TestLoadUnparsableFile(t *testing.T) {
	path := writeFile(t, "settings.json", `{not json`)
	c, errs := Load(path)
	if len(errs) != 1 {
		t.Fatalf("expected a single parse error, got %v", errs)
	}
	if *c != *Default() {
		t.Fatalf("expected defaults after parse failure")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "settings.yaml", "springConstant: 0.1\nbounceUndershoot: false\nenvMapSize: 128\ncubeColor: \"#ff0000\"\n")
	c, errs := Load(path)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if c.Spring != 0.1 || c.BounceUndershoot || c.EnvMapSize != 128 || c.CubeColor != 0xff0000 {
		t.Fatalf("unexpected config %+v", c)
	}
}

func TestSaveLoadKeepsSettings(t *testing.T) {
	for _, name := range []string{"s.json", "s.yml"} {
		path := filepath.Join(t.TempDir(), "nested", name)
		c := Default()
		if err := c.Set("warpAmount", 0.3); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := c.Set("spinModel", "inertia"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := Save(path, c); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		got, errs := Load(path)
		if len(errs) != 0 {
			t.Fatalf("load %s: %v", name, errs)
		}
		if *got != *c {
			t.Fatalf("%s: expected %+v, got %+v", name, c, got)
		}
	}
}

func TestSetScrollBoundsStayOrdered(t *testing.T) {
	c := Default()
	if err := c.Set("minScrollScale", 2.5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected min above max to be rejected, got %v", err)
	}
	errs := c.Apply(map[string]any{"minScrollScale": 3.0, "maxScrollScale": 4.0})
	if len(errs) != 0 {
		t.Fatalf("expected moving both bounds together to succeed, got %v", errs)
	}
	if c.MinScrollScale != 3 || c.MaxScrollScale != 4 {
		t.Fatalf("unexpected bounds %v..%v", c.MinScrollScale, c.MaxScrollScale)
	}
}

func TestSetOpenBounds(t *testing.T) {
	c := Default()
	for _, v := range []any{0.0, 1.0, "1", -0.2} {
		if err := c.Set("springConstant", v); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("springConstant=%v: expected out of range, got %v", v, err)
		}
	}
	if err := c.Set("springConstant", "0.5"); err != nil {
		t.Fatalf("expected string value to parse, got %v", err)
	}
	if c.Spring != 0.5 {
		t.Fatalf("expected 0.5, got %v", c.Spring)
	}
	if err := c.Set("envMapSize", 100.5); !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected fractional size to be rejected, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SPINCUBE_SPRING_CONSTANT": "0.07",
		"SPINCUBE_SHOW_FPS":        "true",
		"SPINCUBE_BOUNCE_COLOR":    "0x112233",
		"SPINCUBE_WARP_SPEED":      "fast",
	}
	c := Default()
	errs := c.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if len(errs) != 1 || !errors.Is(errs[0], ErrWrongType) {
		t.Fatalf("expected one wrong-type error, got %v", errs)
	}
	if c.Spring != 0.07 || !c.ShowFPS || c.BounceColor != 0x112233 {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.WarpSpeed != Default().WarpSpeed {
		t.Fatalf("expected rejected env var to keep default")
	}
}

func TestEnvName(t *testing.T) {
	cases := map[string]string{
		"springConstant": "SPINCUBE_SPRING_CONSTANT",
		"spinSpeedX":     "SPINCUBE_SPIN_SPEED_X",
		"showFPS":        "SPINCUBE_SHOW_FPS",
	}
	for key, want := range cases {
		if got := EnvName(key); got != want {
			t.Fatalf("EnvName(%q) = %q, expected %q", key, got, want)
		}
	}
}

func TestLoadDotEnvKeepsExistingVars(t *testing.T) {
	path := writeFile(t, ".env", "# comment\nSPINCUBE_TEST_A=\"from file\"\nexport SPINCUBE_TEST_B=2\nnot a pair\n")
	t.Setenv("SPINCUBE_TEST_B", "already")
	t.Setenv("SPINCUBE_TEST_A", "")
	os.Unsetenv("SPINCUBE_TEST_A")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("SPINCUBE_TEST_A"); got != "from file" {
		t.Fatalf("expected quoted value unwrapped, got %q", got)
	}
	if got := os.Getenv("SPINCUBE_TEST_B"); got != "already" {
		t.Fatalf("expected process env to win, got %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := Default()
	snap := c.Clone()
	c.Spring = 0.5
	if snap.Spring != Default().Spring {
		t.Fatalf("expected clone unaffected by later writes")
	}
	c.Reset()
	if c.Spring != Default().Spring {
		t.Fatalf("expected reset to restore defaults")
	}
}

func TestColorRoundTrip(t *testing.T) {
	if got := HexOf(Color(0x88ccff)); got != 0x88ccff {
		t.Fatalf("expected 0x88ccff, got %#x", got)
	}
}

func TestLoadAllLayersSources(t *testing.T) {
	settings := writeFile(t, "spincube.json", `{"springConstant": 0.2, "warpAmount": 0.3, "checkerScale": 10}`)
	dotenv := writeFile(t, ".env", "SPINCUBE_WARP_AMOUNT=0.4\nSPINCUBE_CHECKER_SCALE=12\n")
	t.Setenv("SPINCUBE_CHECKER_SCALE", "15")
	t.Setenv("SPINCUBE_WARP_AMOUNT", "")
	os.Unsetenv("SPINCUBE_WARP_AMOUNT")

	c, errs := LoadAll(settings, dotenv)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if c.Spring != 0.2 || c.WarpAmount != 0.4 || c.CheckerScale != 15 {
		t.Fatalf("expected file < dotenv < process env, got spring=%v warp=%v checker=%v", c.Spring, c.WarpAmount, c.CheckerScale)
	}
}

func TestMarshalFormats(t *testing.T) {
	c := Default()
	for _, format := range []string{"json", "yaml"} {
		data, err := Marshal(c, format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		m, err := decode("x."+format, data)
		if err != nil {
			t.Fatalf("%s: decode: %v", format, err)
		}
		if len(m) != len(Keys()) {
			t.Fatalf("%s: expected %d keys, got %d", format, len(Keys()), len(m))
		}
	}
	if _, err := Marshal(c, "toml"); err == nil {
		t.Fatalf("expected unknown format to fail")
	}
}
