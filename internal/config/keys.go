package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrUnknownKey = errors.New("unknown settings key")
	ErrWrongType  = errors.New("wrong value type")
	ErrOutOfRange = errors.New("value out of range")
)

// KeyError reports one rejected settings key. The key keeps its previous value.
type KeyError struct {
	Key   string
	Value any
	Err   error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("settings %q = %v: %v", e.Key, e.Value, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

type kind int

const (
	kindFloat kind = iota
	kindInt
	kindColor
	kindBool
	kindChoice
)

// field describes one settings key: its type, accepted range and where it lives in Config.
type field struct {
	key     string
	kind    kind
	min     float64
	max     float64
	minOpen bool // exclusive lower bound
	maxOpen bool
	choices []string

	floatp  func(*Config) *float64
	intp    func(*Config) *int
	colorp  func(*Config) *uint32
	boolp   func(*Config) *bool
	choicep func(*Config) *string
}

func floatKey(key string, min, max float64, minOpen, maxOpen bool, p func(*Config) *float64) field {
	return field{key: key, kind: kindFloat, min: min, max: max, minOpen: minOpen, maxOpen: maxOpen, floatp: p}
}

func boolKey(key string, p func(*Config) *bool) field {
	return field{key: key, kind: kindBool, boolp: p}
}

func colorKey(key string, p func(*Config) *uint32) field {
	return field{key: key, kind: kindColor, min: 0, max: 0xffffff, colorp: p}
}

var fields = []field{
	floatKey("spinSpeedX", -0.05, 0.05, false, false, func(c *Config) *float64 { return &c.SpinSpeedX }),
	floatKey("spinSpeedY", -0.05, 0.05, false, false, func(c *Config) *float64 { return &c.SpinSpeedY }),
	floatKey("springConstant", 0, 1, true, true, func(c *Config) *float64 { return &c.Spring }),
	floatKey("dampingFactor", 0, 1, true, true, func(c *Config) *float64 { return &c.Damping }),
	floatKey("dragSensitivity", 0, 0.1, true, false, func(c *Config) *float64 { return &c.DragSensitivity }),
	floatKey("targetOffsetDamping", 0, 1, true, true, func(c *Config) *float64 { return &c.TargetOffsetDamping }),
	floatKey("throwVelocityFactor", 0, 5, false, false, func(c *Config) *float64 { return &c.ThrowVelocityFactor }),
	floatKey("inertiaDamping", 0, 1, true, true, func(c *Config) *float64 { return &c.InertiaDamping }),
	{key: "spinModel", kind: kindChoice, choices: []string{SpinSpring, SpinInertia, SpinAnalytic}, choicep: func(c *Config) *string { return &c.SpinModel }},

	floatKey("bounceDuration", 0.1, 2, false, false, func(c *Config) *float64 { return &c.BounceDuration }),
	floatKey("bounceMaxScale", 1, 1.5, false, false, func(c *Config) *float64 { return &c.BounceMaxScale }),
	floatKey("bounceMinScale", 0.5, 1, false, false, func(c *Config) *float64 { return &c.BounceMinScale }),
	floatKey("bounceSkyboxFactor", 0, 2, false, false, func(c *Config) *float64 { return &c.BounceSkyboxFactor }),
	boolKey("bounceUndershoot", func(c *Config) *bool { return &c.BounceUndershoot }),
	boolKey("bounceOnAnyClick", func(c *Config) *bool { return &c.BounceOnAnyClick }),

	floatKey("scrollSpring", 0, 1, true, true, func(c *Config) *float64 { return &c.ScrollSpring }),
	floatKey("scrollDamping", 0, 1, true, true, func(c *Config) *float64 { return &c.ScrollDamping }),
	floatKey("scrollSensitivity", 0, 0.5, true, false, func(c *Config) *float64 { return &c.ScrollSensitivity }),
	floatKey("minScrollScale", 0.1, 5, false, false, func(c *Config) *float64 { return &c.MinScrollScale }),
	floatKey("maxScrollScale", 0.1, 5, false, false, func(c *Config) *float64 { return &c.MaxScrollScale }),

	floatKey("parallaxFactor", 0, 0.1, false, false, func(c *Config) *float64 { return &c.ParallaxFactor }),
	floatKey("checkerScale", 0.5, 100, false, false, func(c *Config) *float64 { return &c.CheckerScale }),
	floatKey("warpAmount", 0, 1, false, false, func(c *Config) *float64 { return &c.WarpAmount }),
	floatKey("warpFrequency", 1, 10, false, false, func(c *Config) *float64 { return &c.WarpFrequency }),
	floatKey("warpSpeed", 0, 2, false, false, func(c *Config) *float64 { return &c.WarpSpeed }),
	boolKey("useIntenseBackground", func(c *Config) *bool { return &c.UseIntenseBackground }),

	floatKey("envMapUpdateInterval", 1.0/60, 1, false, false, func(c *Config) *float64 { return &c.EnvMapUpdateInterval }),
	{key: "envMapSize", kind: kindInt, min: 32, max: 1024, intp: func(c *Config) *int { return &c.EnvMapSize }},
	floatKey("backgroundBlur", 0, 1, false, false, func(c *Config) *float64 { return &c.BackgroundBlur }),

	colorKey("cubeColor", func(c *Config) *uint32 { return &c.CubeColor }),
	colorKey("bounceColor", func(c *Config) *uint32 { return &c.BounceColor }),
	floatKey("cubeSize", 0.5, 5, false, false, func(c *Config) *float64 { return &c.CubeSize }),
	boolKey("useGlassMaterial", func(c *Config) *bool { return &c.UseGlassMaterial }),

	boolKey("showFPS", func(c *Config) *bool { return &c.ShowFPS }),
	boolKey("showMemAlloc", func(c *Config) *bool { return &c.ShowMemAlloc }),
	boolKey("showState", func(c *Config) *bool { return &c.ShowState }),
}

var fieldIndex = func() map[string]*field {
	m := make(map[string]*field, len(fields))
	for i := range fields {
		m[fields[i].key] = &fields[i]
	}
	return m
}()

// Keys returns every settings key in sorted order.
func Keys() []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.key)
	}
	sort.Strings(out)
	return out
}

// Get returns the current value of key.
func (c *Config) Get(key string) (any, bool) {
	f, ok := fieldIndex[key]
	if !ok {
		return nil, false
	}
	return f.value(c), true
}

// Set validates value and stores it under key. Strings are parsed according to the key's type,
// so values typed in the terminal or read from the environment go through the same checks as
// values decoded from a settings file.
func (c *Config) Set(key string, value any) error {
	f, ok := fieldIndex[key]
	if !ok {
		return &KeyError{Key: key, Value: value, Err: ErrUnknownKey}
	}
	v, err := f.coerce(value)
	if err != nil {
		return &KeyError{Key: key, Value: value, Err: err}
	}
	// The scroll bounds are checked against each other as well as their own range.
	switch key {
	case "minScrollScale":
		if v.(float64) >= c.MaxScrollScale {
			return &KeyError{Key: key, Value: value, Err: fmt.Errorf("%w: must be below maxScrollScale %g", ErrOutOfRange, c.MaxScrollScale)}
		}
	case "maxScrollScale":
		if v.(float64) <= c.MinScrollScale {
			return &KeyError{Key: key, Value: value, Err: fmt.Errorf("%w: must be above minScrollScale %g", ErrOutOfRange, c.MinScrollScale)}
		}
	}
	f.store(c, v)
	return nil
}

// Apply sets every key of m, in sorted key order. Rejected keys keep their previous value;
// the returned slice holds one *KeyError per rejection.
func (c *Config) Apply(m map[string]any) []error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	var deferred []string
	for _, k := range keys {
		if err := c.Set(k, m[k]); err != nil {
			// maxScrollScale sorts before minScrollScale, so a pair that moves both bounds
			// past the old ones only validates once the other bound is in place.
			if (k == "minScrollScale" || k == "maxScrollScale") && errors.Is(err, ErrOutOfRange) {
				deferred = append(deferred, k)
				continue
			}
			errs = append(errs, err)
		}
	}
	for _, k := range deferred {
		if err := c.Set(k, m[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Settings returns the flat key/value mapping that Save writes.
func (c *Config) Settings() map[string]any {
	out := make(map[string]any, len(fields))
	for i := range fields {
		out[fields[i].key] = fields[i].value(c)
	}
	return out
}

func (f *field) value(c *Config) any {
	switch f.kind {
	case kindFloat:
		return *f.floatp(c)
	case kindInt:
		return *f.intp(c)
	case kindColor:
		return *f.colorp(c)
	case kindBool:
		return *f.boolp(c)
	default:
		return *f.choicep(c)
	}
}

func (f *field) store(c *Config, v any) {
	switch f.kind {
	case kindFloat:
		*f.floatp(c) = v.(float64)
	case kindInt:
		*f.intp(c) = v.(int)
	case kindColor:
		*f.colorp(c) = v.(uint32)
	case kindBool:
		*f.boolp(c) = v.(bool)
	default:
		*f.choicep(c) = v.(string)
	}
}

// coerce converts a decoded JSON/YAML value or a raw string to the field's Go type and range-checks it.
func (f *field) coerce(value any) (any, error) {
	switch f.kind {
	case kindBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, ErrWrongType
			}
			return b, nil
		}
		return nil, ErrWrongType
	case kindChoice:
		s, ok := value.(string)
		if !ok {
			return nil, ErrWrongType
		}
		s = strings.ToLower(strings.TrimSpace(s))
		for _, c := range f.choices {
			if s == c {
				return s, nil
			}
		}
		return nil, fmt.Errorf("%w: want one of %s", ErrOutOfRange, strings.Join(f.choices, ", "))
	case kindColor:
		if s, ok := value.(string); ok && strings.HasPrefix(strings.TrimSpace(s), "#") {
			c, err := colorful.Hex(strings.TrimSpace(s))
			if err != nil {
				return nil, ErrWrongType
			}
			return HexOf(c), nil
		}
	}

	n, err := number(value)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, ErrOutOfRange
	}
	if n < f.min || n > f.max || (f.minOpen && n == f.min) || (f.maxOpen && n == f.max) {
		return nil, fmt.Errorf("%w: want %s", ErrOutOfRange, f.rangeString())
	}
	switch f.kind {
	case kindInt:
		if n != math.Trunc(n) {
			return nil, ErrWrongType
		}
		return int(n), nil
	case kindColor:
		if n != math.Trunc(n) {
			return nil, ErrWrongType
		}
		return uint32(n), nil
	}
	return n, nil
}

func (f *field) rangeString() string {
	lo, hi := "[", "]"
	if f.minOpen {
		lo = "("
	}
	if f.maxOpen {
		hi = ")"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, f.min, f.max, hi)
}

// number accepts the numeric types produced by encoding/json and yaml.v3, and numeric strings.
func number(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			u, err := strconv.ParseUint(s[2:], 16, 32)
			if err != nil {
				return 0, ErrWrongType
			}
			return float64(u), nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrWrongType
		}
		return n, nil
	}
	return 0, ErrWrongType
}
