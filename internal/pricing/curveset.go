package pricing

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// CurveSet maps cause token symbols to curve overrides.
type CurveSet struct {
	Default Curve
	causes  map[string]Curve
}

// NewCurveSet returns a set where every cause uses def.
func NewCurveSet(def Curve) *CurveSet {
	return &CurveSet{Default: def, causes: map[string]Curve{}}
}

// For returns the override registered for symbol, or the default curve.
func (s *CurveSet) For(symbol string) Curve {
	if s == nil {
		return DefaultCurve()
	}
	if c, ok := s.causes[normalizeSymbol(symbol)]; ok {
		return c
	}
	return s.Default
}

// Set registers an override after validating it.
func (s *CurveSet) Set(symbol string, c Curve) error {
	key := normalizeSymbol(symbol)
	if key == "" {
		return fmt.Errorf("%w: empty cause symbol", ErrInvalidCurve)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("cause %s: %w", key, err)
	}
	s.causes[key] = c
	return nil
}

// Len reports the number of overrides.
func (s *CurveSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.causes)
}

type curveFile struct {
	Default Curve            `mapstructure:"default"`
	Causes  map[string]Curve `mapstructure:"causes"`
}

// LoadCurveSet reads curve parameters from a YAML, JSON or TOML file. Keys absent
// from the default block fall back to DefaultCurve; cause overrides inherit the
// file's default block. An empty path yields the defaults only.
func LoadCurveSet(path string) (*CurveSet, error) {
	def := DefaultCurve()
	if strings.TrimSpace(path) == "" {
		return NewCurveSet(def), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("default.cash_fee_rate", def.CashFeeRate)
	v.SetDefault("default.slope", def.Slope)
	v.SetDefault("default.platform_receipt_share", def.PlatformReceiptShare)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("pricing: read curves file: %w", err)
	}

	var file curveFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("pricing: decode curves file: %w", err)
	}
	if err := file.Default.Validate(); err != nil {
		return nil, fmt.Errorf("pricing: default curve: %w", err)
	}

	set := NewCurveSet(file.Default)
	for symbol := range file.Causes {
		// Unmarshal zero-fills missing keys, so rebuild each override on top of the default.
		c := file.Default
		prefix := "causes." + strings.ToLower(symbol) + "."
		if v.IsSet(prefix + "cash_fee_rate") {
			c.CashFeeRate = v.GetFloat64(prefix + "cash_fee_rate")
		}
		if v.IsSet(prefix + "slope") {
			c.Slope = v.GetFloat64(prefix + "slope")
		}
		if v.IsSet(prefix + "platform_receipt_share") {
			c.PlatformReceiptShare = v.GetFloat64(prefix + "platform_receipt_share")
		}
		if err := set.Set(symbol, c); err != nil {
			return nil, fmt.Errorf("pricing: %w", err)
		}
	}
	return set, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
