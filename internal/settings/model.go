// Package settings owns the user preference record of the Blue client: its
// closed schema, defaults, validation, persistence and change propagation.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrUnknownKey is returned for keys outside the settings schema.
	ErrUnknownKey = errors.New("unknown settings key")
	// ErrInvalidValue is returned for values outside a key's domain.
	ErrInvalidValue = errors.New("invalid settings value")
)

// ThemeMode selects the color palette.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system" // follows the host color scheme
)

// FontSize is the base text size preference.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Timeframe is the default chart range.
type Timeframe string

const (
	Timeframe1D Timeframe = "1D"
	Timeframe1W Timeframe = "1W"
	Timeframe1M Timeframe = "1M"
	Timeframe3M Timeframe = "3M"
	Timeframe1Y Timeframe = "1Y"
)

// Currency is the display currency.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// OrderType is the order type preselected on the trading screen.
type OrderType string

const (
	OrderMarket OrderType = "market"
	OrderLimit  OrderType = "limit"
	OrderStop   OrderType = "stop"
)

// DataUsage controls when market data may be fetched.
type DataUsage string

const (
	DataWifiOnly DataUsage = "wifi-only"
	DataAlways   DataUsage = "always"
)

// Settings is the complete preference record. It is a plain value: copies
// handed out by the Store never alias the Store's state.
type Settings struct {
	// Appearance
	Theme                     ThemeMode `json:"theme" yaml:"theme"`
	ShowCandlestickBackground bool      `json:"showCandlestickBackground" yaml:"showCandlestickBackground"`
	FontSize                  FontSize  `json:"fontSize" yaml:"fontSize"`
	HighContrastMode          bool      `json:"highContrastMode" yaml:"highContrastMode"`
	ReduceMotion              bool      `json:"reduceMotion" yaml:"reduceMotion"`

	// Notifications
	EnableNotifications bool `json:"enableNotifications" yaml:"enableNotifications"`

	// Charts & Data
	ChartTimeframe Timeframe `json:"chartTimeframe" yaml:"chartTimeframe"`
	Currency       Currency  `json:"currency" yaml:"currency"`

	// Trading Preferences
	DefaultOrderType        OrderType `json:"defaultOrderType" yaml:"defaultOrderType"`
	ConfirmTrades           bool      `json:"confirmTrades" yaml:"confirmTrades"`
	ShowProfitLossInPercent bool      `json:"showProfitLossInPercent" yaml:"showProfitLossInPercent"`

	// Security & Privacy
	BiometricLogin        bool      `json:"biometricLogin" yaml:"biometricLogin"`
	DataUsage             DataUsage `json:"dataUsage" yaml:"dataUsage"`
	AnalyticsEnabled      bool      `json:"analyticsEnabled" yaml:"analyticsEnabled"`
	ScreenReaderOptimized bool      `json:"screenReaderOptimized" yaml:"screenReaderOptimized"`
}

// Defaults returns the default preference record.
func Defaults() Settings {
	return Settings{
		Theme:                     ThemeLight,
		ShowCandlestickBackground: true,
		FontSize:                  FontMedium,
		HighContrastMode:          false,
		ReduceMotion:              false,

		EnableNotifications: true,

		ChartTimeframe: Timeframe1D,
		Currency:       CurrencyUSD,

		DefaultOrderType:        OrderMarket,
		ConfirmTrades:           true,
		ShowProfitLossInPercent: false,

		BiometricLogin:        false,
		DataUsage:             DataAlways,
		AnalyticsEnabled:      true,
		ScreenReaderOptimized: false,
	}
}

// Group names, in display order.
const (
	GroupAppearance    = "Appearance"
	GroupNotifications = "Notifications"
	GroupCharts        = "Charts & Data"
	GroupTrading       = "Trading Preferences"
	GroupSecurity      = "Security & Privacy"
)

// Groups returns the field groups in display order.
func Groups() []string {
	return []string{GroupAppearance, GroupNotifications, GroupCharts, GroupTrading, GroupSecurity}
}

// Field describes one settings key.
type Field struct {
	Key    string
	Group  string
	Label  string
	Values []string // nil for boolean fields

	get func(*Settings) string
}

// Bool reports whether the field holds a boolean.
func (f Field) Bool() bool {
	return f.Values == nil
}

// Get returns the field's value in s as a string.
func (f Field) Get(s Settings) string {
	return f.get(&s)
}

// Allowed reports whether value belongs to the field's domain.
func (f Field) Allowed(value string) bool {
	if f.Bool() {
		return value == "true" || value == "false"
	}
	return lo.Contains(f.Values, value)
}

// Domain returns a human readable description of allowed values.
func (f Field) Domain() string {
	if f.Bool() {
		return "true|false"
	}
	return strings.Join(f.Values, "|")
}

func boolField(key, group, label string, ptr func(*Settings) *bool) Field {
	return Field{
		Key:   key,
		Group: group,
		Label: label,
		get:   func(s *Settings) string { return strconv.FormatBool(*ptr(s)) },
	}
}

func enumField[T ~string](key, group, label string, values []T, ptr func(*Settings) *T) Field {
	return Field{
		Key:    key,
		Group:  group,
		Label:  label,
		Values: lo.Map(values, func(v T, _ int) string { return string(v) }),
		get:    func(s *Settings) string { return string(*ptr(s)) },
	}
}

var fields = []Field{
	enumField("theme", GroupAppearance, "Theme",
		[]ThemeMode{ThemeLight, ThemeDark, ThemeSystem},
		func(s *Settings) *ThemeMode { return &s.Theme }),
	boolField("showCandlestickBackground", GroupAppearance, "Candlestick Background",
		func(s *Settings) *bool { return &s.ShowCandlestickBackground }),
	enumField("fontSize", GroupAppearance, "Font Size",
		[]FontSize{FontSmall, FontMedium, FontLarge},
		func(s *Settings) *FontSize { return &s.FontSize }),
	boolField("highContrastMode", GroupAppearance, "High Contrast Mode",
		func(s *Settings) *bool { return &s.HighContrastMode }),
	boolField("reduceMotion", GroupAppearance, "Reduce Motion",
		func(s *Settings) *bool { return &s.ReduceMotion }),

	boolField("enableNotifications", GroupNotifications, "Enable Notifications",
		func(s *Settings) *bool { return &s.EnableNotifications }),

	enumField("chartTimeframe", GroupCharts, "Default Timeframe",
		[]Timeframe{Timeframe1D, Timeframe1W, Timeframe1M, Timeframe3M, Timeframe1Y},
		func(s *Settings) *Timeframe { return &s.ChartTimeframe }),
	enumField("currency", GroupCharts, "Currency",
		[]Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP},
		func(s *Settings) *Currency { return &s.Currency }),

	enumField("defaultOrderType", GroupTrading, "Default Order Type",
		[]OrderType{OrderMarket, OrderLimit, OrderStop},
		func(s *Settings) *OrderType { return &s.DefaultOrderType }),
	boolField("confirmTrades", GroupTrading, "Confirm Trades",
		func(s *Settings) *bool { return &s.ConfirmTrades }),
	boolField("showProfitLossInPercent", GroupTrading, "Show P/L in Percent",
		func(s *Settings) *bool { return &s.ShowProfitLossInPercent }),

	boolField("biometricLogin", GroupSecurity, "Biometric Login",
		func(s *Settings) *bool { return &s.BiometricLogin }),
	enumField("dataUsage", GroupSecurity, "Data Usage",
		[]DataUsage{DataWifiOnly, DataAlways},
		func(s *Settings) *DataUsage { return &s.DataUsage }),
	boolField("analyticsEnabled", GroupSecurity, "Analytics",
		func(s *Settings) *bool { return &s.AnalyticsEnabled }),
	boolField("screenReaderOptimized", GroupSecurity, "Screen Reader Optimized",
		func(s *Settings) *bool { return &s.ScreenReaderOptimized }),
}

var fieldsByKey = lo.KeyBy(fields, func(f Field) string { return f.Key })

// Fields returns metadata for every settings key in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Keys returns every settings key in display order.
func Keys() []string {
	return lo.Map(fields, func(f Field, _ int) string { return f.Key })
}

// Lookup returns the field for key.
func Lookup(key string) (Field, error) {
	f, ok := fieldsByKey[key]
	if !ok {
		return Field{}, fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return f, nil
}

// Get returns the value of key in s.
func (s Settings) Get(key string) (string, error) {
	f, err := Lookup(key)
	if err != nil {
		return "", err
	}
	return f.Get(s), nil
}

// Validate reports the first field holding a value outside its domain.
func (s Settings) Validate() error {
	for _, f := range fields {
		if v := f.Get(s); !f.Allowed(v) {
			return fmt.Errorf("%w: %s=%q (allowed: %s)", ErrInvalidValue, f.Key, v, f.Domain())
		}
	}
	return nil
}
