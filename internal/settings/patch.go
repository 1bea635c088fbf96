package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Patch is a partial Settings record. Nil fields are left untouched by
// Store.Update.
type Patch struct {
	Theme                     *ThemeMode `json:"theme,omitempty"`
	ShowCandlestickBackground *bool      `json:"showCandlestickBackground,omitempty"`
	FontSize                  *FontSize  `json:"fontSize,omitempty"`
	HighContrastMode          *bool      `json:"highContrastMode,omitempty"`
	ReduceMotion              *bool      `json:"reduceMotion,omitempty"`

	EnableNotifications *bool `json:"enableNotifications,omitempty"`

	ChartTimeframe *Timeframe `json:"chartTimeframe,omitempty"`
	Currency       *Currency  `json:"currency,omitempty"`

	DefaultOrderType        *OrderType `json:"defaultOrderType,omitempty"`
	ConfirmTrades           *bool      `json:"confirmTrades,omitempty"`
	ShowProfitLossInPercent *bool      `json:"showProfitLossInPercent,omitempty"`

	BiometricLogin        *bool      `json:"biometricLogin,omitempty"`
	DataUsage             *DataUsage `json:"dataUsage,omitempty"`
	AnalyticsEnabled      *bool      `json:"analyticsEnabled,omitempty"`
	ScreenReaderOptimized *bool      `json:"screenReaderOptimized,omitempty"`
}

// Apply returns base with every non-nil field of p overwritten.
func (p Patch) Apply(base Settings) Settings {
	setIf(&base.Theme, p.Theme)
	setIf(&base.ShowCandlestickBackground, p.ShowCandlestickBackground)
	setIf(&base.FontSize, p.FontSize)
	setIf(&base.HighContrastMode, p.HighContrastMode)
	setIf(&base.ReduceMotion, p.ReduceMotion)
	setIf(&base.EnableNotifications, p.EnableNotifications)
	setIf(&base.ChartTimeframe, p.ChartTimeframe)
	setIf(&base.Currency, p.Currency)
	setIf(&base.DefaultOrderType, p.DefaultOrderType)
	setIf(&base.ConfirmTrades, p.ConfirmTrades)
	setIf(&base.ShowProfitLossInPercent, p.ShowProfitLossInPercent)
	setIf(&base.BiometricLogin, p.BiometricLogin)
	setIf(&base.DataUsage, p.DataUsage)
	setIf(&base.AnalyticsEnabled, p.AnalyticsEnabled)
	setIf(&base.ScreenReaderOptimized, p.ScreenReaderOptimized)
	return base
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Keys returns the keys set in p, sorted.
func (p Patch) Keys() []string {
	data, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Empty reports whether p sets no field.
func (p Patch) Empty() bool {
	return len(p.Keys()) == 0
}

// Diff returns the patch that turns from into to.
func Diff(from, to Settings) Patch {
	values := make(map[string]string)
	for _, f := range fields {
		if v := f.Get(to); v != f.Get(from) {
			values[f.Key] = v
		}
	}
	p, _ := patchFromValues(values)
	return p
}

// ParsePatchJSON decodes a JSON object into a Patch. Unknown keys and
// wrongly typed values are rejected.
func ParsePatchJSON(data []byte) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	for key := range raw {
		if _, err := Lookup(key); err != nil {
			return Patch{}, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p Patch
	if err := dec.Decode(&p); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return p, nil
}

// ParseAssignments builds a Patch from KEY=VALUE strings.
func ParseAssignments(items []string) (Patch, error) {
	values := make(map[string]string, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key, value, ok := strings.Cut(trimmed, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Patch{}, fmt.Errorf("invalid format %q (expected KEY=VALUE)", item)
		}
		values[key] = strings.TrimSpace(value)
	}
	return patchFromValues(values)
}

func patchFromValues(values map[string]string) (Patch, error) {
	obj := make(map[string]any, len(values))
	for key, value := range values {
		f, err := Lookup(key)
		if err != nil {
			return Patch{}, err
		}
		if !f.Allowed(value) {
			return Patch{}, fmt.Errorf("%w: %s=%q (allowed: %s)", ErrInvalidValue, key, value, f.Domain())
		}
		if f.Bool() {
			obj[key] = value == "true"
			continue
		}
		obj[key] = value
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return Patch{}, fmt.Errorf("encoding patch: %w", err)
	}
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return Patch{}, fmt.Errorf("decoding patch: %w", err)
	}
	return p, nil
}
