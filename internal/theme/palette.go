package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Semantic color roles. Component colors name one of these instead of a
// literal value so swapping the palette restyles every component at once.
const (
	RolePrimary     = "primary"
	RoleOnPrimary   = "onPrimary"
	RoleSecondary   = "secondary"
	RoleOnSecondary = "onSecondary"
	RoleTertiary    = "tertiary"
	RoleOnTertiary  = "onTertiary"
	RoleMuted       = "muted"
	RoleOnMuted     = "onMuted"

	RoleText          = "text"
	RoleTextSecondary = "textSecondary"
	RoleTextMuted     = "textMuted"

	RoleBackground        = "background"
	RoleSidebarBackground = "sidebarBackground"

	RoleCustom1 = "custom1"
	RoleCustom2 = "custom2"
	RoleCustom3 = "custom3"
	RoleCustom4 = "custom4"
)

// Pair is a background color with a legible foreground for content
// painted on top of it.
type Pair struct {
	Base string
	On   string
}

// Resolve maps a color key to a concrete value. The key may be a
// semantic role (resolved against the palette with fallback to the
// built-in default), a raw CSS color literal (passed through), or empty
// (resolved as the primary text role). Opacity is clamped to [0,1];
// 1 returns the color unchanged, anything lower blends hex colors into
// an rgba() string. Non-hex values cannot be blended and pass through
// unchanged. The function never returns an empty string.
func Resolve(key string, cfg *Config, opacity float64) string {
	colors := &ColorsConfig{}
	if cfg != nil {
		colors = &cfg.Colors
	}
	defaults := Defaults().Colors
	return withOpacity(resolveColor(key, colors, &defaults), opacity)
}

// ResolvePair resolves a base color together with its contrast
// counterpart. Roles with a declared "on" color use it; custom slots and
// literal colors pick black or white by perceived luminance.
func ResolvePair(key string, cfg *Config) Pair {
	base := Resolve(key, cfg, 1)
	onRole, ok := onRoleFor(key)
	if !ok {
		return Pair{Base: base, On: pickContrast(base)}
	}
	return Pair{Base: base, On: Resolve(onRole, cfg, 1)}
}

func resolveColor(key string, c, d *ColorsConfig) string {
	k := strings.TrimSpace(key)
	if k == "" {
		k = RoleText
	}
	if v, ok := roleColor(k, c, d); ok {
		return v
	}
	return k // raw literal from an older theme or an explicit override
}

// roleColor returns the configured-or-default value for a role key,
// matched case-insensitively. Normalize has already folded legacy
// aliases into the current fields by the time this runs.
func roleColor(key string, c, d *ColorsConfig) (string, bool) {
	switch strings.ToLower(key) {
	case "primary":
		return pick(c.Primary, d.Primary), true
	case "onprimary":
		return pick(c.OnPrimary, d.OnPrimary), true
	case "secondary":
		return pick(c.Secondary, d.Secondary), true
	case "onsecondary":
		return pick(c.OnSecondary, d.OnSecondary), true
	case "tertiary":
		return pick(c.Tertiary, d.Tertiary), true
	case "ontertiary":
		return pick(c.OnTertiary, d.OnTertiary), true
	case "muted":
		return pick(c.Muted, d.Muted), true
	case "onmuted":
		return pick(c.OnMuted, d.OnMuted), true
	case "text":
		return pick(c.Text, d.Text), true
	case "textsecondary":
		return pick(c.TextSecondary, d.TextSecondary), true
	case "textmuted":
		return pick(c.TextMuted, d.TextMuted), true
	case "background":
		return pick(c.Background, d.Background), true
	case "sidebarbackground":
		return pick(c.SidebarBackground, d.SidebarBackground), true
	case "custom1":
		return pick(c.Custom1, d.Custom1), true
	case "custom2":
		return pick(c.Custom2, d.Custom2), true
	case "custom3":
		return pick(c.Custom3, d.Custom3), true
	case "custom4":
		return pick(c.Custom4, d.Custom4), true
	}
	return "", false
}

// onRoleFor maps a base role to its declared contrast role.
func onRoleFor(key string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "primary":
		return RoleOnPrimary, true
	case "secondary":
		return RoleOnSecondary, true
	case "tertiary":
		return RoleOnTertiary, true
	case "muted":
		return RoleOnMuted, true
	}
	return "", false
}

// withOpacity blends a hex color into rgba() form. Opacity 1 (after
// clamping) leaves the value untouched so fully opaque colors stay in
// their original notation.
func withOpacity(color string, opacity float64) string {
	if opacity > 1 {
		opacity = 1
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity == 1 {
		return color
	}
	r, g, b, ok := parseHex(color)
	if !ok {
		return color
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatAlpha(opacity))
}

// parseHex reads #rgb or #rrggbb, expanding the 3-digit form.
func parseHex(s string) (r, g, b int, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return 0, 0, 0, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff), true
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'g', -1, 64)
}

// pickContrast chooses dark or light text for an arbitrary base color.
// Perceived luminance per ITU-R BT.601; non-hex bases get light text.
func pickContrast(base string) string {
	r, g, b, ok := parseHex(base)
	if !ok {
		return "#ffffff"
	}
	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if lum > 160 {
		return "#1f2937"
	}
	return "#ffffff"
}

// pick returns the first non-blank value.
func pick(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// pickFloat returns the fallback when v is unset (zero or negative).
func pickFloat(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}

// pickInt returns the fallback when v is unset (zero or negative).
func pickInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
