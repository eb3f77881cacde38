package theme

// Normalize applies the legacy-field-to-current-field table in place.
// Older themes used different palette names; a legacy value only fills
// its current field when that field is empty, so current names always
// win when both are present. Called once at the parse boundary so the
// rest of the engine never sees legacy fields.
func Normalize(c *Config) {
	if c == nil {
		return
	}
	aliases := []struct {
		current *string
		legacy  *string
	}{
		{&c.Colors.Primary, &c.Colors.Accent},
		{&c.Colors.OnPrimary, &c.Colors.OnAccent},
		{&c.Colors.Muted, &c.Colors.Subtle},
		{&c.Colors.TextMuted, &c.Colors.Caption},
	}
	for _, a := range aliases {
		if *a.current == "" && *a.legacy != "" {
			*a.current = *a.legacy
		}
	}
}
