package assets

// DefaultThemeName is the name of the built-in theme used when the
// caller names none.
const DefaultThemeName = "default"
