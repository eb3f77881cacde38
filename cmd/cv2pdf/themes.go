package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	cv2pdf "github.com/alnah/go-cv2pdf"
)

// runThemes lists available themes, built-in and custom.
func runThemes(args []string, deps *Dependencies) error {
	flags, _, err := parseThemesFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errBadFlags, err)
	}

	names, err := cv2pdf.ListThemes(flags.themeDir)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
