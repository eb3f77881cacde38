package cv2pdf

import (
	"time"

	"github.com/alnah/go-cv2pdf/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values,
// as used by the frontmatter "updated" field.
//   - "auto" → current date in YYYY-MM-DD format
//   - "auto:FORMAT" → current date in custom format (e.g., "auto:DD/MM/YYYY")
//   - "auto:preset" → current date using named preset (iso, european, us, long)
//   - any other value → returned unchanged (passthrough)
//
// The time parameter allows injecting a fixed time for testing; Render
// passes the render time.
func ResolveDate(value string, t time.Time) (string, error) {
	resolved, err := dateutil.ResolveDate(value, t)
	if err != nil {
		return "", wrapError(ErrInvalidDateFormat, err)
	}
	return resolved, nil
}
