package preview

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// routeResolver maps opaque photo references onto the /assets/ route,
// which serves the résumé's directory. URLs and data URIs pass through
// untouched; paths that would escape the directory fail, which the
// renderer degrades to a placeholder.
type routeResolver struct{}

func (routeResolver) ResolveAsset(ref string) (string, error) {
	if ref == "" || strings.Contains(ref, "://") || strings.HasPrefix(ref, "data:") {
		return ref, nil
	}
	clean := path.Clean(filepath.ToSlash(ref))
	if !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", fmt.Errorf("asset path escapes the source directory: %s", ref)
	}
	u := url.URL{Path: assetRoutePrefix + clean}
	return u.String(), nil
}
