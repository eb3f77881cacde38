package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Frontmatter keys bound to struct fields; everything else is an extra.
var knownFrontmatterKeys = map[string]bool{
	"name":     true,
	"title":    true,
	"email":    true,
	"phone":    true,
	"location": true,
	"website":  true,
	"github":   true,
	"linkedin": true,
	"photo":    true,
	"updated":  true,
}

// splitFrontmatter separates a leading "---" fence block from the body.
// No fence, or an unterminated one, means the whole input is body.
func splitFrontmatter(src []byte) (frontmatter, body []byte) {
	nl := bytes.IndexByte(src, '\n')
	if nl < 0 {
		return nil, src
	}
	if strings.TrimRight(string(src[:nl]), "\r") != "---" {
		return nil, src
	}
	rest := src[nl+1:]
	offset := 0
	for offset <= len(rest) {
		end := bytes.IndexByte(rest[offset:], '\n')
		lineStart := offset
		var line []byte
		if end < 0 {
			line = rest[offset:]
			offset = len(rest) + 1
		} else {
			line = rest[offset : offset+end]
			offset += end + 1
		}
		if strings.TrimRight(string(line), "\r") == "---" {
			return rest[:lineStart], rest[offset:]
		}
		if end < 0 {
			break
		}
	}
	return nil, src
}

// parseFrontmatter decodes the fence block. Known keys fill the struct;
// remaining scalar keys are collected into Extra so user-defined contact
// fields survive.
func parseFrontmatter(data []byte) (*Frontmatter, error) {
	var fm Frontmatter
	if err := yamlutil.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}
	raw, err := yamlutil.UnmarshalMap(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}
	fm.Extra = extraFields(raw)
	return &fm, nil
}

// extraFields keeps scalar values only; nested structures are not
// contact fields.
func extraFields(raw map[string]any) map[string]string {
	var extra map[string]string
	for k, v := range raw {
		if knownFrontmatterKeys[strings.ToLower(k)] {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case bool:
			s = strconv.FormatBool(val)
		case int, int64, uint64, float64:
			s = fmt.Sprintf("%v", val)
		default:
			continue
		}
		if extra == nil {
			extra = map[string]string{}
		}
		extra[k] = s
	}
	return extra
}
