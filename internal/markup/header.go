package markup

import (
	"sort"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/document"
)

// contactItem is one rendered contact line. An empty href renders as
// plain text (location, custom fields without URLs).
type contactItem struct {
	class string
	label string
	href  string
}

// Header renders the single-column header: photo, name, headline,
// contact line, and the updated stamp. Absent fields are omitted
// entirely, never rendered as empty placeholders.
func (r *Renderer) Header(fm document.Frontmatter) string {
	var b strings.Builder
	b.WriteString(`<header class="` + r.cls("header") + `">`)
	b.WriteString(r.photo(fm))
	b.WriteString(r.nameBlock(fm))
	b.WriteString(r.contactList(fm, false))
	b.WriteString(r.updated(fm))
	b.WriteString(`</header>`)
	return b.String()
}

// ContactCard renders the sidebar variant: photo on top, contact fields
// stacked one per line. The name itself stays in the main column.
func (r *Renderer) ContactCard(fm document.Frontmatter) string {
	var b strings.Builder
	b.WriteString(`<div class="` + r.cls("contact-card") + `">`)
	b.WriteString(r.photo(fm))
	b.WriteString(r.contactList(fm, true))
	b.WriteString(r.updated(fm))
	b.WriteString(`</div>`)
	return b.String()
}

// nameBlock renders the name and headline shared by both layouts.
func (r *Renderer) nameBlock(fm document.Frontmatter) string {
	var b strings.Builder
	if fm.Name != "" {
		b.WriteString(`<h1 class="` + r.cls("name") + `">` + escape(fm.Name) + `</h1>`)
	}
	if fm.Title != "" {
		b.WriteString(`<p class="` + r.cls("headline") + `">` + escape(fm.Title) + `</p>`)
	}
	return b.String()
}

func (r *Renderer) contactList(fm document.Frontmatter, stacked bool) string {
	items := contactItems(fm)
	if len(items) == 0 {
		return ""
	}
	class := r.cls("contact")
	if stacked {
		class += " " + r.cls("contact-stacked")
	}
	var b strings.Builder
	b.WriteString(`<ul class="` + class + `">`)
	for _, it := range items {
		b.WriteString(`<li class="` + r.cls("contact-item") + ` ` + r.cls(it.class) + `">`)
		if it.href != "" {
			b.WriteString(`<a href="` + SanitizeURL(it.href) + `">` + escape(it.label) + `</a>`)
		} else {
			b.WriteString(escape(it.label))
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func (r *Renderer) updated(fm document.Frontmatter) string {
	if fm.Updated == "" {
		return ""
	}
	return `<p class="` + r.cls("updated") + `">` + escape(fm.Updated) + `</p>`
}

// photo renders the photo, or a placeholder when the reference exists
// but cannot be resolved. No reference means no element at all.
func (r *Renderer) photo(fm document.Frontmatter) string {
	if fm.Photo == "" {
		return ""
	}
	url, err := r.resolveAsset(fm.Photo)
	if err != nil || url == "" {
		return `<div class="` + r.cls("photo") + ` ` + r.cls("photo-placeholder") + `"></div>`
	}
	return `<img class="` + r.cls("photo") + `" src="` + escape(url) + `" alt="` + escape(fm.Name) + `">`
}

// contactItems assembles the present contact fields in display order,
// with custom frontmatter extras appended alphabetically.
func contactItems(fm document.Frontmatter) []contactItem {
	var items []contactItem
	if fm.Email != "" {
		items = append(items, contactItem{"contact-email", fm.Email, "mailto:" + fm.Email})
	}
	if fm.Phone != "" {
		items = append(items, contactItem{"contact-phone", fm.Phone, telHref(fm.Phone)})
	}
	if fm.Location != "" {
		items = append(items, contactItem{"contact-location", fm.Location, ""})
	}
	if fm.Website != "" {
		href, label := websiteLink(fm.Website)
		items = append(items, contactItem{"contact-website", label, href})
	}
	if fm.GitHub != "" {
		items = append(items, contactItem{"contact-github", profileLabel(fm.GitHub), profileHref(fm.GitHub, "https://github.com/")})
	}
	if fm.LinkedIn != "" {
		items = append(items, contactItem{"contact-linkedin", profileLabel(fm.LinkedIn), profileHref(fm.LinkedIn, "https://www.linkedin.com/in/")})
	}
	for _, key := range sortedKeys(fm.Extra) {
		items = append(items, contactItem{"contact-custom", fm.Extra[key], ""})
	}
	return items
}

// telHref strips everything except digits and a leading plus so the
// displayed number can keep its formatting.
func telHref(phone string) string {
	var b strings.Builder
	b.WriteString("tel:")
	for i, r := range phone {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// websiteLink normalizes a bare domain to https and trims the scheme
// from the display label.
func websiteLink(site string) (href, label string) {
	href = site
	if !strings.Contains(site, "://") {
		href = "https://" + site
	}
	label = strings.TrimPrefix(strings.TrimPrefix(site, "https://"), "http://")
	return href, label
}

// profileHref accepts either a full URL or a bare handle for profile
// fields; handles get the service's base prepended.
func profileHref(value, base string) string {
	if strings.Contains(value, "://") {
		return value
	}
	return base + strings.TrimPrefix(value, "@")
}

// profileLabel shows the handle part of a profile URL, or the handle
// itself.
func profileLabel(value string) string {
	v := strings.TrimRight(value, "/")
	if i := strings.LastIndex(v, "/"); i >= 0 {
		return v[i+1:]
	}
	return strings.TrimPrefix(v, "@")
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escape renders user text safe for both element and attribute context.
func escape(s string) string {
	return htmlEscaper.Replace(s)
}
