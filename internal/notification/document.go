// Package notification renders the recipient-agnostic HTML digest of a
// submission. Rendering is deterministic for a given record (section
// order is fixed, field names are sorted) and is recomputed per
// request; documents are never persisted.
package notification

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"scopeapi/internal/model"
)

const (
	placeholderValue   = "N/A"
	placeholderSection = "[Not defined]"
)

// sections lists the six questionnaire parts in presentation order.
var sections = []struct {
	Key   string
	Title string
}{
	{"part1", "Part 1 — Business Context"},
	{"part2", "Part 2 — Audience & Users"},
	{"part3", "Part 3 — Data Sources"},
	{"part4", "Part 4 — Metrics & KPIs"},
	{"part5", "Part 5 — Design & Layout"},
	{"part6", "Part 6 — Delivery & Access"},
}

// Render produces the HTML notification document for a submission.
func Render(rec *model.SubmissionRecord) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:640px">`)
	b.WriteString(`<h2>Dashboard Scoping Submission</h2>`)

	b.WriteString(`<p>`)
	fmt.Fprintf(&b, `<strong>Submitted at:</strong> %s<br>`, escapeOr(rec.Timestamp, placeholderValue))
	fmt.Fprintf(&b, `<strong>Submitter email:</strong> %s`, escapeOr(rec.UserEmail, placeholderValue))
	b.WriteString(`</p>`)

	seen := make(map[string]bool, len(sections))
	for _, sec := range sections {
		seen[sec.Key] = true
		renderSection(&b, sec.Title, rec.FormData[sec.Key])
	}

	// Sections outside the known six are appended in name order so
	// nothing the client sent is silently dropped.
	extras := make([]string, 0)
	for key := range rec.FormData {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		renderSection(&b, key, rec.FormData[key])
	}

	b.WriteString(`<h3>Attached Files</h3>`)
	if len(rec.FileURLs) == 0 {
		fmt.Fprintf(&b, `<p>%s</p>`, placeholderValue)
	} else {
		b.WriteString(`<ul>`)
		for _, u := range rec.FileURLs {
			esc := template.HTMLEscapeString(u)
			fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, esc, esc)
		}
		b.WriteString(`</ul>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func renderSection(b *strings.Builder, title string, fields map[string]any) {
	fmt.Fprintf(b, `<h3>%s</h3>`, template.HTMLEscapeString(title))
	if len(fields) == 0 {
		fmt.Fprintf(b, `<p>%s</p>`, placeholderSection)
		return
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString(`<table cellpadding="4" style="border-collapse:collapse">`)
	for _, name := range names {
		fmt.Fprintf(b, `<tr><td><strong>%s</strong></td><td>%s</td></tr>`,
			template.HTMLEscapeString(name), formatValue(fields[name]))
	}
	b.WriteString(`</table>`)
}

// formatValue renders a free-form field value as escaped HTML text.
// Absent or empty values become the placeholder rather than failing.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return placeholderValue
	case string:
		return escapeOr(t, placeholderValue)
	case []string:
		return joinList(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, fmt.Sprint(item))
		}
		return joinList(parts)
	case float64:
		// JSON numbers decode as float64; ratings are small integers.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return template.HTMLEscapeString(fmt.Sprint(t))
	default:
		return escapeOr(fmt.Sprint(t), placeholderValue)
	}
}

func joinList(items []string) string {
	if len(items) == 0 {
		return placeholderValue
	}
	return template.HTMLEscapeString(strings.Join(items, ", "))
}

func escapeOr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return template.HTMLEscapeString(s)
}
