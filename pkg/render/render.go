// Package render fills statement templates with argument values.
package render

import (
	"sort"
	"strings"

	"github.com/aretw0/twotruths/pkg/domain"
)

// Placeholder returns the literal marker a template uses for key.
func Placeholder(key string) string {
	return "{" + key + "}"
}

// Render replaces the first "{key}" in template with the text of args[key],
// for every key of args.
//
// Positions are taken from the template alone and filled in one pass, so
// text coming from a value is never re-scanned for placeholders. Later
// repeats of a placeholder, and placeholders without a key, are left as
// they are.
func Render(template string, args domain.ValueMap) string {
	if len(args) == 0 || !strings.Contains(template, "{") {
		return template
	}

	type span struct {
		start, end int
		text       string
	}
	spans := make([]span, 0, len(args))
	for k, v := range args {
		p := Placeholder(k)
		if i := strings.Index(template, p); i >= 0 {
			spans = append(spans, span{start: i, end: i + len(p), text: v.Text()})
		}
	}
	if len(spans) == 0 {
		return template
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var b strings.Builder
	b.Grow(len(template))
	pos := 0
	for _, sp := range spans {
		if sp.start < pos {
			continue
		}
		b.WriteString(template[pos:sp.start])
		b.WriteString(sp.text)
		pos = sp.end
	}
	b.WriteString(template[pos:])
	return b.String()
}

// Missing lists the placeholders in template that args does not fill, in order
// of first appearance.
func Missing(template string, args domain.ValueMap) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, key := range placeholders(template) {
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := args[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// Repeated lists the placeholders that occur more than once in template.
// Render fills only the first of them.
func Repeated(template string) []string {
	var repeated []string
	counts := make(map[string]int)
	for _, key := range placeholders(template) {
		counts[key]++
		if counts[key] == 2 {
			repeated = append(repeated, key)
		}
	}
	return repeated
}

// placeholders returns every "{key}" key in template, in order.
func placeholders(template string) []string {
	var keys []string
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return keys
		}
		end := strings.IndexByte(rest[open+1:], '}')
		if end < 0 {
			return keys
		}
		key := rest[open+1 : open+1+end]
		if key != "" && !strings.ContainsAny(key, "{ ") {
			keys = append(keys, key)
		}
		rest = rest[open+1:]
	}
}
