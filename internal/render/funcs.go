// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/olegiv/senatec-go/internal/i18n"
	"github.com/olegiv/senatec-go/internal/site"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	htmlSanitizer = bluemonday.UGCPolicy()
)

// Markdown converts a blog body to sanitized HTML. Input that fails to
// convert is shown escaped.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes()))
}

// FormatDate formats t as day/month/year, the format used in all three
// languages of the site.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// FormatPrice prints a price without trailing zeros: 450, 12.5.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// TemplateFuncs returns the functions available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown":    Markdown,
		"formatDate":  FormatDate,
		"formatPrice": FormatPrice,
		"postPath": func(lang i18n.Language, id string) string {
			return site.BlogPostPath(lang, id)
		},
		"langPrefix": site.LangPrefix,
		// safeURL passes tel: links, which html/template would filter.
		"safeURL": func(s string) template.URL {
			return template.URL(s)
		},
		"isRTL": func(lang i18n.Language) bool {
			return i18n.Direction(lang) == i18n.DirRTL
		},
		"upper": func(l i18n.Language) string {
			return strings.ToUpper(l.String())
		},
	}
}
