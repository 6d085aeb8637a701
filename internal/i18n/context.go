// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

// Text directions written to the root document.
const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)

// Document holds the presentation attributes of the root element.
type Document struct {
	Lang string
	Dir  string
}

// Direction returns the text direction for lang: rtl for Arabic, ltr for
// everything else.
func Direction(lang Language) string {
	if lang == AR {
		return DirRTL
	}
	return DirLTR
}

// DocumentObserver is notified every time the document attributes change.
type DocumentObserver func(Document)

// Context is the active-language state of one rendering pass. It is built
// once per request and is not safe for concurrent use.
type Context struct {
	catalog  *Catalog
	lang     Language
	doc      Document
	observer DocumentObserver
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithObserver registers fn to receive document attribute changes,
// including the initial one.
func WithObserver(fn DocumentObserver) ContextOption {
	return func(c *Context) {
		c.observer = fn
	}
}

// NewContext creates a Context for lang. Unsupported values start the
// context in Default. The document attributes are applied immediately.
func NewContext(catalog *Catalog, lang Language, opts ...ContextOption) *Context {
	c := &Context{catalog: catalog}
	for _, opt := range opts {
		opt(c)
	}
	if !lang.Valid() {
		lang = Default
	}
	c.SetLanguage(lang)
	return c
}

// Language returns the active language.
func (c *Context) Language() Language {
	return c.lang
}

// SetLanguage switches the active language and updates the document
// attributes. Values are not validated.
func (c *Context) SetLanguage(lang Language) {
	c.lang = lang
	c.doc = Document{Lang: string(lang), Dir: Direction(lang)}
	if c.observer != nil {
		c.observer(c.doc)
	}
}

// T translates key in the active language.
func (c *Context) T(key string) string {
	return c.catalog.Lookup(c.lang, key)
}

// Document returns the current document attributes.
func (c *Context) Document() Document {
	return c.doc
}

// IsRTL reports whether the active language is written right to left.
func (c *Context) IsRTL() bool {
	return c.doc.Dir == DirRTL
}
