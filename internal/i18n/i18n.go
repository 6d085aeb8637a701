// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the translation catalog and the per-request
// language context used by the public site and the admin panel.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Language is one of the site languages.
type Language string

// Supported languages.
const (
	FR Language = "fr"
	EN Language = "en"
	AR Language = "ar"
)

// Default is the language every request starts with.
const Default = FR

// SupportedLanguages lists the site languages in display order.
var SupportedLanguages = []Language{FR, EN, AR}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case FR, EN, AR:
		return true
	}
	return false
}

// String returns the language code.
func (l Language) String() string {
	return string(l)
}

// ParseLanguage parses an exact language code ("fr", "EN", " ar ").
func ParseLanguage(s string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Valid()
}

var (
	supportedTags = []language.Tag{language.French, language.English, language.Arabic}
	matcher       = language.NewMatcher(supportedTags)
)

// MatchLanguage finds the best supported language for a language tag or an
// Accept-Language value ("ar-TN", "en-US,en;q=0.9"). Returns Default when
// nothing matches.
func MatchLanguage(s string) Language {
	if l, ok := ParseLanguage(s); ok {
		return l
	}

	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return Default
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return Default
	}
	return SupportedLanguages[idx]
}

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog maps language -> key -> localized string. It is read-only after
// construction and safe for concurrent use.
type Catalog struct {
	translations map[Language]map[string]string
	logger       *slog.Logger
}

// NewCatalog loads the embedded locale files for all supported languages.
func NewCatalog(logger *slog.Logger) (*Catalog, error) {
	return NewCatalogFromFS(localesFS, logger)
}

// NewCatalogFromFS loads locales/<lang>/messages.json from fsys.
func NewCatalogFromFS(fsys fs.FS, logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		translations: make(map[Language]map[string]string, len(SupportedLanguages)),
		logger:       logger,
	}

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(fsys, lang); err != nil {
			return nil, fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return c, nil
}

// NewCatalogFromMap builds a catalog from in-memory translations.
func NewCatalogFromMap(translations map[Language]map[string]string) *Catalog {
	c := &Catalog{translations: make(map[Language]map[string]string, len(translations))}
	for lang, msgs := range translations {
		m := make(map[string]string, len(msgs))
		for k, v := range msgs {
			m[k] = v
		}
		c.translations[lang] = m
	}
	return c
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(fsys fs.FS, lang Language) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	msgs := make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		msgs[msg.ID] = msg.Translation
	}
	c.translations[lang] = msgs

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgs))
	}
	return nil
}

// Lookup returns the string configured for key in lang. A key that is
// missing (or empty) in that language comes back unchanged; there is no
// fallback to another language, so untranslated keys stay visible.
func (c *Catalog) Lookup(lang Language, key string) string {
	if c == nil {
		return key
	}
	if s := c.translations[lang][key]; s != "" {
		return s
	}
	if c.logger != nil {
		c.logger.Debug("missing translation", "key", key, "lang", lang)
	}
	return key
}

// Keys returns the sorted keys defined for lang.
func (c *Catalog) Keys(lang Language) []string {
	keys := make([]string, 0, len(c.translations[lang]))
	for k := range c.translations[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of translations loaded for lang.
func (c *Catalog) Count(lang Language) int {
	return len(c.translations[lang])
}
