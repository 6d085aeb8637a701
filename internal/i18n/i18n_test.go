// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"fmt"
	"testing"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(nil)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return c
}

func readMessageFile(t *testing.T, lang Language) MessageFile {
	t.Helper()
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return msgFile
}

func TestNewCatalog(t *testing.T) {
	c := loadCatalog(t)

	for _, lang := range SupportedLanguages {
		if c.Count(lang) == 0 {
			t.Errorf("Expected %s translations to be loaded", lang)
		}
	}
}

func TestLookup(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		lang     Language
		key      string
		expected string
	}{
		{FR, "nav.home", "Accueil"},
		{EN, "nav.home", "Home"},
		{AR, "nav.home", "الرئيسية"},
		{FR, "courses.filter.web", "Web Design"},
		{EN, "courses.register", "Register"},
		{AR, "common.loading", "جاري التحميل..."},
		{FR, "hero.cta.register", "S'inscrire Maintenant"},
		// Missing keys come back unchanged
		{FR, "nonexistent.key", "nonexistent.key"},
		{AR, "nonexistent.key", "nonexistent.key"},
		// Unknown language: no fallback to another language
		{Language("de"), "nav.home", "nav.home"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang)+"_"+tt.key, func(t *testing.T) {
			result := c.Lookup(tt.lang, tt.key)
			if result != tt.expected {
				t.Errorf("Lookup(%q, %q) = %q, want %q", tt.lang, tt.key, result, tt.expected)
			}
		})
	}
}

func TestLookupEveryConfiguredKey(t *testing.T) {
	c := loadCatalog(t)

	for _, lang := range SupportedLanguages {
		msgFile := readMessageFile(t, lang)
		for _, msg := range msgFile.Messages {
			if got := c.Lookup(lang, msg.ID); got != msg.Translation {
				t.Errorf("Lookup(%q, %q) = %q, want %q", lang, msg.ID, got, msg.Translation)
			}
		}
	}
}

func TestLookupNoCrossLanguageFallback(t *testing.T) {
	c := NewCatalogFromMap(map[Language]map[string]string{
		FR: {"only.fr": "Seulement", "empty": ""},
		EN: {},
	})

	if got := c.Lookup(EN, "only.fr"); got != "only.fr" {
		t.Errorf("Lookup(en, only.fr) = %q, want key unchanged", got)
	}
	if got := c.Lookup(FR, "empty"); got != "empty" {
		t.Errorf("Lookup(fr, empty) = %q, want key unchanged for empty value", got)
	}
	if got := c.Lookup(FR, "only.fr"); got != "Seulement" {
		t.Errorf("Lookup(fr, only.fr) = %q, want %q", got, "Seulement")
	}
}

func TestNilCatalogReturnsKey(t *testing.T) {
	var c *Catalog
	if got := c.Lookup(FR, "nav.home"); got != "nav.home" {
		t.Errorf("nil catalog Lookup = %q, want key", got)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  Language
		ok    bool
	}{
		{"fr", FR, true},
		{"EN", EN, true},
		{" ar ", AR, true},
		{"de", Language("de"), false},
		{"", Language(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLanguage(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLanguage(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"fr", FR},
		{"en", EN},
		{"ar", AR},
		{"ar-TN", AR},
		{"en-US", EN},
		{"fr-FR,fr;q=0.9,en;q=0.8", FR},
		{"en-GB, ar;q=0.9", EN},
		{"de", Default},
		{"", Default},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := MatchLanguage(tt.input)
			if result != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTranslationFilesNoDuplicates(t *testing.T) {
	for _, lang := range SupportedLanguages {
		t.Run(string(lang), func(t *testing.T) {
			msgFile := readMessageFile(t, lang)

			seen := make(map[string]int)
			var duplicates []string
			for i, msg := range msgFile.Messages {
				if firstIdx, exists := seen[msg.ID]; exists {
					duplicates = append(duplicates, fmt.Sprintf("%q (entries %d and %d)", msg.ID, firstIdx+1, i+1))
				} else {
					seen[msg.ID] = i
				}
			}

			if len(duplicates) > 0 {
				t.Errorf("Found %d duplicate translation IDs in %s:\n  %v", len(duplicates), lang, duplicates)
			}
		})
	}
}

func TestTranslationFilesSameKeys(t *testing.T) {
	c := loadCatalog(t)

	ref := c.Keys(SupportedLanguages[0])
	for _, lang := range SupportedLanguages[1:] {
		keys := c.Keys(lang)
		if len(keys) != len(ref) {
			t.Errorf("Translation count mismatch: %s has %d, %s has %d",
				SupportedLanguages[0], len(ref), lang, len(keys))
			continue
		}
		for i := range ref {
			if ref[i] != keys[i] {
				t.Errorf("Key mismatch between %s and %s: %q vs %q", SupportedLanguages[0], lang, ref[i], keys[i])
				break
			}
		}
	}
}
