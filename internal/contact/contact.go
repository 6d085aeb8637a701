// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contact builds the WhatsApp, telephone and map links of the site
// and the pre-filled WhatsApp message of the contact form.
package contact

import (
	"errors"
	"net/url"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Defaults used when configuration leaves them empty.
const (
	DefaultWhatsAppNumber = "21654023807"
	DefaultPhoneNumber    = "21698821822"
	DefaultMapsQuery      = "El Mourouj 4 Tunisia"
)

// ErrIncomplete is returned by Message.Validate when a required field is missing.
var ErrIncomplete = errors.New("contact: name and message are required")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Digits strips everything but ASCII digits from a phone number.
func Digits(number string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
}

// WhatsAppURL returns a wa.me chat link, with text pre-filled when not empty.
func WhatsAppURL(number, text string) string {
	u := "https://wa.me/" + Digits(number)
	if text != "" {
		u += "?text=" + escape(text)
	}
	return u
}

// PhoneURL returns a tel: link in international form.
func PhoneURL(number string) string {
	return "tel:+" + Digits(number)
}

// MapsURL returns a Google Maps search link.
func MapsURL(query string) string {
	return "https://maps.google.com/?q=" + url.QueryEscape(query)
}

// escape percent-encodes s with spaces as %20, which chat apps decode
// more reliably than "+".
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Message is a contact form submission.
type Message struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"omitempty,email"`
	Course  string `form:"course"`
	Message string `form:"message" validate:"required"`
}

// ParseMessage reads a submitted contact form, trimming every field.
func ParseMessage(values url.Values) Message {
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}
	return Message{
		Name:    get("name"),
		Email:   get("email"),
		Course:  get("course"),
		Message: get("message"),
	}
}

// Validate checks that name and message are present and that the email,
// when given, is well formed.
func (m Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		return errors.Join(ErrIncomplete, err)
	}
	return nil
}

// Text renders the WhatsApp message sent for m.
func (m Message) Text() string {
	var b strings.Builder
	b.WriteString("Bonjour! Je souhaite obtenir des informations sur vos formations.\n\n")
	b.WriteString("Nom: " + m.Name + "\n")
	b.WriteString("Email: " + m.Email + "\n")
	b.WriteString("Formation d'intérêt: " + m.Course + "\n")
	b.WriteString("Message: " + m.Message)
	return b.String()
}

// Links holds the contact links rendered on every page.
type Links struct {
	WhatsApp string
	Phone    string
	Maps     string
	// PhoneDisplay is the number as shown to visitors.
	PhoneDisplay string
}

// NewLinks builds the links for the configured numbers. Empty numbers
// fall back to the defaults.
func NewLinks(whatsApp, phone string) Links {
	if Digits(whatsApp) == "" {
		whatsApp = DefaultWhatsAppNumber
	}
	if Digits(phone) == "" {
		phone = DefaultPhoneNumber
	}
	return Links{
		WhatsApp:     WhatsAppURL(whatsApp, ""),
		Phone:        PhoneURL(phone),
		Maps:         MapsURL(DefaultMapsQuery),
		PhoneDisplay: "+" + Digits(phone),
	}
}
