// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ar_translations "github.com/go-playground/validator/v10/translations/ar"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"

	"github.com/olegiv/senatec-go/internal/i18n"
)

type formValidator struct {
	validate    *validator.Validate
	translators map[i18n.Language]ut.Translator
}

var getValidator = sync.OnceValue(func() *formValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	frLocale := fr.New()
	uni := ut.New(frLocale, frLocale, en.New(), ar.New())

	fv := &formValidator{validate: v, translators: make(map[i18n.Language]ut.Translator)}
	register := map[i18n.Language]func(*validator.Validate, ut.Translator) error{
		i18n.FR: fr_translations.RegisterDefaultTranslations,
		i18n.EN: en_translations.RegisterDefaultTranslations,
		i18n.AR: ar_translations.RegisterDefaultTranslations,
	}
	for lang, fn := range register {
		trans, _ := uni.GetTranslator(lang.String())
		_ = fn(v, trans)
		fv.translators[lang] = trans
	}
	return fv
})

func (fv *formValidator) translator(lang i18n.Language) ut.Translator {
	if t, ok := fv.translators[lang]; ok {
		return t
	}
	return fv.translators[i18n.Default]
}

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	errs validator.ValidationErrors
}

func newValidationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return &ValidationError{errs: ve}
	}
	return err
}

func (e *ValidationError) Error() string {
	return "invalid course form: " + e.errs.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.errs
}

// Fields returns the names of the failing fields in declaration order.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.errs))
	for i, fe := range e.errs {
		out[i] = fe.Field()
	}
	return out
}

// Messages returns a localized message per failing field.
func (e *ValidationError) Messages(lang i18n.Language) map[string]string {
	trans := getValidator().translator(lang)
	out := make(map[string]string, len(e.errs))
	for _, fe := range e.errs {
		out[fe.Field()] = fe.Translate(trans)
	}
	return out
}
