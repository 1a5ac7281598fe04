package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps a go-playground validator with English translations and
// JSON field names in its messages.
type Validator struct {
	v     *govalidator.Validate
	trans ut.Translator
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// Default returns the process-wide validator, built on first use.
func Default() *Validator {
	defaultOnce.Do(func() { defaultV = New() })
	return defaultV
}

// New builds a validator. Use JSON tag names for field names in messages so
// callers see the same names they send.
func New() *Validator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	return &Validator{v: v, trans: trans}
}

// Struct validates dst and returns a map of field path → message, or nil
// when dst is valid.
func (val *Validator) Struct(dst any) map[string]string {
	if err := val.v.Struct(dst); err != nil {
		return val.TranslateErrors(err)
	}
	return nil
}

// Validate is Struct folded into a single error, for callers that only need
// pass or fail.
func (val *Validator) Validate(dst any) error {
	fields := val.Struct(dst)
	if fields == nil {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return errors.New(strings.Join(parts, "; "))
}

// TranslateErrors takes a validation error and returns a map of field
// path → human-readable message. If the error is not a validation error, it
// returns a single-key map with "detail".
func (val *Validator) TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe)] = fe.Translate(val.trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// fieldPath drops the root struct name from the namespace so nested errors
// read as "career_paths[2].title".
func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
