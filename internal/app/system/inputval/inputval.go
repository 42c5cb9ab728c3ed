// Package inputval validates request input with go-playground/validator.
//
// Struct fields are addressed by their json names, so an error in
// form.Groups[2].Members[1].Name is reported under "groups[2].members[1].name".
// Messages use the field's `label` tag ("Nama komisi is required.").
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags
const (
	notBlankTag = "notblank"
	orgKindTag  = "orgkind"
	periodTag   = "period"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterValidation(orgKindTag, orgKind)
	_ = validate.RegisterValidation(periodTag, period)
}

// Errors maps a field path to a human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Struct validates v. It returns nil when v is valid and Errors otherwise.
// Any other failure (v is not a struct) is returned as is.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	root := reflect.TypeOf(v)
	out := Errors{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), message(fe, labelFor(root, fe.StructNamespace())))
	}
	return out
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// labelFor follows a Go struct namespace (Form.Groups[0].Name) from root and
// returns the `label` tag of the last field, or the field name when it has
// none.
func labelFor(root reflect.Type, structNS string) string {
	segs := strings.Split(structNS, ".")
	if len(segs) < 2 {
		return structNS
	}
	t := root
	var field reflect.StructField
	for _, seg := range segs[1:] {
		if i := strings.IndexByte(seg, '['); i >= 0 {
			seg = seg[:i]
		}
		for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			break
		}
		f, ok := t.FieldByName(seg)
		if !ok {
			return seg
		}
		field = f
		t = f.Type
	}
	if l := field.Tag.Get("label"); l != "" {
		return l
	}
	return field.Name
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", notBlankTag:
		return label + " is required."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case orgKindTag:
		return label + " must be BEM or MPM."
	case periodTag:
		return label + " must look like 2025-2026."
	}
	msg := fe.Translate(translator)
	if f := fe.Field(); f != "" {
		msg = strings.Replace(msg, f, label, 1)
	}
	return msg
}

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func orgKind(fl validator.FieldLevel) bool {
	return IsValidOrgKind(fl.Field().String())
}

func period(fl validator.FieldLevel) bool {
	return IsValidPeriod(fl.Field().String())
}

// IsValidOrgKind reports whether s names a known organization ("bem" or "mpm",
// any case).
func IsValidOrgKind(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bem", "mpm":
		return true
	}
	return false
}

// IsValidPeriod reports whether s is a term such as "2025-2026": two
// four-digit years, the second one year after the first.
func IsValidPeriod(s string) bool {
	if len(s) != 9 || s[4] != '-' {
		return false
	}
	from, err1 := strconv.Atoi(s[:4])
	to, err2 := strconv.Atoi(s[5:])
	if err1 != nil || err2 != nil || s[0] == '+' || s[5] == '+' || s[0] == '-' || s[5] == '-' {
		return false
	}
	return from >= 1900 && to == from+1
}
