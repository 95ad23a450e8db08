package validate

import (
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors mapea campo (nombre json) -> mensaje. Vacío = válido.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = msg
}

func (f FieldErrors) HasErrors() bool { return len(f) > 0 }

// Fields devuelve los nombres ordenados (salida estable en logs/tests).
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Error envuelve FieldErrors para viajar como error hasta el handler.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Fields.Fields(), ",")
}

// AsError devuelve nil si no hay errores.
func (f FieldErrors) AsError() error {
	if !f.HasErrors() {
		return nil
	}
	return &Error{Fields: f}
}

// Messages: clave "<campo>.<tag>" -> mensaje. Si falta, se usa "<campo>" y luego el default.
type Messages map[string]string

const DefaultMessage = "Invalid value"

var std = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Usamos el nombre json para que los errores coincidan con el payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("upper", hasRune(unicode.IsUpper))
	_ = v.RegisterValidation("lower", hasRune(unicode.IsLower))
	_ = v.RegisterValidation("digit", hasRune(unicode.IsDigit))
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func hasRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if pred(r) {
				return true
			}
		}
		return false
	}
}

// Struct valida s con sus tags `validate` y traduce al primer error por campo.
func Struct(s any, msgs Messages) FieldErrors {
	out := FieldErrors{}
	err := std.Struct(s)
	if err == nil {
		return out
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out.Add("_", DefaultMessage)
		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		out.Add(field, lookup(msgs, field, fe.Tag()))
	}
	return out
}

// Var valida un valor suelto (p.ej. email en reset de password).
func Var(field string, value any, tag string, msgs Messages) FieldErrors {
	out := FieldErrors{}
	err := std.Var(value, tag)
	if err == nil {
		return out
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		out.Add(field, lookup(msgs, field, verrs[0].Tag()))
		return out
	}
	out.Add(field, DefaultMessage)
	return out
}

func lookup(msgs Messages, field, tag string) string {
	if m, ok := msgs[field+"."+tag]; ok {
		return m
	}
	if m, ok := msgs[field]; ok {
		return m
	}
	return DefaultMessage
}
