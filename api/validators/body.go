package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var rutRe = regexp.MustCompile(`^\d{7,8}-[\dkK]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	if err := v.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
		return rutRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// DecodeBody fills dest from the request body, accepting JSON or URL-encoded
// form payloads, then validates the struct tags.
func DecodeBody(r *http.Request, dest any) error {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "application/x-www-form-urlencoded" || contentType == "multipart/form-data" {
		return decodeFormBody(r, dest)
	}
	return DecodeJSONBody(r, dest)
}

func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Datos inválidos").WithDetails(map[string]any{"error": err.Error()})
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func decodeFormBody(r *http.Request, dest any) error {
	if err := r.ParseForm(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Datos inválidos")
	}
	if err := assignFormValues(r.PostForm, dest); err != nil {
		return err
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// assignFormValues copies form fields into dest by json tag name. Supported
// field kinds cover the request DTOs: strings, ints, floats, bools, UUIDs,
// and pointers to those.
func assignFormValues(values url.Values, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return pkgerrors.New(pkgerrors.CodeInternal, "form decode target must be a struct pointer")
	}
	elem := rv.Elem()
	elemType := elem.Type()

	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		if !values.Has(name) {
			continue
		}
		raw := values.Get(name)
		if err := setField(elem.Field(i), raw); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Datos inválidos").WithDetails(map[string]any{"field": name})
		}
	}
	return nil
}

func setField(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Pointer {
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		ptr := reflect.New(field.Type().Elem())
		if err := setField(ptr.Elem(), raw); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	if field.Type() == reflect.TypeOf(uuid.UUID{}) {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(id))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported form field kind %s", field.Kind())
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "Datos inválidos").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Datos inválidos")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
	case "email":
		return "debe ser un correo válido"
	case "rut":
		return "debe tener el formato 12345678-9"
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual que %s", fe.Param())
	case "eqfield":
		return "las contraseñas no coinciden"
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	}
	return "no es válido"
}
