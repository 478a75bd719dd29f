package environment

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// ParseEnvTags fills the exported fields of cfg from PREFIX_NAME variables.
//
// Tags:
//
//	env:"NAME"            variable name without the prefix
//	default:"value"       used when the variable is unset or empty
//	required:"true"       unset and no default is an error
//	separator:","         splits []string values (default ",")
//	oneof:"a,b"           the final value must be one of the listed ones
//
// Struct fields without an env tag are walked recursively, so settings can
// be grouped into embedded structs.
func ParseEnvTags(prefix string, cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return errors.New("cfg must be a pointer to a struct")
	}
	return parseStruct(prefix, v.Elem())
}

func parseStruct(prefix string, v reflect.Value) error {
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		sf := t.Field(i)
		if !field.CanSet() {
			continue
		}

		envKey := sf.Tag.Get("env")
		if envKey == "" {
			if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Time{}) {
				if err := parseStruct(prefix, field); err != nil {
					return err
				}
			}
			continue
		}

		key := GetEnvKeyPrefix(prefix, envKey)
		value := os.Getenv(key)
		if value == "" {
			value = sf.Tag.Get("default")
		}
		if value == "" && sf.Tag.Get("required") == "true" {
			return fmt.Errorf("required environment variable %s is not set", key)
		}

		if allowed := sf.Tag.Get("oneof"); allowed != "" && value != "" {
			if !slices.Contains(strings.Split(allowed, ","), value) {
				return fmt.Errorf("%s must be one of %s, got %q", key, allowed, value)
			}
		}

		if err := setFieldValue(field, value, sf.Tag.Get("separator")); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// setFieldValue parses value into field. An empty value leaves the zero value.
func setFieldValue(field reflect.Value, value, separator string) error {
	if value == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if field.Type() == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("cannot parse duration: %w", err)
			}
			n = int64(d)
		} else {
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("cannot parse int: %w", err)
			}
			n = parsed
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("%s overflows %s", value, field.Type())
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse uint: %w", err)
		}
		if field.OverflowUint(n) {
			return fmt.Errorf("%s overflows %s", value, field.Type())
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse float: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cannot parse bool: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type())
		}
		if separator == "" {
			separator = ","
		}
		var parts []string
		for _, part := range strings.Split(value, separator) {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		field.Set(reflect.ValueOf(parts))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
