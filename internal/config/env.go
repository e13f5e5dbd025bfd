package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LoadEnv overrides config with environment variables named by the `env` tag
// of each settings field. Every section of AppConfig is visited, so a new
// section only needs its tags.
func LoadEnv(config *AppConfig) error {
	root := reflect.ValueOf(config).Elem()
	for i := 0; i < root.NumField(); i++ {
		section := root.Field(i)
		if section.Kind() != reflect.Struct {
			continue
		}
		if err := processStructEnv(section.Addr().Interface()); err != nil {
			return fmt.Errorf("%s: %w", root.Type().Field(i).Name, err)
		}
	}

	log.Debug().
		Str("APP_ENV", os.Getenv("APP_ENV")).
		Str("DB_DRIVER", os.Getenv("DB_DRIVER")).
		Str("PORT", os.Getenv("PORT")).
		Msg("Environment overrides applied")
	return nil
}

// processStructEnv assigns tagged fields of the struct s points to.
func processStructEnv(s interface{}) error {
	val := reflect.ValueOf(s).Elem()
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		name := typ.Field(i).Tag.Get("env")
		if name == "" || !val.Field(i).CanSet() {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := setFromEnv(val.Field(i), raw); err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
	}
	return nil
}

// setFromEnv parses raw into field according to its kind. Slices of strings
// are comma separated; other unsupported kinds are left untouched.
func setFromEnv(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		field.Set(reflect.ValueOf(parts))
	}
	return nil
}
