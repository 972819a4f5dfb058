// Copyright 2026 The Matchopt Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package envflag fills a struct of flags from a comma-separated environment
// variable such as MATCHOPT_DEBUG=strict,logopt=1.
package envflag

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Init uses Parse with the contents of the given environment variable as input.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

// Parse sets the fields of flags from their defaults and from env.
//
// Each exported field of T is a flag named after the lower-cased field name.
// The struct tag `envflag:"..."` holds comma-separated options:
//
//	default:VALUE   the value used when env does not mention the flag
//	name:NAME       use NAME instead of the lower-cased field name
//
// env is a comma-separated list of name=value pairs. For boolean flags the
// value may be omitted, meaning true. Empty elements are ignored so that
// values can be joined without care. Names are matched case-insensitively.
// Supported field kinds are bool, int and string.
func Parse[T any](flags *T, env string) error {
	fv := reflect.ValueOf(flags).Elem()
	byName, err := fields(fv)
	if err != nil {
		return err
	}

	var errs []error
	for _, elem := range strings.Split(env, ",") {
		if elem == "" {
			continue
		}
		name, str, hasValue := strings.Cut(elem, "=")
		i, ok := byName[strings.ToLower(name)]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown flag %q", elem))
			continue
		}
		field := fv.Field(i)
		switch {
		case hasValue:
			v, err := parseValue(name, field.Kind(), str)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			field.Set(reflect.ValueOf(v))
		case field.Kind() == reflect.Bool:
			// As with Go flags, -knob is short for -knob=true.
			field.SetBool(true)
		default:
			errs = append(errs, fmt.Errorf("value needed for %s flag %q", field.Kind(), name))
		}
	}
	return errors.Join(errs...)
}

// fields applies defaults and returns the field index for every flag name.
func fields(fv reflect.Value) (map[string]int, error) {
	ft := fv.Type()
	byName := make(map[string]int, ft.NumField())
	for i := 0; i < ft.NumField(); i++ {
		sf := ft.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.ToLower(sf.Name)
		if tag, ok := sf.Tag.Lookup("envflag"); ok {
			for _, opt := range strings.Split(tag, ",") {
				key, rest, _ := strings.Cut(opt, ":")
				switch key {
				case "default":
					v, err := parseValue(name, sf.Type.Kind(), rest)
					if err != nil {
						return nil, err
					}
					fv.Field(i).Set(reflect.ValueOf(v))
				case "name":
					name = strings.ToLower(rest)
				default:
					return nil, fmt.Errorf("unknown envflag tag %q", opt)
				}
			}
		}
		byName[name] = i
	}
	return byName, nil
}

func parseValue(name string, kind reflect.Kind, str string) (v any, err error) {
	switch kind {
	case reflect.Bool:
		v, err = strconv.ParseBool(str)
	case reflect.Int:
		v, err = strconv.Atoi(str)
	case reflect.String:
		v = str
	default:
		return nil, errInvalid{fmt.Errorf("unsupported kind %s", kind)}
	}
	if err != nil {
		return nil, errInvalid{fmt.Errorf("invalid %s value for %s: %v", kind, name, err)}
	}
	return v, nil
}

// ErrInvalid indicates a malformed flag value.
var ErrInvalid = errors.New("invalid value")

type errInvalid struct{ error }

func (errInvalid) Is(err error) bool {
	return err == ErrInvalid
}
