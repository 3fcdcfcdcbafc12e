package i18n

import (
	"reflect"
	"strings"
)

// LocalizedField reads "{base}_{lang}" from v, falling back to "{base}" and
// then to "". v may be a map keyed by column name or a struct (or pointer to
// one) whose fields carry db or json tags. Empty strings and nil pointers
// count as missing.
func LocalizedField(v any, base string, lang Language) string {
	suffixed := base + "_" + string(lang.OrDefault())
	if s, ok := lookupString(v, suffixed); ok {
		return s
	}
	if s, ok := lookupString(v, base); ok {
		return s
	}
	return ""
}

func lookupString(v any, name string) (string, bool) {
	switch m := v.(type) {
	case nil:
		return "", false
	case map[string]string:
		s := m[name]
		return s, s != ""
	case map[string]any:
		return stringValue(reflect.ValueOf(m[name]))
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return "", false
	}
	field, ok := fieldByColumn(rv, name)
	if !ok {
		return "", false
	}
	return stringValue(field)
}

// fieldByColumn walks embedded structs too.
func fieldByColumn(rv reflect.Value, name string) (reflect.Value, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if f, ok := fieldByColumn(rv.Field(i), name); ok {
				return f, true
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if tagName(sf.Tag.Get("db")) == name || tagName(sf.Tag.Get("json")) == name {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func stringValue(rv reflect.Value) (string, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.String {
		return "", false
	}
	s := rv.String()
	return s, s != ""
}
