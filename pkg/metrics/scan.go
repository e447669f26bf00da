package metrics

import (
	"fmt"
	"path"
	"reflect"
	"strings"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
)

var (
	int64MeasureType   = reflect.TypeOf((*stats.Int64Measure)(nil))
	float64MeasureType = reflect.TypeOf((*stats.Float64Measure)(nil))
)

// metricTags are the struct tags decorating the fields of a metrics struct:
//   - metric: the name of the measure
//   - group: a path element inserted before nested metrics (e.g. root/{group}/{metric})
//   - unit: count (the default), milliseconds or entries
//   - description: describes the measure and its views
//   - extraviews: additional aggregations (count, sum or lastvalue)
//   - tags: the tag keys views are grouped by
type metricTags struct {
	metric      string
	group       string
	unit        string
	description string
	extraViews  []string
	keys        []tag.Key
}

func parseTags(field reflect.StructField) metricTags {
	t := metricTags{
		metric:      field.Tag.Get("metric"),
		group:       field.Tag.Get("group"),
		unit:        field.Tag.Get("unit"),
		description: field.Tag.Get("description"),
		extraViews:  splitList(field.Tag.Get("extraviews")),
	}
	for _, key := range splitList(field.Tag.Get("tags")) {
		t.keys = append(t.keys, tag.MustNewKey(key))
	}
	return t
}

func splitList(list string) []string {
	var parts []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// measureFunc builds the measure declared at some path, along with its views
type measureFunc func(name string, tags metricTags, typ reflect.Type) stats.Measure

// scanStruct allocates the measures declared by the fields of m, which must be a pointer to a struct.
//
// Nested structs (or pointers to structs) are walked, with their group appended to the path.
// Slices, maps and fields which are not measures are ignored.
func scanStruct(location string, build measureFunc, m interface{}) {
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("metrics: registration requires a pointer to a struct, got %T", m))
	}
	walkStruct(location, build, rv.Elem())
}

func walkStruct(location string, build measureFunc, sv reflect.Value) {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		fv := sv.Field(i)
		if !field.IsExported() || !fv.CanSet() {
			continue
		}
		tags := parseTags(field)

		if tags.metric != "" {
			if fv.Type() != int64MeasureType && fv.Type() != float64MeasureType {
				continue
			}
			if measure := build(path.Join(location, tags.group, tags.metric), tags, fv.Type()); measure != nil {
				fv.Set(reflect.ValueOf(measure))
			}
			continue
		}

		switch fv.Kind() {
		case reflect.Struct:
			walkStruct(path.Join(location, tags.group), build, fv)
		case reflect.Ptr:
			if fv.Type().Elem().Kind() != reflect.Struct {
				continue
			}
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			walkStruct(path.Join(location, tags.group), build, fv.Elem())
		}
	}
}
