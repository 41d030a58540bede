package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits cache key segments. Keys look like
// resource::operation::arg1::arg2, which lets invalidation target all
// operations of a resource by prefix.
const KeySeparator = "::"

// maxArgsLength bounds the serialized argument section of a key. Longer
// sections (deep filter trees, large include graphs) are replaced by an
// xxhash digest. The resource::operation prefix is never digested, so
// prefix invalidation keeps working.
const maxArgsLength = 256

// NewKeySerializer returns the default serializer. It walks arguments
// with reflection and guarantees that deeply equal inputs always yield
// the same key: map keys are sorted, struct fields are visited in
// declaration order, and times are normalized to UTC.
func NewKeySerializer() KeySerializer {
	return &keySerializer{maxArgs: maxArgsLength}
}

type keySerializer struct {
	maxArgs int
}

func (s *keySerializer) SerializeKey(resource, operation string, args ...any) string {
	prefix := resource + KeySeparator + operation
	if len(args) == 0 {
		return prefix
	}

	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteString(KeySeparator)
		}
		writeValue(&b, arg)
	}

	serialized := b.String()
	if len(serialized) > s.maxArgs {
		serialized = "h:" + strconv.FormatUint(xxhash.Sum64String(serialized), 16)
	}
	return prefix + KeySeparator + serialized
}

var timeType = reflect.TypeOf(time.Time{})

// writeValue appends a deterministic representation of v to b.
func writeValue(b *strings.Builder, v any) {
	if v == nil {
		b.WriteString("nil")
		return
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			b.WriteString("nil")
			return
		}
		writeValue(b, rv.Elem().Interface())

	case reflect.String:
		b.WriteString(rv.String())

	case reflect.Bool:
		b.WriteString(strconv.FormatBool(rv.Bool()))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))

	case reflect.Slice:
		if rv.IsNil() {
			b.WriteString("nil")
			return
		}
		writeSequence(b, rv)

	case reflect.Array:
		writeSequence(b, rv)

	case reflect.Map:
		if rv.IsNil() {
			b.WriteString("nil")
			return
		}
		writeMap(b, rv)

	case reflect.Struct:
		if rv.Type() == timeType {
			b.WriteString(v.(time.Time).UTC().Format(time.RFC3339Nano))
			return
		}
		writeStruct(b, rv)

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		// Only stable within a process. Callers should not put these in
		// cache key arguments; formatting them beats panicking.
		fmt.Fprintf(b, "%T@%p", v, v)

	default:
		writeJSONFallback(b, v)
	}
}

func writeSequence(b *strings.Builder, rv reflect.Value) {
	b.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		writeValue(b, rv.Index(i).Interface())
	}
	b.WriteByte(']')
}

// writeMap emits entries sorted by serialized key so iteration order
// never leaks into the cache key.
func writeMap(b *strings.Builder, rv reflect.Value) {
	type entry struct {
		key   string
		value string
	}

	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		var kb, vb strings.Builder
		writeValue(&kb, iter.Key().Interface())
		writeValue(&vb, iter.Value().Interface())
		entries = append(entries, entry{key: kb.String(), value: vb.String()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.key)
		b.WriteByte('=')
		b.WriteString(e.value)
	}
	b.WriteByte('}')
}

func writeStruct(b *strings.Builder, rv reflect.Value) {
	rt := rv.Type()

	b.WriteByte('{')
	first := true
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(field.Name)
		b.WriteByte('=')
		writeValue(b, rv.Field(i).Interface())
	}
	b.WriteByte('}')
}

func writeJSONFallback(b *strings.Builder, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(b, "opaque:%T", v)
		return
	}
	b.Write(data)
}
