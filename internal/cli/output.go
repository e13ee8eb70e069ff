package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/dmitrymomot/kvcmd/core/store"
)

// Format renders a reply value the way redis-cli does: scalars on one line,
// collections as numbered entries. JSON documents are indented.
func Format(v any) string {
	var b strings.Builder
	writeValue(&b, v, "")
	return strings.TrimRight(b.String(), "\n")
}

func writeValue(b *strings.Builder, v any, indent string) {
	switch val := v.(type) {
	case nil:
		b.WriteString("(nil)\n")
		return
	case string:
		b.WriteString(formatString(val, indent))
		b.WriteString("\n")
		return
	case []byte:
		b.WriteString(formatString(string(val), indent))
		b.WriteString("\n")
		return
	case error:
		fmt.Fprintf(b, "(error) %v\n", val)
		return
	case fmt.Stringer:
		b.WriteString(val.String())
		b.WriteString("\n")
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			b.WriteString("(empty)\n")
			return
		}
		for i := 0; i < rv.Len(); i++ {
			prefix := fmt.Sprintf("%d) ", i+1)
			b.WriteString(prefix)
			writeValue(b, rv.Index(i).Interface(), indent+strings.Repeat(" ", len(prefix)))
			if i < rv.Len()-1 {
				b.WriteString(indent)
			}
		}
	case reflect.Map:
		if rv.Len() == 0 {
			b.WriteString("(empty)\n")
			return
		}
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := fmt.Sprint(k.Interface())
			keys = append(keys, ks)
			byKey[ks] = rv.MapIndex(k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			fmt.Fprintf(b, "%s: ", k)
			writeValue(b, byKey[k].Interface(), indent+"  ")
			if i < len(keys)-1 {
				b.WriteString(indent)
			}
		}
	default:
		fmt.Fprintf(b, "%v\n", v)
	}
}

func formatString(s string, indent string) string {
	trimmed := strings.TrimSpace(s)
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && json.Valid([]byte(trimmed)) {
		out := strings.TrimRight(string(pretty.Pretty([]byte(trimmed))), "\n")
		return strings.ReplaceAll(out, "\n", "\n"+indent)
	}
	return s
}

// writeOutcome prints the per-command results of a multi or pipeline call.
func writeOutcome(w io.Writer, out store.Outcome[any]) {
	if out.Aborted {
		fmt.Fprintln(w, "(aborted)")
		return
	}
	if out.Len() == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	for i, r := range out.Results {
		if r.Err != nil {
			fmt.Fprintf(w, "%d) %s: (error) %v\n", i+1, r.Command, r.Err)
			continue
		}
		fmt.Fprintf(w, "%d) %s: %s\n", i+1, r.Command, Format(r.Value))
	}
}
