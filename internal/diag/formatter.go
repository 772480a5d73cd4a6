package diag

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/scriptlex/rbparse/internal/ast"
)

// DumpAST writes an indented tree rendering of node to w: one line per
// node naming its Go type and scalar fields, recursing into Node/[]Node
// shaped fields, driven by reflection rather than a hand-written type
// switch. This grammar produces many node shapes, and reflection keeps
// the dumper exhaustive as node types are added.
func DumpAST(w io.Writer, node ast.Node) {
	dumpNode(w, reflect.ValueOf(node), 0)
}

var nodeType = reflect.TypeOf((*ast.Node)(nil)).Elem()

func dumpNode(w io.Writer, v reflect.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) || (v.Kind() == reflect.Interface && v.IsNil()) {
		return
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	elem := v
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		fmt.Fprintf(w, "%s%v\n", indent, v.Interface())
		return
	}

	typeName := elem.Type().Name()
	var scalars []string
	var children []reflect.Value
	var lists [][]reflect.Value

	for i := 0; i < elem.NumField(); i++ {
		field := elem.Type().Field(i)
		if !field.IsExported() || field.Name == "BaseNode" {
			continue
		}
		fv := elem.Field(i)
		switch {
		case fv.Type().Implements(nodeType):
			children = append(children, fv)
		case fv.Kind() == reflect.Slice && fv.Type().Elem().Implements(nodeType):
			var items []reflect.Value
			for j := 0; j < fv.Len(); j++ {
				items = append(items, fv.Index(j))
			}
			lists = append(lists, items)
		case fv.Kind() == reflect.String:
			if s := fv.String(); s != "" {
				scalars = append(scalars, fmt.Sprintf("%s=%q", field.Name, s))
			}
		case fv.Kind() == reflect.Bool:
			if fv.Bool() {
				scalars = append(scalars, field.Name)
			}
		case fv.Kind() == reflect.Int:
			if fv.Int() != 0 {
				scalars = append(scalars, fmt.Sprintf("%s=%d", field.Name, fv.Int()))
			}
		}
	}

	header := typeName
	if len(scalars) > 0 {
		header += " " + strings.Join(scalars, " ")
	}
	fmt.Fprintf(w, "%s%s\n", indent, header)

	for _, c := range children {
		dumpNode(w, c, depth+1)
	}
	for _, list := range lists {
		for _, item := range list {
			dumpNode(w, item, depth+1)
		}
	}
}
