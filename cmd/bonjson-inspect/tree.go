// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/kstenerud/go-bonjson/lib/bonjson"
)

// node is one flattened row of a Value tree: either a scalar leaf or
// the opening row of a container, which may be collapsed.
type node struct {
	path       string // lookup key into the collapsed set
	depth      int
	label      string // "key:" or "[index]", empty at the root
	value      bonjson.Value
	container  bool
	collapsed  bool
	childCount int
}

// buildTree flattens root into a display list, honoring the
// collapsed set (keyed by path string): a collapsed container's
// children are left out. Each call walks the document from the root.
func buildTree(root bonjson.Value, collapsed map[string]bool) []node {
	var nodes []node
	walk("", "", 0, root, collapsed, &nodes)
	return nodes
}

func walk(path, label string, depth int, v bonjson.Value, collapsed map[string]bool, out *[]node) {
	switch v.Type() {
	case bonjson.TypeArray:
		elems, _ := v.Array()
		n := node{path: path, depth: depth, label: label, value: v, container: true, collapsed: collapsed[path], childCount: len(elems)}
		*out = append(*out, n)
		if n.collapsed {
			return
		}
		for i, elem := range elems {
			childPath := path + "/" + strconv.Itoa(i)
			walk(childPath, fmt.Sprintf("[%d]", i), depth+1, elem, collapsed, out)
		}
	case bonjson.TypeObject:
		obj, _ := v.Object()
		n := node{path: path, depth: depth, label: label, value: v, container: true, collapsed: collapsed[path], childCount: obj.Len()}
		*out = append(*out, n)
		if n.collapsed {
			return
		}
		for _, key := range obj.Keys() {
			child, _ := obj.Get(key)
			childPath := path + "/" + key
			walk(childPath, key+":", depth+1, child, collapsed, out)
		}
	default:
		*out = append(*out, node{path: path, depth: depth, label: label, value: v})
	}
}

// scalarText renders a leaf value's inline representation.
func scalarText(v bonjson.Value) string {
	switch v.Type() {
	case bonjson.TypeNull:
		return "null"
	case bonjson.TypeBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b)
	case bonjson.TypeInt:
		n, _ := v.Int()
		return strconv.FormatInt(n, 10)
	case bonjson.TypeUint:
		n, _ := v.Uint()
		return strconv.FormatUint(n, 10)
	case bonjson.TypeFloat:
		f, _ := v.Float()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case bonjson.TypeBigNumber:
		bn, _ := v.Big()
		sign := ""
		if bn.IsNegative() {
			sign = "-"
		}
		return fmt.Sprintf("%s%de%d", sign, bn.Significand, bn.Exponent)
	case bonjson.TypeString:
		s, _ := v.String()
		return strconv.Quote(s)
	default:
		return ""
	}
}

// containerSummary renders a collapsed container's one-line
// placeholder.
func containerSummary(n node) string {
	if n.value.Type() == bonjson.TypeArray {
		return fmt.Sprintf("[ %d items ]", n.childCount)
	}
	return fmt.Sprintf("{ %d members }", n.childCount)
}
