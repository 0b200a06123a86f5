// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)
var emptyList = immutable.NewList()

// EmptyTypeMap is the map with no labels.
var EmptyTypeMap = TypeMap{emptyMap}

// EmptyTypeList is the list with no types.
var EmptyTypeList = TypeList{emptyList}

// TypeMap contains immutable mappings from row labels to immutable lists of
// types. A label maps to more than one type when a row repeats the label;
// list order is the left-to-right order the entries were written in, which is
// the order shadowing resolves in.
type TypeMap struct {
	m *immutable.SortedMap
}

// SingletonTypeMap creates a TypeMap with a single entry.
func SingletonTypeMap(label string, t Monotype) TypeMap {
	return TypeMap{emptyMap.Set(label, emptyList.Append(t))}
}

// Len returns the number of distinct labels in the map.
func (m TypeMap) Len() int { return m.m.Len() }

// Get returns the list of types for a label.
func (m TypeMap) Get(label string) (TypeList, bool) {
	l, ok := m.m.Get(label)
	if !ok {
		return EmptyTypeList, false
	}
	return TypeList{l.(*immutable.List)}, true
}

// Range iterates over entries in the map, sorted by label. If f returns
// false, iteration stops.
func (m TypeMap) Range(f func(string, TypeList) bool) {
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), TypeList{v.(*immutable.List)}) {
			return
		}
	}
}

// Builder converts the map to a builder for modification, without mutating
// the existing map.
func (m TypeMap) Builder() TypeMapBuilder {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return TypeMapBuilder{immutable.NewSortedMapBuilder(imm)}
}

// TypeMapBuilder enables in-place updates of a map before finalization.
type TypeMapBuilder struct {
	b *immutable.SortedMapBuilder
}

// NewTypeMapBuilder creates a builder over the empty map.
func NewTypeMapBuilder() TypeMapBuilder {
	return TypeMapBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

// Len returns the number of distinct labels in the builder.
func (b TypeMapBuilder) Len() int { return b.b.Len() }

// Set replaces the type list for a label.
func (b TypeMapBuilder) Set(label string, ts TypeList) TypeMapBuilder {
	b.b.Set(label, ts.l)
	return b
}

// Add appends a type to a label's list, creating the label if needed.
func (b TypeMapBuilder) Add(label string, t Monotype) TypeMapBuilder {
	if l, ok := b.b.Get(label); ok {
		b.b.Set(label, l.(*immutable.List).Append(t))
		return b
	}
	b.b.Set(label, emptyList.Append(t))
	return b
}

// Merge appends every entry of m into the builder, after any types already
// recorded for the same label.
func (b TypeMapBuilder) Merge(m TypeMap) TypeMapBuilder {
	m.Range(func(label string, ts TypeList) bool {
		ts.Range(func(_ int, t Monotype) bool {
			b.Add(label, t)
			return true
		})
		return true
	})
	return b
}

// Build finalizes the builder into an immutable map.
func (b TypeMapBuilder) Build() TypeMap {
	if b.b == nil {
		return EmptyTypeMap
	}
	return TypeMap{b.b.Map()}
}

// TypeList is an immutable list of types.
type TypeList struct {
	l *immutable.List
}

// SingletonTypeList creates a TypeList with a single entry.
func SingletonTypeList(t Monotype) TypeList { return TypeList{emptyList.Append(t)} }

// Len returns the number of types in the list.
func (l TypeList) Len() int { return l.l.Len() }

// Get returns the type at index i.
func (l TypeList) Get(i int) Monotype { return l.l.Get(i).(Monotype) }

// Append returns a list with t added at the end.
func (l TypeList) Append(t Monotype) TypeList { return TypeList{l.l.Append(t)} }

// Slice returns the sub-list between start (inclusive) and end (exclusive).
func (l TypeList) Slice(start, end int) TypeList { return TypeList{l.l.Slice(start, end)} }

// Range iterates over the list in order. If f returns false,
// iteration stops.
func (l TypeList) Range(f func(int, Monotype) bool) {
	iter := l.l.Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if !f(i, v.(Monotype)) {
			return
		}
	}
}
