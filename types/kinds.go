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

// Kind classifies types: value types have kind Value, row types have kind
// Row. The two never unify with each other.
type Kind interface {
	KindName() string
	Equal(Kind) bool
}

// Value is the kind of ordinary types (Bool, Int, functions, records).
type Value struct{}

func (Value) KindName() string { return "type" }
func (Value) Equal(other Kind) bool {
	_, ok := other.(Value)
	return ok
}

// Row is the kind of row types, which only appear as record extensions.
type Row struct{}

func (Row) KindName() string { return "row" }
func (Row) Equal(other Kind) bool {
	_, ok := other.(Row)
	return ok
}

// KindOf returns the kind of a monotype. Variables carry the kind of their
// bound, so callers resolve them through the prefix first; an unresolved
// variable reports kind Value.
func KindOf(t Monotype) Kind {
	switch t.(type) {
	case RowEmpty, *RowExtension:
		return Row{}
	default:
		return Value{}
	}
}
