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

// MonotypeEqual reports structural equality of two monotypes. Source ranges
// are ignored; variables compare by name.
func MonotypeEqual(a, b Monotype) bool {
	switch a := a.(type) {
	case *Variable:
		b, ok := b.(*Variable)
		return ok && a.Name == b.Name
	case *Const:
		b, ok := b.(*Const)
		return ok && a.Name == b.Name
	case *Function:
		bf, ok := b.(*Function)
		if !ok || len(a.Params) != len(bf.Params) {
			return false
		}
		for i, param := range a.Params {
			if !MonotypeEqual(param, bf.Params[i]) {
				return false
			}
		}
		return MonotypeEqual(a.Return, bf.Return)
	case RowEmpty:
		_, ok := b.(RowEmpty)
		return ok
	case *RowExtension:
		be, ok := b.(*RowExtension)
		if !ok {
			return false
		}
		aLabels, aRest := FlattenRow(a)
		bLabels, bRest := FlattenRow(be)
		if aLabels.Len() != bLabels.Len() || !MonotypeEqual(aRest, bRest) {
			return false
		}
		equal := true
		aLabels.Range(func(label string, ats TypeList) bool {
			bts, ok := bLabels.Get(label)
			if !ok || ats.Len() != bts.Len() {
				equal = false
				return false
			}
			ats.Range(func(i int, at Monotype) bool {
				if !MonotypeEqual(at, bts.Get(i)) {
					equal = false
					return false
				}
				return true
			})
			return equal
		})
		return equal
	case *Error:
		_, ok := b.(*Error)
		return ok
	}
	return false
}

// PolytypeEqual reports structural equality of two polytypes, ignoring
// source ranges. Quantified types compare bound-by-bound, so alpha-equivalent
// types with different bound names are not equal.
func PolytypeEqual(a, b Polytype) bool {
	switch a := a.(type) {
	case Bottom:
		_, ok := b.(Bottom)
		return ok
	case *Quantified:
		bq, ok := b.(*Quantified)
		if !ok || len(a.Bounds) != len(bq.Bounds) {
			return false
		}
		for i, ab := range a.Bounds {
			bb := bq.Bounds[i]
			if ab.Name != bb.Name || !BoundEqual(ab.Bound, bb.Bound) {
				return false
			}
		}
		return MonotypeEqual(a.Body, bq.Body)
	case Monotype:
		b, ok := b.(Monotype)
		return ok && MonotypeEqual(a, b)
	}
	return false
}

// BoundEqual reports equality of two bounds.
func BoundEqual(a, b Bound) bool {
	return a.Flexibility == b.Flexibility && PolytypeEqual(a.Type, b.Type)
}
