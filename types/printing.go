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
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	sb strings.Builder
}

// TypeString returns the canonical string representation of a type.
//
//	Bool → Int
//	(Int, Int) → Num
//	(| x: Int, y: Int |)
//	(| x: Int | r |)
//	∀a.a → a
//	∀(f = Int → Int).f
func TypeString(t Polytype) string {
	p := newTypePrinter()
	typeString(p, false, t)
	s := p.sb.String()
	p.Release()
	return s
}

// BoundString returns the canonical string representation of a named bound:
// the bare name when the bound is a flexible ⊥, `name ≥ t` for other
// flexible bounds, and `name = t` for rigid bounds.
func BoundString(b NamedBound) string {
	p := newTypePrinter()
	boundString(p, b)
	s := p.sb.String()
	p.Release()
	return s
}

func boundString(p *typePrinter, b NamedBound) {
	p.sb.WriteString(b.Name)
	if b.Bound.Flexibility == Flexible {
		if _, ok := b.Bound.Type.(Bottom); ok {
			return
		}
		p.sb.WriteString(" ≥ ")
	} else {
		p.sb.WriteString(" = ")
	}
	typeString(p, false, b.Bound.Type)
}

// typeString writes t to the printer. When simple is set, t appears in a
// position where a function type is ambiguous and must be parenthesized.
func typeString(p *typePrinter, simple bool, t Polytype) {
	switch t := t.(type) {
	case *Variable:
		p.sb.WriteString(t.Name)

	case *Const:
		p.sb.WriteString(t.Name)

	case *Function:
		if simple {
			p.sb.WriteByte('(')
		}
		if len(t.Params) == 1 {
			typeString(p, true, t.Params[0])
		} else {
			p.sb.WriteByte('(')
			for i, param := range t.Params {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				typeString(p, false, param)
			}
			p.sb.WriteByte(')')
		}
		p.sb.WriteString(" → ")
		typeString(p, false, t.Return)
		if simple {
			p.sb.WriteByte(')')
		}

	case RowEmpty:
		p.sb.WriteString("(||)")

	case *RowExtension:
		labels, rest := FlattenRow(t)
		p.sb.WriteString("(| ")
		i := 0
		labels.Range(func(label string, ts TypeList) bool {
			ts.Range(func(_ int, t Monotype) bool {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				p.sb.WriteString(label)
				p.sb.WriteString(": ")
				typeString(p, false, t)
				i++
				return true
			})
			return true
		})
		if _, closed := rest.(RowEmpty); !closed {
			p.sb.WriteString(" | ")
			typeString(p, false, rest)
		}
		p.sb.WriteString(" |)")

	case *Error:
		p.sb.WriteString("%error")

	case Bottom:
		p.sb.WriteString("⊥")

	case *Quantified:
		p.sb.WriteString("∀")
		if len(t.Bounds) == 1 && trivialBound(t.Bounds[0].Bound) {
			p.sb.WriteString(t.Bounds[0].Name)
		} else {
			p.sb.WriteByte('(')
			for i, b := range t.Bounds {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				boundString(p, b)
			}
			p.sb.WriteByte(')')
		}
		p.sb.WriteByte('.')
		typeString(p, false, t.Body)
	}
}

func trivialBound(b Bound) bool {
	if b.Flexibility != Flexible {
		return false
	}
	_, ok := b.Type.(Bottom)
	return ok
}
