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

// types describes monotypes, polytypes, and type-variable bounds. Types are
// immutable; all binding state lives in a Prefix.
package types

import (
	"github.com/wdamron/mlf/ast"
	"github.com/wdamron/mlf/diagnostic"
)

// Polytype is the base interface for all types, quantified or not. Every
// Monotype is also a Polytype.
type Polytype interface {
	TypeName() string
	polytype()
}

// Monotype is the base interface for all monomorphic types.
type Monotype interface {
	Polytype
	monotype()
}

func (t *Variable) TypeName() string     { return "Variable" }
func (t *Const) TypeName() string        { return "Const" }
func (t *Function) TypeName() string     { return "Function" }
func (t RowEmpty) TypeName() string      { return "RowEmpty" }
func (t *RowExtension) TypeName() string { return "RowExtension" }
func (t *Error) TypeName() string        { return "Error" }
func (t Bottom) TypeName() string        { return "Bottom" }
func (t *Quantified) TypeName() string   { return "Quantified" }

func (t *Variable) monotype()     {}
func (t *Const) monotype()        {}
func (t *Function) monotype()     {}
func (t RowEmpty) monotype()      {}
func (t *RowExtension) monotype() {}
func (t *Error) monotype()        {}

func (t *Variable) polytype()     {}
func (t *Const) polytype()        {}
func (t *Function) polytype()     {}
func (t RowEmpty) polytype()      {}
func (t *RowExtension) polytype() {}
func (t *Error) polytype()        {}
func (t Bottom) polytype()        {}
func (t *Quantified) polytype()   {}

// Variable references an entry in a Prefix by name. It is not itself
// a binding.
type Variable struct {
	Name string
}

// Const is a primitive nullary type constructor: `Bool`, `Num`, and friends.
// The range points at the annotation or expression which introduced the type,
// when one exists.
type Const struct {
	Name  string
	Range ast.Range
}

// Names of the primitive type constructors.
const (
	BoolName  = "Bool"
	NumName   = "Num"
	IntName   = "Int"
	FloatName = "Float"
	VoidName  = "Void"
	NeverName = "Never"
)

// Bool creates a boolean type introduced at r.
func Bool(r ast.Range) *Const { return &Const{Name: BoolName, Range: r} }

// Num creates a number type introduced at r. Number is compatible with both
// integers and floats.
func Num(r ast.Range) *Const { return &Const{Name: NumName, Range: r} }

// Int creates a 32-bit integer type introduced at r.
func Int(r ast.Range) *Const { return &Const{Name: IntName, Range: r} }

// Float creates a 64-bit float type introduced at r.
func Float(r ast.Range) *Const { return &Const{Name: FloatName, Range: r} }

// Void creates the unit type introduced at r.
func Void(r ast.Range) *Const { return &Const{Name: VoidName, Range: r} }

// Never creates the bottom monotype introduced at r. No runtime value is
// typed as `Never`, so a `Never` may be supplied wherever any type
// is expected.
func Never(r ast.Range) *Const { return &Const{Name: NeverName, Range: r} }

// Function is a function type. Parameters are consumed positionally. The
// range points at the parameter list which introduced the type, when
// one exists.
type Function struct {
	Params []Monotype
	Return Monotype
	Range  ast.Range
}

// RowEmpty is the row with no fields.
type RowEmpty struct{}

// RowExtension is one or more labeled entries extending a further row: a
// variable, another extension, or RowEmpty when the record is closed.
// Duplicate labels are permitted and shadow left to right.
type RowExtension struct {
	Labels TypeMap
	Row    Monotype
}

// Error is the type produced after a failure was reported. It unifies with
// anything so a single fault yields a single diagnostic, and it is never
// shown to users directly.
type Error struct {
	Diagnostic *diagnostic.Diagnostic
}

// Bottom is the universal bottom polytype. It instantiates to an entirely
// fresh flexible variable.
type Bottom struct{}

// Quantified is a polytype universally quantified over one or more bounds.
type Quantified struct {
	Bounds []NamedBound
	Body   Monotype
}

// Flexibility is whether a bound may later be strengthened.
type Flexibility int

const (
	// Flexible bounds may be replaced by a more specific bound
	// during unification.
	Flexible Flexibility = iota
	// Rigid bounds are fixed; unification against them may only succeed by
	// equality, never by mutation.
	Rigid
)

// Bound constrains a quantified or prefix-bound type variable.
type Bound struct {
	Flexibility Flexibility
	Type        Polytype
}

// NamedBound pairs a bound with the variable name it constrains.
type NamedBound struct {
	Name  string
	Bound Bound
}

// BottomBound is the bound of a fully unconstrained variable.
var BottomBound = Bound{Flexibility: Flexible, Type: Bottom{}}

// FlattenRow merges nested row extensions into a single label map and a tail.
// The tail is RowEmpty for closed rows, or the variable the row is
// extensible over. Entries with the same label keep their left-to-right
// order across nesting.
func FlattenRow(t Monotype) (TypeMap, Monotype) {
	ext, ok := t.(*RowExtension)
	if !ok {
		return EmptyTypeMap, t
	}
	labels := ext.Labels.Builder()
	rest := ext.Row
	for {
		next, ok := rest.(*RowExtension)
		if !ok {
			return labels.Build(), rest
		}
		labels.Merge(next.Labels)
		rest = next.Row
	}
}
