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

// diagnostic is the closed set of messages the checker may report about a
// program. Each diagnostic points at a range of characters in the source
// document and may carry related locations which contributed to the error.
//
// Messages are written for the programmer, not the compiler: short, a single
// sentence, first-person plural where the checker speaks, and inline code
// markup for anything that might be written in a program.
package diagnostic

import (
	"github.com/wdamron/mlf/ast"
)

// Diagnostic is a message presented to the user about their program, pointing
// at a range of characters in the source document.
type Diagnostic struct {
	// The primary range of the diagnostic.
	Range ast.Range

	message message
}

// Operand is one side of a failed unification: the canonical printed form of
// the type and the range where that type was introduced. A zero range means
// the type has no recorded source location.
type Operand struct {
	Range   ast.Range
	Printed string
}

// ArityOperand is one side of a parameter-list length mismatch.
type ArityOperand struct {
	Range ast.Range
	Len   int
}

// Operation describes what the checker was doing when a unification failed,
// e.g. calling a function or checking an annotation. Diagnostics produced
// without operation context render as a bare incompatibility.
type Operation struct {
	clause string
}

// CallOperation describes calling the named function.
func CallOperation(callee string) *Operation {
	return &Operation{"Can not call `" + callee + "`"}
}

// AnnotationOperation describes checking an expression against its
// type annotation.
func AnnotationOperation(code string) *Operation {
	return &Operation{"Can not change the type of `" + code + "`"}
}

// BindingOperation describes checking an annotated binding statement.
func BindingOperation(pattern, value string) *Operation {
	return &Operation{"Can not set `" + pattern + "` to `" + value + "`"}
}

// ReturnOperation describes checking a function body against the function's
// return type annotation.
func ReturnOperation(code string) *Operation {
	return &Operation{"Can not return `" + code + "`"}
}

// OperatorOperation describes checking the operands of an operator.
func OperatorOperation(op string) *Operation {
	return &Operation{"Can not use `" + op + "`"}
}

// message is a representation of every possible diagnostic message.
type message interface {
	diagnosticMessage()
}

type unboundVariable struct {
	name string
}

type unboundTypeVariable struct {
	name string
}

type incompatibleTypes struct {
	op       *Operation
	expected Operand
	actual   Operand
}

type infiniteType struct {
	name    string
	printed string
}

type incompatibleKinds struct {
	kind1 string
	kind2 string
}

type infiniteKind struct{}

type incompatibleParameterLengths struct {
	op       *Operation
	expected ArityOperand
	actual   ArityOperand
}

type missingParameterType struct {
	pattern string
}

type cannotCall struct {
	callee Operand
}

type nameAlreadyUsed struct {
	name      string
	declRange ast.Range
}

func (unboundVariable) diagnosticMessage()              {}
func (unboundTypeVariable) diagnosticMessage()          {}
func (incompatibleTypes) diagnosticMessage()            {}
func (infiniteType) diagnosticMessage()                 {}
func (incompatibleKinds) diagnosticMessage()            {}
func (infiniteKind) diagnosticMessage()                 {}
func (incompatibleParameterLengths) diagnosticMessage() {}
func (missingParameterType) diagnosticMessage()         {}
func (cannotCall) diagnosticMessage()                   {}
func (nameAlreadyUsed) diagnosticMessage()              {}

// UnboundVariable reports a term-level reference with no binding in scope.
func UnboundVariable(r ast.Range, name string) *Diagnostic {
	return &Diagnostic{Range: r, message: unboundVariable{name}}
}

// UnboundTypeVariable reports a type-level reference with no binding in scope.
func UnboundTypeVariable(r ast.Range, name string) *Diagnostic {
	return &Diagnostic{Range: r, message: unboundTypeVariable{name}}
}

// IncompatibleTypes reports a failed structural unification between two
// concrete type shapes. The operation may be nil when the failure occurred
// outside any checker operation.
func IncompatibleTypes(r ast.Range, op *Operation, expected, actual Operand) *Diagnostic {
	return &Diagnostic{Range: r, message: incompatibleTypes{op, expected, actual}}
}

// InfiniteType reports that strengthening the named type variable would make
// it occur within its own bound.
func InfiniteType(r ast.Range, name, printed string) *Diagnostic {
	return &Diagnostic{Range: r, message: infiniteType{name, printed}}
}

// IncompatibleKinds reports a mismatched kind-level classification, e.g. a
// row used where a proper type is needed.
func IncompatibleKinds(r ast.Range, kind1, kind2 string) *Diagnostic {
	return &Diagnostic{Range: r, message: incompatibleKinds{kind1, kind2}}
}

// InfiniteKind reports a cyclic kind.
func InfiniteKind(r ast.Range) *Diagnostic {
	return &Diagnostic{Range: r, message: infiniteKind{}}
}

// IncompatibleParameterLengths reports two function types with different
// parameter-list lengths, most commonly a call with too few or too
// many arguments.
func IncompatibleParameterLengths(r ast.Range, op *Operation, expected, actual ArityOperand) *Diagnostic {
	return &Diagnostic{Range: r, message: incompatibleParameterLengths{op, expected, actual}}
}

// MissingParameterType reports a function parameter that needs a type
// annotation since one cannot be inferred for it.
func MissingParameterType(r ast.Range, pattern string) *Diagnostic {
	return &Diagnostic{Range: r, message: missingParameterType{pattern}}
}

// CannotCall reports a call whose callee is not a function.
func CannotCall(r ast.Range, callee Operand) *Diagnostic {
	return &Diagnostic{Range: r, message: cannotCall{callee}}
}

// NameAlreadyUsed reports a declaration whose name is already taken. The
// second range points at the existing declaration.
func NameAlreadyUsed(r ast.Range, name string, declRange ast.Range) *Diagnostic {
	return &Diagnostic{Range: r, message: nameAlreadyUsed{name, declRange}}
}

// Collection accumulates reported diagnostics in report order. The checker
// visits expressions in source order, so a collection lists diagnostics in
// source order.
type Collection struct {
	diagnostics []*Diagnostic
}

// NewCollection creates an empty diagnostic collection.
func NewCollection() *Collection { return &Collection{} }

// Report adds a diagnostic to the collection and returns it, so reporting and
// failing with the same diagnostic compose.
func (c *Collection) Report(d *Diagnostic) *Diagnostic {
	c.diagnostics = append(c.diagnostics, d)
	return d
}

// Empty reports whether no diagnostics have been reported.
func (c *Collection) Empty() bool { return len(c.diagnostics) == 0 }

// Len returns the number of reported diagnostics.
func (c *Collection) Len() int { return len(c.diagnostics) }

// Diagnostics returns the reported diagnostics in report order.
func (c *Collection) Diagnostics() []*Diagnostic { return c.diagnostics }
