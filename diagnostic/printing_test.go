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

package diagnostic

import (
	"testing"

	"github.com/wdamron/mlf/ast"
)

func span(sl, sc, el, ec int) ast.Range {
	return ast.Range{Start: ast.Pos{Line: sl, Column: sc}, End: ast.Pos{Line: el, Column: ec}}
}

func TestIncompatibleTypesMessage(t *testing.T) {
	primary := span(2, 12, 2, 16)
	cases := []struct {
		op       *Operation
		expected Operand
		actual   Operand
		want     string
	}{
		{CallOperation("f"), Operand{Printed: "Int"}, Operand{Printed: "Bool"},
			"Can not call `f` because a `Bool` is not an `Int`."},
		{OperatorOperation("if"), Operand{Printed: "Bool"}, Operand{Printed: "Int"},
			"Can not use `if` because an `Int` is not a `Bool`."},
		{AnnotationOperation("x"), Operand{Printed: "Num"}, Operand{Printed: "Never"},
			"Can not change the type of `x` because `Never` is not a `Num`."},
		{BindingOperation("x", "f()"), Operand{Printed: "Int → Int"}, Operand{Printed: "Bool"},
			"Can not set `x` to `f()` because a `Bool` is not a function."},
		{ReturnOperation("r"), Operand{Printed: "(| x: Int |)"}, Operand{Printed: "Void"},
			"Can not return `r` because `Void` is not a record."},
		{CallOperation("f"), Operand{Printed: "Int"}, Operand{Printed: "a"},
			"Can not call `f` because `a` is not an `Int`."},
		{nil, Operand{Printed: "Int"}, Operand{Printed: "Bool"}, "Int ≢ Bool"},
	}
	for _, tc := range cases {
		d := IncompatibleTypes(primary, tc.op, tc.expected, tc.actual)
		if msg := d.Message(); msg != tc.want {
			t.Fatalf("expected %s, found %s", tc.want, msg)
		}
	}
}

func TestIncompatibleTypesRelated(t *testing.T) {
	primary := span(2, 12, 2, 16)
	expected := Operand{Range: span(1, 9, 1, 12), Printed: "Int"}

	// The actual operand intersects the primary range, so only the expected
	// operand appears as a related location.
	actual := Operand{Range: span(2, 12, 2, 16), Printed: "Bool"}
	d := IncompatibleTypes(primary, CallOperation("f"), expected, actual)
	related := d.Related()
	if len(related) != 1 {
		t.Fatalf("expected one related location, found %d", len(related))
	}
	if related[0].Range != expected.Range || related[0].Message != "`Int`" {
		t.Fatalf("unexpected related location: (%s) %s", related[0].Range, related[0].Message)
	}

	// With a distinct actual range, the actual operand comes first.
	actual = Operand{Range: span(3, 0, 3, 4), Printed: "Bool"}
	d = IncompatibleTypes(primary, CallOperation("f"), expected, actual)
	related = d.Related()
	if len(related) != 2 {
		t.Fatalf("expected two related locations, found %d", len(related))
	}
	if related[0].Message != "`Bool`" || related[1].Message != "`Int`" {
		t.Fatalf("unexpected related locations: %s, %s", related[0].Message, related[1].Message)
	}

	// Zero ranges never produce related locations.
	d = IncompatibleTypes(primary, CallOperation("f"), Operand{Printed: "Int"}, Operand{Printed: "Bool"})
	if len(d.Related()) != 0 {
		t.Fatalf("expected no related locations for zero ranges")
	}
}

func TestIncompatibleParameterLengthsMessage(t *testing.T) {
	primary := span(2, 10, 2, 17)
	declParams := span(1, 5, 1, 21)
	args := span(2, 11, 2, 17)

	d := IncompatibleParameterLengths(primary, CallOperation("f"),
		ArityOperand{declParams, 2}, ArityOperand{args, 1})
	want := "Can not call `f` because we have one argument but we need two."
	if msg := d.Message(); msg != want {
		t.Fatalf("expected %s, found %s", want, msg)
	}
	related := d.Related()
	if len(related) != 1 {
		t.Fatalf("expected one related location, found %d", len(related))
	}
	if related[0].Range != declParams || related[0].Message != "two arguments" {
		t.Fatalf("unexpected related location: (%s) %s", related[0].Range, related[0].Message)
	}

	d = IncompatibleParameterLengths(primary, CallOperation("f"),
		ArityOperand{declParams, 2}, ArityOperand{args, 3})
	want = "Can not call `f` because we have three arguments but we only need two."
	if msg := d.Message(); msg != want {
		t.Fatalf("expected %s, found %s", want, msg)
	}

	d = IncompatibleParameterLengths(primary, CallOperation("f"),
		ArityOperand{declParams, 21}, ArityOperand{args, 0})
	want = "Can not call `f` because we have zero arguments but we need 21."
	if msg := d.Message(); msg != want {
		t.Fatalf("expected %s, found %s", want, msg)
	}
}

func TestSimpleMessages(t *testing.T) {
	r := span(1, 0, 1, 1)
	cases := []struct {
		d    *Diagnostic
		want string
	}{
		{UnboundVariable(r, "x"), "Unbound variable `x`."},
		{UnboundTypeVariable(r, "a"), "Unbound type variable `a`."},
		{InfiniteType(r, "a", "a → Int"), "Infinite type since `a` occurs in `a → Int`."},
		{IncompatibleKinds(r, "type", "row"), "type ≢ row"},
		{InfiniteKind(r), "Infinite kind."},
		{MissingParameterType(r, "x"), "We need a type for `x`."},
		{CannotCall(r, Operand{Printed: "Int"}), "Can not call an `Int`."},
		{CannotCall(r, Operand{Printed: "(| x: Int |)"}), "Can not call a record."},
		{NameAlreadyUsed(r, "f", span(1, 4, 1, 5)), "Can not use the name `f` again."},
	}
	for _, tc := range cases {
		if msg := tc.d.Message(); msg != tc.want {
			t.Fatalf("expected %s, found %s", tc.want, msg)
		}
	}

	related := NameAlreadyUsed(span(2, 4, 2, 5), "f", span(1, 4, 1, 5)).Related()
	if len(related) != 1 || related[0].Message != "`f`" {
		t.Fatalf("expected the prior declaration as a related location")
	}
}

func TestMarkdownList(t *testing.T) {
	c := NewCollection()
	if !c.Empty() {
		t.Fatalf("expected an empty collection")
	}
	c.Report(UnboundVariable(span(1, 2, 1, 3), "x"))
	c.Report(IncompatibleTypes(span(2, 12, 2, 16), CallOperation("f"),
		Operand{Range: span(1, 9, 1, 12), Printed: "Int"},
		Operand{Range: span(2, 12, 2, 16), Printed: "Bool"}))

	want := "- (1:2-1:3) Unbound variable `x`.\n" +
		"- (2:12-2:16) Can not call `f` because a `Bool` is not an `Int`.\n" +
		"  - (1:9-1:12) `Int`\n"
	if got := c.MarkdownList(); got != want {
		t.Fatalf("expected:\n%s\nfound:\n%s", want, got)
	}
}
