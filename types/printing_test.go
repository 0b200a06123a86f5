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
	"testing"

	"github.com/wdamron/mlf/ast"
)

func TestTypeString(t *testing.T) {
	zero := ast.Range{}
	a := &Variable{Name: "a"}
	b := &Variable{Name: "b"}

	singleRow := func(label string, m Monotype, rest Monotype) Monotype {
		return &RowExtension{Labels: SingletonTypeMap(label, m), Row: rest}
	}
	multiRow := func(rest Monotype, fields ...interface{}) Monotype {
		builder := NewTypeMapBuilder()
		for i := 0; i < len(fields); i += 2 {
			builder.Add(fields[i].(string), fields[i+1].(Monotype))
		}
		return &RowExtension{Labels: builder.Build(), Row: rest}
	}

	cases := []struct {
		t    Polytype
		want string
	}{
		{Bool(zero), "Bool"},
		{Never(zero), "Never"},
		{a, "a"},
		{Bottom{}, "⊥"},
		{&Error{}, "%error"},
		{RowEmpty{}, "(||)"},

		{&Function{Params: []Monotype{a}, Return: b}, "a → b"},
		{&Function{Params: nil, Return: Void(zero)}, "() → Void"},
		{&Function{Params: []Monotype{Int(zero), Bool(zero)}, Return: Num(zero)}, "(Int, Bool) → Num"},
		{&Function{
			Params: []Monotype{&Function{Params: []Monotype{a}, Return: b}},
			Return: b,
		}, "(a → b) → b"},

		{singleRow("x", Int(zero), RowEmpty{}), "(| x: Int |)"},
		{multiRow(RowEmpty{}, "y", Bool(zero), "x", Int(zero)), "(| x: Int, y: Bool |)"},
		{singleRow("x", Int(zero), a), "(| x: Int | a |)"},
		{multiRow(RowEmpty{}, "x", Int(zero), "x", Bool(zero)), "(| x: Int, x: Bool |)"},
		{singleRow("x", Int(zero), singleRow("y", Bool(zero), RowEmpty{})), "(| x: Int, y: Bool |)"},

		{&Quantified{
			Bounds: []NamedBound{{Name: "a", Bound: BottomBound}},
			Body:   &Function{Params: []Monotype{a}, Return: a},
		}, "∀a.a → a"},
		{&Quantified{
			Bounds: []NamedBound{
				{Name: "a", Bound: BottomBound},
				{Name: "b", Bound: Bound{Flexibility: Flexible, Type: &Function{Params: []Monotype{a}, Return: a}}},
			},
			Body: b,
		}, "∀(a, b ≥ a → a).b"},
		{&Quantified{
			Bounds: []NamedBound{{Name: "f", Bound: Bound{Flexibility: Rigid, Type: Int(zero)}}},
			Body:   &Variable{Name: "f"},
		}, "∀(f = Int).f"},
	}
	for _, tc := range cases {
		if s := TypeString(tc.t); s != tc.want {
			t.Fatalf("expected %s, found %s", tc.want, s)
		}
	}
}

func TestBoundString(t *testing.T) {
	zero := ast.Range{}
	cases := []struct {
		b    NamedBound
		want string
	}{
		{NamedBound{Name: "a", Bound: BottomBound}, "a"},
		{NamedBound{Name: "a", Bound: Bound{Flexibility: Flexible, Type: Int(zero)}}, "a ≥ Int"},
		{NamedBound{Name: "a", Bound: Bound{Flexibility: Rigid, Type: Int(zero)}}, "a = Int"},
		{NamedBound{Name: "a", Bound: Bound{Flexibility: Rigid, Type: Bottom{}}}, "a = ⊥"},
	}
	for _, tc := range cases {
		if s := BoundString(tc.b); s != tc.want {
			t.Fatalf("expected %s, found %s", tc.want, s)
		}
	}
}

func TestFlattenRowKeepsDuplicateOrder(t *testing.T) {
	zero := ast.Range{}
	inner := &RowExtension{Labels: SingletonTypeMap("x", Bool(zero)), Row: RowEmpty{}}
	outer := &RowExtension{Labels: SingletonTypeMap("x", Int(zero)), Row: inner}

	labels, rest := FlattenRow(outer)
	if _, ok := rest.(RowEmpty); !ok {
		t.Fatalf("expected an empty tail, found %s", TypeString(rest))
	}
	ts, ok := labels.Get("x")
	if !ok || ts.Len() != 2 {
		t.Fatalf("expected two entries for x")
	}
	if first := ts.Get(0).(*Const); first.Name != IntName {
		t.Fatalf("expected the outer Int first, found %s", first.Name)
	}
	if second := ts.Get(1).(*Const); second.Name != BoolName {
		t.Fatalf("expected the inner Bool second, found %s", second.Name)
	}
}
