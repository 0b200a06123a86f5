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

package mlf

import (
	"strings"
	"testing"

	"github.com/wdamron/mlf/ast"
	"github.com/wdamron/mlf/diagnostic"
	"github.com/wdamron/mlf/types"
)

func newTestUnifier() (*Prefix, *Unifier) {
	p := NewPrefix()
	return p, NewUnifier(p, diagnostic.NewCollection())
}

func fn(params []types.Monotype, ret types.Monotype) *types.Function {
	return &types.Function{Params: params, Return: ret}
}

func row(labels [][2]interface{}, rest types.Monotype) types.Monotype {
	b := types.NewTypeMapBuilder()
	for _, l := range labels {
		b.Add(l[0].(string), l[1].(types.Monotype))
	}
	return &types.RowExtension{Labels: b.Build(), Row: rest}
}

func TestUnifyReflexivity(t *testing.T) {
	p, u := newTestUnifier()
	zero := ast.Range{}
	cases := []types.Monotype{
		types.Bool(zero),
		types.Int(zero),
		types.Num(zero),
		types.RowEmpty{},
		fn([]types.Monotype{types.Int(zero)}, types.Bool(zero)),
		fn(nil, types.Void(zero)),
		row([][2]interface{}{{"x", types.Int(zero)}, {"y", types.Bool(zero)}}, types.RowEmpty{}),
		row([][2]interface{}{{"x", types.Int(zero)}}, p.Fresh()),
		p.Fresh(),
	}
	for _, tc := range cases {
		if d := u.Unify(zero, nil, tc, tc); d != nil {
			t.Fatalf("%s against itself: %s", types.TypeString(tc), d.Message())
		}
	}
	if u.Diags.Len() != 0 {
		t.Fatalf("expected zero diagnostics, found %d", u.Diags.Len())
	}
}

func TestUnifyNeverIsBottom(t *testing.T) {
	zero := ast.Range{}
	_, u := newTestUnifier()
	if d := u.Unify(zero, nil, types.Bool(zero), types.Never(zero)); d != nil {
		t.Fatalf("Never against an expected Bool: %s", d.Message())
	}
	if d := u.Unify(zero, nil, types.Never(zero), types.Bool(zero)); d == nil {
		t.Fatalf("expected Bool to fail against an expected Never")
	}
}

func TestUnifyNumericCompatibility(t *testing.T) {
	zero := ast.Range{}
	cases := []struct {
		expected, actual *types.Const
		ok               bool
	}{
		{types.Num(zero), types.Int(zero), true},
		{types.Int(zero), types.Num(zero), true},
		{types.Num(zero), types.Float(zero), true},
		{types.Float(zero), types.Num(zero), true},
		{types.Int(zero), types.Float(zero), false},
		{types.Float(zero), types.Int(zero), false},
		{types.Int(zero), types.Bool(zero), false},
	}
	for _, tc := range cases {
		_, u := newTestUnifier()
		d := u.Unify(zero, nil, tc.expected, tc.actual)
		if tc.ok && d != nil {
			t.Fatalf("%s against an expected %s: %s", tc.actual.Name, tc.expected.Name, d.Message())
		}
		if !tc.ok && d == nil {
			t.Fatalf("expected %s to fail against an expected %s", tc.actual.Name, tc.expected.Name)
		}
	}
}

func TestUnifyFunctionSubtyping(t *testing.T) {
	zero := ast.Range{}

	// fun(Bool) → Never checks against an expected fun(Never) → Bool:
	// parameters are contravariant, and Never flows anywhere.
	_, u := newTestUnifier()
	expected := fn([]types.Monotype{types.Never(zero)}, types.Bool(zero))
	actual := fn([]types.Monotype{types.Bool(zero)}, types.Never(zero))
	if d := u.Unify(zero, nil, expected, actual); d != nil {
		t.Fatalf("%s against %s: %s", types.TypeString(actual), types.TypeString(expected), d.Message())
	}

	// fun(Int) → Int checks against fun(Num) → Int and fun(Int) → Num.
	intInt := fn([]types.Monotype{types.Int(zero)}, types.Int(zero))
	for _, expected := range []*types.Function{
		fn([]types.Monotype{types.Num(zero)}, types.Int(zero)),
		fn([]types.Monotype{types.Int(zero)}, types.Num(zero)),
	} {
		_, u := newTestUnifier()
		if d := u.Unify(zero, nil, expected, intInt); d != nil {
			t.Fatalf("%s against %s: %s", types.TypeString(intInt), types.TypeString(expected), d.Message())
		}
	}

	// Both the parameter and the return position report independently.
	_, u = newTestUnifier()
	boolBool := fn([]types.Monotype{types.Bool(zero)}, types.Bool(zero))
	if d := u.Unify(zero, nil, boolBool, intInt); d == nil {
		t.Fatalf("expected %s to fail against %s", types.TypeString(intInt), types.TypeString(boolBool))
	}
	if u.Diags.Len() != 2 {
		t.Fatalf("expected two diagnostics, found %d", u.Diags.Len())
	}
}

func TestUnifyArityMismatch(t *testing.T) {
	zero := ast.Range{}
	_, u := newTestUnifier()
	op := diagnostic.CallOperation("f")
	expected := fn([]types.Monotype{types.Int(zero), types.Int(zero)}, types.Void(zero))
	actual := fn([]types.Monotype{types.Bool(zero)}, types.Void(zero))
	d := u.Unify(zero, op, expected, actual)
	if d == nil {
		t.Fatalf("expected an arity failure")
	}
	if msg := d.Message(); !strings.Contains(msg, "one argument but we need two") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if u.Diags.Len() != 1 {
		t.Fatalf("expected the parameters to go unchecked after an arity failure, found %d diagnostics", u.Diags.Len())
	}
}

func TestUnifySolvesVariables(t *testing.T) {
	zero := ast.Range{}
	p, u := newTestUnifier()
	v := p.Fresh()
	if d := u.Unify(zero, nil, v, types.Int(zero)); d != nil {
		t.Fatalf("unify failed: %s", d.Message())
	}
	if r := p.Resolve(v); types.TypeString(r) != "Int" {
		t.Fatalf("expected %s to resolve to Int, found %s", v.Name, types.TypeString(r))
	}
	// The variable is now Int everywhere it appears.
	if d := u.Unify(zero, nil, types.Bool(zero), v); d == nil {
		t.Fatalf("expected a solved %s to fail against Bool", v.Name)
	}
}

func TestUnifyMergesVariables(t *testing.T) {
	zero := ast.Range{}
	p, u := newTestUnifier()
	v, w := p.Fresh(), p.Fresh()
	if d := u.Unify(zero, nil, v, w); d != nil {
		t.Fatalf("unify failed: %s", d.Message())
	}
	if d := u.Unify(zero, nil, v, types.Bool(zero)); d != nil {
		t.Fatalf("unify failed: %s", d.Message())
	}
	if r := p.Resolve(w); types.TypeString(r) != "Bool" {
		t.Fatalf("expected %s to resolve to Bool, found %s", w.Name, types.TypeString(r))
	}
}

func TestUnifyInfiniteType(t *testing.T) {
	zero := ast.Range{}
	p, u := newTestUnifier()
	v := p.Fresh()
	d := u.Unify(zero, nil, v, fn([]types.Monotype{v}, v))
	if d == nil {
		t.Fatalf("expected an occurs failure")
	}
	if !strings.Contains(d.Message(), "Infinite type") {
		t.Fatalf("unexpected message: %s", d.Message())
	}
}

func TestUnifyErrorIsTransparent(t *testing.T) {
	zero := ast.Range{}
	_, u := newTestUnifier()
	poison := &types.Error{}
	if d := u.Unify(zero, nil, types.Int(zero), poison); d != nil {
		t.Fatalf("Error against an expected Int: %s", d.Message())
	}
	if d := u.Unify(zero, nil, poison, types.Int(zero)); d != nil {
		t.Fatalf("Int against an expected Error: %s", d.Message())
	}
	if u.Diags.Len() != 0 {
		t.Fatalf("expected zero diagnostics, found %d", u.Diags.Len())
	}
}

func TestUnifyKindMismatch(t *testing.T) {
	zero := ast.Range{}
	_, u := newTestUnifier()
	d := u.Unify(zero, nil, types.Int(zero), types.RowEmpty{})
	if d == nil {
		t.Fatalf("expected a kind failure")
	}
	if msg := d.Message(); !strings.Contains(msg, "type ≢ row") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestUnifyRowsAbsorbMissingLabels(t *testing.T) {
	zero := ast.Range{}
	p, u := newTestUnifier()
	tail := p.Fresh()
	expected := row([][2]interface{}{{"x", types.Int(zero)}}, tail)
	actual := row([][2]interface{}{{"x", types.Int(zero)}, {"y", types.Bool(zero)}}, types.RowEmpty{})
	if d := u.Unify(zero, nil, expected, actual); d != nil {
		t.Fatalf("unify failed: %s", d.Message())
	}
	if s := types.TypeString(p.Resolve(tail)); s != "(| y: Bool |)" {
		t.Fatalf("expected the tail to absorb y: Bool, found %s", s)
	}
}

func TestUnifyRowsClosedMissingLabel(t *testing.T) {
	zero := ast.Range{}
	_, u := newTestUnifier()
	expected := row([][2]interface{}{{"x", types.Int(zero)}, {"y", types.Bool(zero)}}, types.RowEmpty{})
	actual := row([][2]interface{}{{"x", types.Int(zero)}}, types.RowEmpty{})
	if d := u.Unify(zero, nil, expected, actual); d == nil {
		t.Fatalf("expected a missing label to fail against a closed row")
	}
}

func TestUnifyRowShadowing(t *testing.T) {
	zero := ast.Range{}

	// A row with a duplicate label unifies positionally: the left-most
	// entry pairs with the left-most entry.
	_, u := newTestUnifier()
	expected := row([][2]interface{}{{"x", types.Int(zero)}, {"x", types.Bool(zero)}}, types.RowEmpty{})
	actual := row([][2]interface{}{{"x", types.Int(zero)}, {"x", types.Bool(zero)}}, types.RowEmpty{})
	if d := u.Unify(zero, nil, expected, actual); d != nil {
		t.Fatalf("unify failed: %s", d.Message())
	}

	// Swapped duplicates are a different row.
	_, u = newTestUnifier()
	swapped := row([][2]interface{}{{"x", types.Bool(zero)}, {"x", types.Int(zero)}}, types.RowEmpty{})
	if d := u.Unify(zero, nil, expected, swapped); d == nil {
		t.Fatalf("expected swapped duplicate labels to fail")
	}

	// The left-most entry shadows: an open row asking for a single x sees
	// the Int.
	p, u := newTestUnifier()
	field := p.Fresh()
	tail := p.Fresh()
	want := row([][2]interface{}{{"x", field}}, tail)
	if d := u.Unify(zero, nil, want, expected); d != nil {
		t.Fatalf("unify failed: %s", d.Message())
	}
	if s := types.TypeString(p.Resolve(field)); s != "Int" {
		t.Fatalf("expected the left-most x, found %s", s)
	}
}

func TestUnifyNestedRowsFlatten(t *testing.T) {
	zero := ast.Range{}
	_, u := newTestUnifier()
	nested := row([][2]interface{}{{"x", types.Int(zero)}},
		row([][2]interface{}{{"y", types.Bool(zero)}}, types.RowEmpty{}))
	flat := row([][2]interface{}{{"x", types.Int(zero)}, {"y", types.Bool(zero)}}, types.RowEmpty{})
	if d := u.Unify(zero, nil, nested, flat); d != nil {
		t.Fatalf("unify failed: %s", d.Message())
	}
}

func TestUnifyRigidBoundByEquality(t *testing.T) {
	zero := ast.Range{}
	p, u := newTestUnifier()
	id := &types.Quantified{
		Bounds: []types.NamedBound{{Name: "a", Bound: types.BottomBound}},
		Body: &types.Function{
			Params: []types.Monotype{&types.Variable{Name: "a"}},
			Return: &types.Variable{Name: "a"},
		},
	}
	v, _ := p.Add(types.NamedBound{Name: "f", Bound: types.Bound{Flexibility: types.Rigid, Type: id}})
	w, _ := p.Add(types.NamedBound{Name: "g", Bound: types.Bound{Flexibility: types.Rigid, Type: id}})
	if d := u.Unify(zero, nil, v, w); d != nil {
		t.Fatalf("expected equal rigid bounds to unify: %s", d.Message())
	}
	if d := u.Unify(zero, nil, v, types.Int(zero)); d == nil {
		t.Fatalf("expected a rigid variable to fail against Int")
	}
}

func TestUnifyMergeKeepsRigidBound(t *testing.T) {
	zero := ast.Range{}
	p, u := newTestUnifier()
	id := &types.Quantified{
		Bounds: []types.NamedBound{{Name: "a", Bound: types.BottomBound}},
		Body: &types.Function{
			Params: []types.Monotype{&types.Variable{Name: "a"}},
			Return: &types.Variable{Name: "a"},
		},
	}
	v, _ := p.Add(types.NamedBound{Name: "f", Bound: types.Bound{Flexibility: types.Rigid, Type: id}})
	w := p.FreshWithBound(types.Bound{Flexibility: types.Flexible, Type: id})
	if d := u.Unify(zero, nil, v, w); d != nil {
		t.Fatalf("expected an equal flexible bound to merge with a rigid bound: %s", d.Message())
	}
	if b := p.Lookup(v.Name); b.Flexibility != types.Rigid {
		t.Fatalf("expected %s to stay rigid after the merge", v.Name)
	}
	// The merged variable may not specialize, through either name.
	intInt := fn([]types.Monotype{types.Int(zero)}, types.Int(zero))
	if d := u.Unify(zero, nil, v, intInt); d == nil {
		t.Fatalf("expected the rigid bound to survive the merge")
	}
	if d := u.Unify(zero, nil, w, intInt); d == nil {
		t.Fatalf("expected the rigid bound to survive the merge through %s", w.Name)
	}
}

func TestUnifyMergeRigidFlexibleMismatch(t *testing.T) {
	zero := ast.Range{}
	p, u := newTestUnifier()
	id := &types.Quantified{
		Bounds: []types.NamedBound{{Name: "a", Bound: types.BottomBound}},
		Body: &types.Function{
			Params: []types.Monotype{&types.Variable{Name: "a"}},
			Return: &types.Variable{Name: "a"},
		},
	}
	constInt := &types.Quantified{
		Bounds: []types.NamedBound{{Name: "a", Bound: types.BottomBound}},
		Body: &types.Function{
			Params: []types.Monotype{&types.Variable{Name: "a"}},
			Return: types.Int(zero),
		},
	}
	v, _ := p.Add(types.NamedBound{Name: "f", Bound: types.Bound{Flexibility: types.Rigid, Type: id}})
	w := p.FreshWithBound(types.Bound{Flexibility: types.Flexible, Type: constInt})
	if d := u.Unify(zero, nil, v, w); d == nil {
		t.Fatalf("expected a mismatched flexible bound to fail against a rigid bound")
	}
	if b := p.Lookup(v.Name); b.Flexibility != types.Rigid || !types.PolytypeEqual(b.Type, id) {
		t.Fatalf("expected the rigid bound of %s to be untouched after the failure", v.Name)
	}
}

func TestUnifyFlexibleQuantifiedBound(t *testing.T) {
	zero := ast.Range{}
	p, u := newTestUnifier()
	id := &types.Quantified{
		Bounds: []types.NamedBound{{Name: "a", Bound: types.BottomBound}},
		Body: &types.Function{
			Params: []types.Monotype{&types.Variable{Name: "a"}},
			Return: &types.Variable{Name: "a"},
		},
	}
	v := p.FreshWithBound(types.Bound{Flexibility: types.Flexible, Type: id})
	intInt := fn([]types.Monotype{types.Int(zero)}, types.Int(zero))
	if d := u.Unify(zero, nil, v, intInt); d != nil {
		t.Fatalf("expected Int → Int to instantiate the bound: %s", d.Message())
	}
	if s := types.TypeString(p.Resolve(v)); s != "Int → Int" {
		t.Fatalf("expected %s to resolve to Int → Int, found %s", v.Name, s)
	}
}
