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
	"github.com/wdamron/mlf/ast"
	"github.com/wdamron/mlf/diagnostic"
	"github.com/wdamron/mlf/types"
)

// Unifier unifies monotypes against a prefix, reporting failures to a
// diagnostic collection. Unification is directed: the expected type is what
// the context requires and the actual type is what the code provided, and
// the two are not interchangeable because some pairs only unify one way.
type Unifier struct {
	Prefix *Prefix
	Diags  *diagnostic.Collection
}

// NewUnifier creates a unifier over a prefix and a diagnostic collection.
func NewUnifier(p *Prefix, diags *diagnostic.Collection) *Unifier {
	return &Unifier{Prefix: p, Diags: diags}
}

// Unify unifies an actual type with an expected type, strengthening variable
// bounds in the prefix as needed. Every incompatibility found is reported to
// the collection with the given range and operation for context; the first
// is returned so the caller can poison the expression's type with it.
//
// Error types unify with everything, so one broken expression produces one
// report instead of a cascade.
func (u *Unifier) Unify(rng ast.Range, op *diagnostic.Operation, expected, actual types.Monotype) *diagnostic.Diagnostic {
	n := u.Diags.Len()
	u.unify(rng, op, expected, actual)
	if u.Diags.Len() > n {
		return u.Diags.Diagnostics()[n]
	}
	return nil
}

func (u *Unifier) unify(rng ast.Range, op *diagnostic.Operation, expected, actual types.Monotype) {
	expected, actual = u.Prefix.Resolve(expected), u.Prefix.Resolve(actual)
	if isError(expected) || isError(actual) {
		return
	}
	ev, _ := expected.(*types.Variable)
	av, _ := actual.(*types.Variable)
	switch {
	case ev != nil && av != nil:
		u.unifyVars(rng, op, ev, av)
	case ev != nil:
		u.unifyVarType(rng, op, ev, actual, true)
	case av != nil:
		u.unifyVarType(rng, op, av, expected, false)
	default:
		u.unifyMono(rng, op, expected, actual)
	}
}

func isError(t types.Monotype) bool {
	_, ok := t.(*types.Error)
	return ok
}

// unifyVars unifies two unsolved variables by merging their prefix entries.
func (u *Unifier) unifyVars(rng ast.Range, op *diagnostic.Operation, ev, av *types.Variable) {
	if u.Prefix.resolve(ev.Name) == u.Prefix.resolve(av.Name) {
		return
	}
	be, ba := u.Prefix.Lookup(ev.Name), u.Prefix.Lookup(av.Name)
	switch {
	case flexibleBottom(be):
		u.report(u.Prefix.Update2(rng, ev.Name, av.Name, ba))
	case flexibleBottom(ba):
		u.report(u.Prefix.Update2(rng, ev.Name, av.Name, be))
	case be.Flexibility == types.Rigid || ba.Flexibility == types.Rigid:
		// At least one bound is rigid, so the merge may only succeed by
		// equality, and the merged entry must keep a rigid bound so it
		// can not specialize later.
		if types.PolytypeEqual(be.Type, ba.Type) {
			rigid := be
			if ba.Flexibility == types.Rigid {
				rigid = ba
			}
			u.report(u.Prefix.Update2(rng, ev.Name, av.Name, rigid))
			return
		}
		u.report(diagnostic.IncompatibleTypes(rng, op,
			diagnostic.Operand{Printed: types.TypeString(be.Type)},
			diagnostic.Operand{Printed: types.TypeString(ba.Type)}))
	default:
		// Both bounds are flexible and quantified. Instantiate each and
		// unify the instances; the merged entry is solved to the
		// unified instance.
		n := u.Diags.Len()
		me := u.Prefix.Instantiate(be.Type)
		ma := u.Prefix.Instantiate(ba.Type)
		u.unify(rng, op, me, ma)
		if u.Diags.Len() > n {
			return
		}
		u.report(u.Prefix.Update2(rng, ev.Name, av.Name, types.Bound{Flexibility: types.Rigid, Type: me}))
	}
}

// unifyVarType unifies an unsolved variable with a non-variable monotype.
// expectedVar records which side of the unification the variable came from.
func (u *Unifier) unifyVarType(rng ast.Range, op *diagnostic.Operation, v *types.Variable, t types.Monotype, expectedVar bool) {
	b := u.Prefix.Lookup(v.Name)
	if b.Flexibility == types.Rigid {
		// A rigid bound may not be strengthened to a concrete type.
		ve := diagnostic.Operand{Printed: types.TypeString(boundTypeOrVar(v, b))}
		te := operandOf(t)
		if expectedVar {
			u.report(diagnostic.IncompatibleTypes(rng, op, ve, te))
		} else {
			u.report(diagnostic.IncompatibleTypes(rng, op, te, ve))
		}
		return
	}
	if flexibleBottom(b) {
		u.report(u.Prefix.Update(rng, v.Name, t))
		return
	}
	// Flexible quantified bound: t must be an instance of the bound.
	n := u.Diags.Len()
	m := u.Prefix.Instantiate(b.Type)
	if expectedVar {
		u.unify(rng, op, m, t)
	} else {
		u.unify(rng, op, t, m)
	}
	if u.Diags.Len() > n {
		return
	}
	u.report(u.Prefix.Update(rng, v.Name, t))
}

func (u *Unifier) unifyMono(rng ast.Range, op *diagnostic.Operation, expected, actual types.Monotype) {
	// Never is the bottom type: a value of type Never can flow anywhere.
	if c, ok := actual.(*types.Const); ok && c.Name == types.NeverName {
		return
	}

	switch expected := expected.(type) {
	case *types.Const:
		if actual, ok := actual.(*types.Const); ok {
			if compatibleConsts(expected.Name, actual.Name) {
				return
			}
			u.report(diagnostic.IncompatibleTypes(rng, op, operandOf(expected), operandOf(actual)))
			return
		}

	case *types.Function:
		if actual, ok := actual.(*types.Function); ok {
			if len(expected.Params) != len(actual.Params) {
				if op != nil {
					u.report(diagnostic.IncompatibleParameterLengths(rng, op,
						diagnostic.ArityOperand{Range: expected.Range, Len: len(expected.Params)},
						diagnostic.ArityOperand{Range: actual.Range, Len: len(actual.Params)}))
				} else {
					u.report(diagnostic.IncompatibleTypes(rng, op, operandOf(expected), operandOf(actual)))
				}
				return
			}
			// Parameters are contravariant, the return type is covariant.
			// All positions are checked even after a failure so every
			// incompatibility is reported.
			for i, param := range expected.Params {
				u.unify(rng, op, actual.Params[i], param)
			}
			u.unify(rng, op, expected.Return, actual.Return)
			return
		}

	case types.RowEmpty:
		switch actual.(type) {
		case types.RowEmpty:
			return
		case *types.RowExtension:
			// An extension always carries at least one label the empty
			// row cannot absorb.
			u.report(diagnostic.IncompatibleTypes(rng, op, operandOf(expected), operandOf(actual)))
			return
		}

	case *types.RowExtension:
		switch actual.(type) {
		case *types.RowExtension:
			u.unifyRows(rng, op, expected, actual)
			return
		case types.RowEmpty:
			u.report(diagnostic.IncompatibleTypes(rng, op, operandOf(expected), operandOf(actual)))
			return
		}
	}

	ke, ka := types.KindOf(expected), types.KindOf(actual)
	if !ke.Equal(ka) {
		u.report(diagnostic.IncompatibleKinds(rng, ke.KindName(), ka.KindName()))
		return
	}
	u.report(diagnostic.IncompatibleTypes(rng, op, operandOf(expected), operandOf(actual)))
}

// unifyRows unifies two rows label-by-label. Shared labels unify pairwise in
// order; labels present on only one side must be absorbed by the other
// side's extension variable.
func (u *Unifier) unifyRows(rng ast.Range, op *diagnostic.Operation, expected, actual types.Monotype) {
	ma, ra := u.flattenRow(expected)
	mb, rb := u.flattenRow(actual)

	// Labels missing from ma/mb respectively.
	xa, xb := types.NewTypeMapBuilder(), types.NewTypeMapBuilder()
	ma.Range(func(la string, va types.TypeList) bool {
		if _, ok := mb.Get(la); !ok {
			xb.Set(la, va)
		}
		return true
	})
	mb.Range(func(lb string, vb types.TypeList) bool {
		va, ok := ma.Get(lb)
		if !ok {
			xa.Set(lb, vb)
			return true
		}
		ua, ub := u.unifyLists(rng, op, va, vb)
		if ua.Len() > 0 {
			xb.Set(lb, ua)
		}
		if ub.Len() > 0 {
			xa.Set(lb, ub)
		}
		return true
	})

	za, zb := xa.Len() == 0, xb.Len() == 0
	switch {
	case za && zb: // all labels match
		u.unify(rng, op, ra, rb)
	case za && !zb: // labels missing from actual
		u.unify(rng, op, &types.RowExtension{Labels: xb.Build(), Row: ra}, rb)
	case !za && zb: // labels missing from expected
		u.unify(rng, op, ra, &types.RowExtension{Labels: xa.Build(), Row: rb})
	default: // labels missing from both; each tail absorbs the other's extras
		tail := u.Prefix.Fresh()
		n := u.Diags.Len()
		u.unify(rng, op, &types.RowExtension{Labels: xb.Build(), Row: tail}, rb)
		if u.Diags.Len() > n {
			return
		}
		u.unify(rng, op, ra, &types.RowExtension{Labels: xa.Build(), Row: tail})
	}
}

// unifyLists unifies the shared prefix of two label lists and returns the
// unmatched remainders.
func (u *Unifier) unifyLists(rng ast.Range, op *diagnostic.Operation, a, b types.TypeList) (xa, xb types.TypeList) {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		u.unify(rng, op, a.Get(i), b.Get(i))
	}
	return a.Slice(n, a.Len()), b.Slice(n, b.Len())
}

// flattenRow flattens nested extensions, following solved tail variables.
func (u *Unifier) flattenRow(t types.Monotype) (types.TypeMap, types.Monotype) {
	labels := types.NewTypeMapBuilder()
	rest := t
	for {
		rest = u.Prefix.Resolve(rest)
		ext, ok := rest.(*types.RowExtension)
		if !ok {
			return labels.Build(), rest
		}
		labels.Merge(ext.Labels)
		rest = ext.Row
	}
}

func (u *Unifier) report(d *diagnostic.Diagnostic) {
	if d != nil {
		u.Diags.Report(d)
	}
}

func flexibleBottom(b types.Bound) bool {
	if b.Flexibility != types.Flexible {
		return false
	}
	_, ok := b.Type.(types.Bottom)
	return ok
}

func boundTypeOrVar(v *types.Variable, b types.Bound) types.Polytype {
	if _, ok := b.Type.(types.Bottom); ok {
		return v
	}
	return b.Type
}

// operandOf prints a monotype for a diagnostic of it, attaching the source
// range the type was written at when one is known.
func operandOf(t types.Monotype) diagnostic.Operand {
	o := diagnostic.Operand{Printed: types.TypeString(t)}
	switch t := t.(type) {
	case *types.Const:
		o.Range = t.Range
	case *types.Function:
		o.Range = t.Range
	}
	return o
}

func compatibleConsts(expected, actual string) bool {
	if expected == actual {
		return true
	}
	switch {
	case expected == types.NumName && (actual == types.IntName || actual == types.FloatName):
		return true
	case actual == types.NumName && (expected == types.IntName || expected == types.FloatName):
		return true
	}
	return false
}
