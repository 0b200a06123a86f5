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
	"github.com/wdamron/mlf/types"
)

// Instantiate turns a polytype into a monotype usable at the current level.
//
// A monotype instantiates to itself. ⊥ instantiates to a fresh unconstrained
// variable. A quantified type adds a fresh prefix entry per bound, with the
// bound's type substituted for the bounds introduced before it, and returns
// the body under the same substitution.
func (p *Prefix) Instantiate(t types.Polytype) types.Monotype {
	switch t := t.(type) {
	case types.Bottom:
		return p.Fresh()
	case *types.Quantified:
		subst := make(map[string]types.Monotype, len(t.Bounds))
		for _, nb := range t.Bounds {
			b := types.Bound{
				Flexibility: nb.Bound.Flexibility,
				Type:        substPolytype(nb.Bound.Type, subst),
			}
			subst[nb.Name] = p.FreshWithBound(b)
		}
		return substMonotype(t.Body, subst)
	case types.Monotype:
		return t
	}
	return nil
}

func substMonotype(t types.Monotype, subst map[string]types.Monotype) types.Monotype {
	if len(subst) == 0 {
		return t
	}
	switch t := t.(type) {
	case *types.Variable:
		if r, ok := subst[t.Name]; ok {
			return r
		}
		return t
	case *types.Function:
		params := make([]types.Monotype, len(t.Params))
		for i, param := range t.Params {
			params[i] = substMonotype(param, subst)
		}
		return &types.Function{Params: params, Return: substMonotype(t.Return, subst), Range: t.Range}
	case *types.RowExtension:
		labels := types.NewTypeMapBuilder()
		t.Labels.Range(func(label string, ts types.TypeList) bool {
			ts.Range(func(_ int, lt types.Monotype) bool {
				labels.Add(label, substMonotype(lt, subst))
				return true
			})
			return true
		})
		return &types.RowExtension{Labels: labels.Build(), Row: substMonotype(t.Row, subst)}
	}
	return t
}

// substPolytype substitutes into a polytype. Bounds of a nested quantifier
// shadow outer substitutions of the same name.
func substPolytype(t types.Polytype, subst map[string]types.Monotype) types.Polytype {
	switch t := t.(type) {
	case types.Bottom:
		return t
	case *types.Quantified:
		inner := subst
		for _, nb := range t.Bounds {
			if _, shadowed := subst[nb.Name]; shadowed {
				inner = shadowedSubst(subst, t.Bounds)
				break
			}
		}
		bounds := make([]types.NamedBound, len(t.Bounds))
		for i, nb := range t.Bounds {
			bounds[i] = types.NamedBound{
				Name:  nb.Name,
				Bound: types.Bound{Flexibility: nb.Bound.Flexibility, Type: substPolytype(nb.Bound.Type, inner)},
			}
		}
		return &types.Quantified{Bounds: bounds, Body: substMonotype(t.Body, inner)}
	case types.Monotype:
		return substMonotype(t, subst)
	}
	return t
}

func shadowedSubst(subst map[string]types.Monotype, bounds []types.NamedBound) map[string]types.Monotype {
	inner := make(map[string]types.Monotype, len(subst))
	for name, t := range subst {
		inner[name] = t
	}
	for _, nb := range bounds {
		delete(inner, nb.Name)
	}
	return inner
}
