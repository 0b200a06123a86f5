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

// Generalize quantifies every variable owned by the current level that is
// reachable from t, producing a polytype.
//
// Variables solved to a monotype are inlined rather than quantified.
// Variables bound at an outer level stay free in the result; they belong to
// an enclosing scope. Bounds are emitted in dependency order, so a bound may
// only reference bounds quantified before it.
func (p *Prefix) Generalize(t types.Monotype) types.Polytype {
	g := generalizer{prefix: p, seen: make(map[*entry]bool, 8)}
	body := g.monotype(t, nil)
	if len(g.bounds) == 0 {
		return body
	}
	return &types.Quantified{Bounds: g.bounds, Body: body}
}

type generalizer struct {
	prefix *Prefix
	seen   map[*entry]bool
	bounds []types.NamedBound
}

// monotype normalizes t: merged variables are renamed to their canonical
// entry, solved variables are replaced by their monotype, and quantifiable
// entries are recorded as bounds. shadow holds names bound by a quantifier
// inside a bound, which must not resolve through the prefix.
func (g *generalizer) monotype(t types.Monotype, shadow map[string]bool) types.Monotype {
	switch t := t.(type) {
	case *types.Variable:
		if shadow[t.Name] {
			return t
		}
		e := g.prefix.resolve(t.Name)
		if m, ok := e.bound.Type.(types.Monotype); ok {
			return g.monotype(m, shadow)
		}
		if e.level >= g.prefix.level && !g.seen[e] {
			g.seen[e] = true
			bt := g.polytype(e.bound.Type, shadow)
			g.bounds = append(g.bounds, types.NamedBound{
				Name:  e.name,
				Bound: types.Bound{Flexibility: e.bound.Flexibility, Type: bt},
			})
		}
		if e.name == t.Name {
			return t
		}
		return &types.Variable{Name: e.name}
	case *types.Function:
		params := make([]types.Monotype, len(t.Params))
		for i, param := range t.Params {
			params[i] = g.monotype(param, shadow)
		}
		return &types.Function{Params: params, Return: g.monotype(t.Return, shadow), Range: t.Range}
	case *types.RowExtension:
		labels := types.NewTypeMapBuilder()
		t.Labels.Range(func(label string, ts types.TypeList) bool {
			ts.Range(func(_ int, lt types.Monotype) bool {
				labels.Add(label, g.monotype(lt, shadow))
				return true
			})
			return true
		})
		return &types.RowExtension{Labels: labels.Build(), Row: g.monotype(t.Row, shadow)}
	}
	return t
}

func (g *generalizer) polytype(t types.Polytype, shadow map[string]bool) types.Polytype {
	switch t := t.(type) {
	case types.Bottom:
		return t
	case *types.Quantified:
		inner := make(map[string]bool, len(shadow)+len(t.Bounds))
		for name := range shadow {
			inner[name] = true
		}
		bounds := make([]types.NamedBound, len(t.Bounds))
		for i, nb := range t.Bounds {
			bounds[i] = types.NamedBound{
				Name:  nb.Name,
				Bound: types.Bound{Flexibility: nb.Bound.Flexibility, Type: g.polytype(nb.Bound.Type, inner)},
			}
			inner[nb.Name] = true
		}
		return &types.Quantified{Bounds: bounds, Body: g.monotype(t.Body, inner)}
	case types.Monotype:
		return g.monotype(t, shadow)
	}
	return t
}
