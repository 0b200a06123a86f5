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

package checker

import (
	"github.com/samber/lo"

	"github.com/wdamron/mlf/ast"
	"github.com/wdamron/mlf/diagnostic"
	"github.com/wdamron/mlf/types"
)

// typeScope is the lexical scope of type variables introduced by quantifiers
// and declaration type parameters.
type typeScope struct {
	parent *typeScope
	names  map[string]*types.Variable
}

func (ts *typeScope) lookup(name string) (*types.Variable, bool) {
	for s := ts; s != nil; s = s.parent {
		if v, ok := s.names[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// typeParamScope binds a declaration's type parameters in the prefix and
// returns the scope their names resolve in. A bound may reference the type
// parameters declared before it.
func (c *Checker) typeParamScope(params []ast.TypeBound, parent *typeScope) *typeScope {
	if len(params) == 0 {
		return parent
	}
	ts := &typeScope{parent: parent, names: make(map[string]*types.Variable, len(params))}
	seen := make(map[string]ast.Range, len(params))
	for _, param := range params {
		if prev, ok := seen[param.Name]; ok {
			c.diags.Report(diagnostic.NameAlreadyUsed(param.Range, param.Name, prev))
			continue
		}
		seen[param.Name] = param.Range
		bt := types.Polytype(types.Bottom{})
		if param.Type != nil {
			bt = c.resolveType(param.Type, ts)
		}
		nb := types.NamedBound{
			Name:  param.Name,
			Bound: types.Bound{Flexibility: flexibility(param.Kind), Type: bt},
		}
		if v, ok := c.prefix.Add(nb); ok {
			ts.names[param.Name] = v
		}
	}
	return ts
}

// resolveMonotype resolves an annotation in a position that needs a
// monotype. A polymorphic annotation is bound rigidly to a fresh variable,
// which demands exactly that polytype from the value it checks.
func (c *Checker) resolveMonotype(t ast.Type, ts *typeScope) types.Monotype {
	switch rt := c.resolveType(t, ts).(type) {
	case types.Monotype:
		return rt
	default:
		return c.prefix.FreshWithBound(types.Bound{Flexibility: types.Rigid, Type: rt})
	}
}

func (c *Checker) resolveType(t ast.Type, ts *typeScope) types.Polytype {
	switch t := t.(type) {
	case *ast.TypeReference:
		switch t.Name {
		case types.BoolName:
			return types.Bool(t.Range)
		case types.NumName:
			return types.Num(t.Range)
		case types.IntName:
			return types.Int(t.Range)
		case types.FloatName:
			return types.Float(t.Range)
		case types.VoidName:
			return types.Void(t.Range)
		case types.NeverName:
			return types.Never(t.Range)
		}
		if v, ok := ts.lookup(t.Name); ok {
			return v
		}
		d := c.diags.Report(diagnostic.UnboundTypeVariable(t.Range, t.Name))
		return &types.Error{Diagnostic: d}

	case *ast.FunctionType:
		params := lo.Map(t.Params, func(param ast.Type, _ int) types.Monotype {
			return c.resolveMonotype(param, ts)
		})
		return &types.Function{
			Params: params,
			Return: c.resolveMonotype(t.Return, ts),
			Range:  t.ParamsRange,
		}

	case *ast.RecordType:
		var row types.Monotype = types.RowEmpty{}
		if t.Extension != nil {
			row = c.resolveRow(t.Extension, ts)
		}
		if len(t.Fields) == 0 {
			return row
		}
		labels := types.NewTypeMapBuilder()
		for _, field := range t.Fields {
			labels.Add(field.Label, c.resolveMonotype(field.Type, ts))
		}
		return &types.RowExtension{Labels: labels.Build(), Row: row}

	case *ast.QuantifiedType:
		inner := &typeScope{parent: ts, names: make(map[string]*types.Variable, len(t.Bounds))}
		seen := make(map[string]ast.Range, len(t.Bounds))
		bounds := make([]types.NamedBound, 0, len(t.Bounds))
		for _, b := range t.Bounds {
			if prev, ok := seen[b.Name]; ok {
				c.diags.Report(diagnostic.NameAlreadyUsed(b.Range, b.Name, prev))
				continue
			}
			seen[b.Name] = b.Range
			bt := types.Polytype(types.Bottom{})
			if b.Type != nil {
				bt = c.resolveType(b.Type, inner)
			}
			bounds = append(bounds, types.NamedBound{
				Name:  b.Name,
				Bound: types.Bound{Flexibility: flexibility(b.Kind), Type: bt},
			})
			inner.names[b.Name] = &types.Variable{Name: b.Name}
		}
		body := c.resolveMonotype(t.Body, inner)
		return &types.Quantified{Bounds: bounds, Body: body}
	}
	return types.Void(ast.Range{})
}

// resolveRow resolves a record type's extension, which must have row kind: a
// type variable, or a further record.
func (c *Checker) resolveRow(t ast.Type, ts *typeScope) types.Monotype {
	rt := c.resolveMonotype(t, ts)
	switch c.prefix.Resolve(rt).(type) {
	case *types.Variable, types.RowEmpty, *types.RowExtension, *types.Error:
		return rt
	}
	d := c.diags.Report(diagnostic.IncompatibleKinds(t.TypeRange(),
		types.Row{}.KindName(), types.Value{}.KindName()))
	return &types.Error{Diagnostic: d}
}

func flexibility(k ast.BoundKind) types.Flexibility {
	if k == ast.RigidBound {
		return types.Rigid
	}
	return types.Flexible
}
