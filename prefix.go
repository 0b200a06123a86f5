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
	"strconv"

	"github.com/wdamron/mlf/ast"
	"github.com/wdamron/mlf/diagnostic"
	"github.com/wdamron/mlf/types"
)

// entry is an arena slot for a bound type variable. A merged entry forwards
// to the entry it was folded into; a dead entry belonged to a level that has
// been popped.
type entry struct {
	name   string
	bound  types.Bound
	level  int
	merged string
	dead   bool
}

// Prefix binds every type variable in flight to a bound and a level. Levels
// track the lexical depth the variable was introduced at, which is what lets
// generalization quantify exactly the variables owned by the current scope.
//
// Entries are stored in an arena in insertion order. Variables reference
// entries by name; merging two variables forwards one entry to the other
// instead of rewriting references.
type Prefix struct {
	entries []entry
	index   map[string]int
	level   int
	fresh   int
}

// NewPrefix creates an empty prefix at level 0.
func NewPrefix() *Prefix {
	return &Prefix{index: make(map[string]int, 32)}
}

// Level runs f one level deeper than the current level. Entries introduced
// inside f that were not generalized are dropped when f returns.
func (p *Prefix) Level(f func() error) error {
	p.level++
	err := f()
	p.level--
	for i := range p.entries {
		e := &p.entries[i]
		// Merged entries stay resolvable: in-flight types may still
		// reference them by name.
		if !e.dead && e.merged == "" && e.level > p.level {
			e.dead = true
			delete(p.index, e.name)
		}
	}
	return err
}

// Fresh adds a fresh variable with a flexible ⊥ bound at the current level.
func (p *Prefix) Fresh() *types.Variable {
	return p.FreshWithBound(types.BottomBound)
}

// FreshWithBound adds a fresh variable with the given bound at the current
// level. Fresh names never collide with names added through Add.
func (p *Prefix) FreshWithBound(b types.Bound) *types.Variable {
	var name string
	for {
		name = "$" + strconv.Itoa(p.fresh)
		p.fresh++
		if _, ok := p.index[name]; !ok {
			break
		}
	}
	p.add(name, b)
	return &types.Variable{Name: name}
}

// Add binds a named variable at the current level. It returns nil and false
// when the name is already bound.
func (p *Prefix) Add(nb types.NamedBound) (*types.Variable, bool) {
	if _, ok := p.index[nb.Name]; ok {
		return nil, false
	}
	p.add(nb.Name, nb.Bound)
	return &types.Variable{Name: nb.Name}, true
}

func (p *Prefix) add(name string, b types.Bound) *entry {
	p.entries = append(p.entries, entry{name: name, bound: b, level: p.level})
	p.index[name] = len(p.entries) - 1
	return &p.entries[len(p.entries)-1]
}

// resolve returns the canonical entry for a name, following merges.
func (p *Prefix) resolve(name string) *entry {
	i, ok := p.index[name]
	if !ok {
		panic("mlf: unbound type variable " + name)
	}
	e := &p.entries[i]
	for e.merged != "" {
		e = &p.entries[p.index[e.merged]]
	}
	return e
}

// Lookup returns the bound of a variable. Looking up a name that was never
// added is a programmer error and panics.
func (p *Prefix) Lookup(name string) types.Bound {
	return p.resolve(name).bound
}

// Resolve follows merged entries and solved bounds until it reaches a type
// constructor or a variable whose bound is ⊥ or quantified. Variables are
// renamed to their canonical entry along the way.
func (p *Prefix) Resolve(t types.Monotype) types.Monotype {
	for {
		v, ok := t.(*types.Variable)
		if !ok {
			return t
		}
		e := p.resolve(v.Name)
		m, ok := e.bound.Type.(types.Monotype)
		if !ok {
			if e.name == v.Name {
				return v
			}
			return &types.Variable{Name: e.name}
		}
		t = m
	}
}

// Bounds returns the live entries of the prefix in insertion order. Merged
// and dropped entries are skipped.
func (p *Prefix) Bounds() []types.NamedBound {
	nbs := make([]types.NamedBound, 0, len(p.entries))
	for i := range p.entries {
		e := &p.entries[i]
		if e.dead || e.merged != "" {
			continue
		}
		nbs = append(nbs, types.NamedBound{Name: e.name, Bound: e.bound})
	}
	return nbs
}

// Update strengthens the bound of a variable to the monotype t.
//
// If the variable occurs in t the prefix is left untouched and an infinite
// type is reported. If the variable's bound is rigid, t must be structurally
// equal to the bound's type. Variables in t bound deeper than the updated
// variable are hoisted to its level so they survive level pops.
func (p *Prefix) Update(rng ast.Range, name string, t types.Monotype) *diagnostic.Diagnostic {
	e := p.resolve(name)
	if d := p.occurs(rng, e, t); d != nil {
		return d
	}
	if e.bound.Flexibility == types.Rigid {
		if m, ok := e.bound.Type.(types.Monotype); ok && types.MonotypeEqual(m, t) {
			return nil
		}
		return diagnostic.IncompatibleTypes(rng, nil,
			diagnostic.Operand{Printed: types.TypeString(e.bound.Type)},
			diagnostic.Operand{Printed: types.TypeString(t)})
	}
	p.adjustLevels(e.level, t)
	e.bound = types.Bound{Flexibility: types.Rigid, Type: t}
	return nil
}

// Update2 merges two variables into a single entry. The entry at the
// shallower level becomes canonical and takes the given bound; the other
// entry forwards to it.
func (p *Prefix) Update2(rng ast.Range, name1, name2 string, b types.Bound) *diagnostic.Diagnostic {
	e1, e2 := p.resolve(name1), p.resolve(name2)
	if e1 == e2 {
		return nil
	}
	if m, ok := b.Type.(types.Monotype); ok {
		if d := p.occurs(rng, e1, m); d != nil {
			return d
		}
		if d := p.occurs(rng, e2, m); d != nil {
			return d
		}
	}
	canon, other := e1, e2
	if e2.level < e1.level {
		canon, other = e2, e1
	}
	if m, ok := b.Type.(types.Monotype); ok {
		p.adjustLevels(canon.level, m)
	}
	canon.bound = b
	other.merged = canon.name
	return nil
}

// occurs reports an infinite type (or an infinite kind, for row variables)
// when e is reachable from t through the prefix. Nothing is mutated.
func (p *Prefix) occurs(rng ast.Range, e *entry, t types.Monotype) *diagnostic.Diagnostic {
	if !p.reachable(e, t) {
		return nil
	}
	if _, ok := types.KindOf(t).(types.Row); ok {
		return diagnostic.InfiniteKind(rng)
	}
	return diagnostic.InfiniteType(rng, e.name, types.TypeString(t))
}

func (p *Prefix) reachable(e *entry, t types.Monotype) bool {
	switch t := t.(type) {
	case *types.Variable:
		te := p.resolve(t.Name)
		if te == e {
			return true
		}
		if m, ok := te.bound.Type.(types.Monotype); ok {
			return p.reachable(e, m)
		}
		return false
	case *types.Function:
		for _, param := range t.Params {
			if p.reachable(e, param) {
				return true
			}
		}
		return p.reachable(e, t.Return)
	case *types.RowExtension:
		found := false
		t.Labels.Range(func(_ string, ts types.TypeList) bool {
			ts.Range(func(_ int, lt types.Monotype) bool {
				found = p.reachable(e, lt)
				return !found
			})
			return !found
		})
		return found || p.reachable(e, t.Row)
	}
	return false
}

// adjustLevels hoists every variable reachable from t to level at deepest.
func (p *Prefix) adjustLevels(level int, t types.Monotype) {
	switch t := t.(type) {
	case *types.Variable:
		te := p.resolve(t.Name)
		if te.level > level {
			te.level = level
		}
		if m, ok := te.bound.Type.(types.Monotype); ok {
			p.adjustLevels(level, m)
		}
	case *types.Function:
		for _, param := range t.Params {
			p.adjustLevels(level, param)
		}
		p.adjustLevels(level, t.Return)
	case *types.RowExtension:
		t.Labels.Range(func(_ string, ts types.TypeList) bool {
			ts.Range(func(_ int, lt types.Monotype) bool {
				p.adjustLevels(level, lt)
				return true
			})
			return true
		})
		p.adjustLevels(level, t.Row)
	}
}
