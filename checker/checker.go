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

// checker infers and checks types for a module, collecting diagnostics.
//
// Checking never stops at the first problem: an ill-typed subexpression takes
// the Error type, which unifies with everything, so the checker keeps walking
// the rest of the program and reports each root cause once.
package checker

import (
	"github.com/samber/lo"

	"github.com/wdamron/mlf"
	"github.com/wdamron/mlf/ast"
	"github.com/wdamron/mlf/diagnostic"
	"github.com/wdamron/mlf/types"
)

// Checker holds the state of one module check. A Checker owns its prefix, so
// independent modules may be checked concurrently with independent Checkers.
type Checker struct {
	prefix  *mlf.Prefix
	unifier *mlf.Unifier
	diags   *diagnostic.Collection
	scope   *scope
}

type scope struct {
	parent *scope
	names  map[string]binding
}

type binding struct {
	t   types.Polytype
	rng ast.Range
}

// Check type-checks a module and returns the diagnostics found, in
// source order.
func Check(module *ast.Module) *diagnostic.Collection {
	c := NewChecker()
	c.CheckModule(module)
	return c.diags
}

// NewChecker creates a checker with a fresh prefix and an empty
// diagnostic collection.
func NewChecker() *Checker {
	prefix := mlf.NewPrefix()
	diags := diagnostic.NewCollection()
	return &Checker{
		prefix:  prefix,
		unifier: mlf.NewUnifier(prefix, diags),
		diags:   diags,
		scope:   &scope{names: make(map[string]binding)},
	}
}

// Diagnostics returns the diagnostics collected so far.
func (c *Checker) Diagnostics() *diagnostic.Collection { return c.diags }

// CheckModule checks every declaration in source order. A declaration may
// reference itself and any declaration above it; its inferred type is
// generalized before the next declaration is checked.
func (c *Checker) CheckModule(module *ast.Module) {
	for _, decl := range module.Declarations {
		switch decl := decl.(type) {
		case *ast.FunctionDeclaration:
			c.checkFunctionDeclaration(decl)
		}
	}
}

func (c *Checker) checkFunctionDeclaration(decl *ast.FunctionDeclaration) {
	if prev, ok := c.scope.names[decl.Name]; ok {
		c.diags.Report(diagnostic.NameAlreadyUsed(decl.NameRange, decl.Name, prev.rng))
		// The prior binding keeps the name, but the body is still checked
		// so its own faults are reported.
		c.prefix.Level(func() error {
			c.pushScope()
			ts := c.typeParamScope(decl.TypeParams, nil)
			c.checkFunction(&decl.Function, ts, true)
			c.popScope()
			return nil
		})
		return
	}
	var poly types.Polytype
	c.prefix.Level(func() error {
		// The declaration is visible inside its own body through a
		// monomorphic placeholder, so direct recursion checks.
		self := c.prefix.Fresh()
		c.pushScope()
		c.bind(decl.Name, self, decl.NameRange)
		ts := c.typeParamScope(decl.TypeParams, nil)
		ft := c.checkFunction(&decl.Function, ts, true)
		c.popScope()
		c.unifier.Unify(decl.NameRange, nil, self, ft)
		poly = c.prefix.Generalize(ft)
		return nil
	})
	c.bind(decl.Name, poly, decl.NameRange)
}

// checkFunction checks a function header and body and returns its monotype.
// Unannotated parameters of a declaration are reported; unannotated
// parameters of a function expression are inferred.
func (c *Checker) checkFunction(fn *ast.Function, ts *typeScope, declared bool) types.Monotype {
	c.pushScope()
	params := lo.Map(fn.Params, func(param ast.Param, _ int) types.Monotype {
		var pt types.Monotype
		switch {
		case param.Type != nil:
			pt = c.resolveMonotype(param.Type, ts)
		case declared:
			c.diags.Report(diagnostic.MissingParameterType(param.Range, param.Name))
			pt = c.prefix.Fresh()
		default:
			pt = c.prefix.Fresh()
		}
		c.bind(param.Name, pt, param.Range)
		return pt
	})
	ret := c.inferExpr(fn.Body)
	if fn.Return != nil {
		annotated := c.resolveMonotype(fn.Return, ts)
		op := diagnostic.ReturnOperation(snippet(fn.Body))
		c.unifier.Unify(fn.Body.ExprRange(), op, annotated, ret)
		ret = annotated
	}
	c.popScope()
	return &types.Function{Params: params, Return: ret, Range: fn.ParamsRange}
}

func (c *Checker) inferExpr(e ast.Expr) types.Monotype {
	switch e := e.(type) {
	case *ast.Constant:
		switch e.Kind {
		case ast.BoolConstant:
			return types.Bool(e.Range)
		case ast.IntConstant:
			return types.Int(e.Range)
		case ast.FloatConstant:
			return types.Float(e.Range)
		default:
			return types.Void(e.Range)
		}

	case *ast.Reference:
		b, ok := c.lookup(e.Name)
		if !ok {
			d := c.diags.Report(diagnostic.UnboundVariable(e.Range, e.Name))
			return &types.Error{Diagnostic: d}
		}
		return c.prefix.Instantiate(b.t)

	case *ast.Function:
		return c.checkFunction(e, nil, false)

	case *ast.Call:
		return c.checkCall(e)

	case *ast.Conditional:
		return c.checkConditional(e)

	case *ast.Record:
		labels := types.NewTypeMapBuilder()
		for _, field := range e.Fields {
			labels.Add(field.Label, c.inferExpr(field.Value))
		}
		if labels.Len() == 0 {
			return types.RowEmpty{}
		}
		return &types.RowExtension{Labels: labels.Build(), Row: types.RowEmpty{}}

	case *ast.Property:
		ot := c.inferExpr(e.Object)
		ft := c.prefix.Fresh()
		tail := c.prefix.Fresh()
		want := &types.RowExtension{Labels: types.SingletonTypeMap(e.Label, ft), Row: tail}
		if d := c.unifier.Unify(e.LabelRange, nil, want, ot); d != nil {
			return &types.Error{Diagnostic: d}
		}
		return ft

	case *ast.Unary:
		op := diagnostic.OperatorOperation("!")
		ot := c.inferExpr(e.Operand)
		c.unifier.Unify(e.Operand.ExprRange(), op, types.Bool(ast.Range{}), ot)
		return types.Bool(e.Range)

	case *ast.Logical:
		op := diagnostic.OperatorOperation(logicalOpName(e.Op))
		lt := c.inferExpr(e.Left)
		c.unifier.Unify(e.Left.ExprRange(), op, types.Bool(ast.Range{}), lt)
		rt := c.inferExpr(e.Right)
		c.unifier.Unify(e.Right.ExprRange(), op, types.Bool(ast.Range{}), rt)
		return types.Bool(e.Range)

	case *ast.Block:
		return c.checkBlock(e)
	}
	return types.Void(ast.Range{})
}

// checkCall checks a function application. Arity is checked before the
// arguments, and arguments past an arity mismatch still check pairwise up to
// the shorter list, so a wrong argument reports its own diagnostic.
func (c *Checker) checkCall(e *ast.Call) types.Monotype {
	ct := c.prefix.Resolve(c.inferExpr(e.Callee))
	op := diagnostic.CallOperation(snippet(e.Callee))

	switch ct := ct.(type) {
	case *types.Error:
		for _, arg := range e.Args {
			c.inferExpr(arg)
		}
		return ct

	case *types.Function:
		if len(e.Args) != len(ct.Params) {
			c.diags.Report(diagnostic.IncompatibleParameterLengths(e.Range, op,
				diagnostic.ArityOperand{Range: ct.Range, Len: len(ct.Params)},
				diagnostic.ArityOperand{Range: e.ArgsRange, Len: len(e.Args)}))
		}
		for i, arg := range e.Args {
			at := c.inferExpr(arg)
			if i < len(ct.Params) {
				c.unifier.Unify(arg.ExprRange(), op, ct.Params[i], at)
			}
		}
		return ct.Return

	case *types.Variable:
		args := lo.Map(e.Args, func(arg ast.Expr, _ int) types.Monotype {
			return c.inferExpr(arg)
		})
		ret := c.prefix.Fresh()
		want := &types.Function{Params: args, Return: ret, Range: e.ArgsRange}
		if d := c.unifier.Unify(e.Range, op, want, ct); d != nil {
			return &types.Error{Diagnostic: d}
		}
		return ret

	default:
		for _, arg := range e.Args {
			c.inferExpr(arg)
		}
		d := c.diags.Report(diagnostic.CannotCall(e.Callee.ExprRange(), operandOf(ct)))
		return &types.Error{Diagnostic: d}
	}
}

func (c *Checker) checkConditional(e *ast.Conditional) types.Monotype {
	op := diagnostic.OperatorOperation("if")
	tt := c.inferExpr(e.Test)
	c.unifier.Unify(e.Test.ExprRange(), op, types.Bool(ast.Range{}), tt)
	tc := c.inferExpr(e.Consequent)
	if e.Alternate == nil {
		return types.Void(ast.Range{})
	}
	ta := c.inferExpr(e.Alternate)
	join := c.prefix.Fresh()
	c.unifier.Unify(e.Consequent.ExprRange(), op, join, tc)
	if d := c.unifier.Unify(e.Alternate.ExprRange(), op, join, ta); d != nil {
		return &types.Error{Diagnostic: d}
	}
	return join
}

// checkBlock checks statements in order. Bindings are generalized at a
// deeper level, so a binding may be used polymorphically below its
// statement. The block's type is the type of its final expression statement.
func (c *Checker) checkBlock(e *ast.Block) types.Monotype {
	c.pushScope()
	defer c.popScope()
	var last types.Monotype = types.Void(ast.Range{})
	for _, stmt := range e.Statements {
		switch stmt := stmt.(type) {
		case *ast.ExpressionStatement:
			last = c.inferExpr(stmt.Expression)
		case *ast.BindingStatement:
			var poly types.Polytype
			c.prefix.Level(func() error {
				vt := c.inferExpr(stmt.Value)
				if stmt.Type != nil {
					annotated := c.resolveMonotype(stmt.Type, nil)
					op := diagnostic.BindingOperation(stmt.Name, snippet(stmt.Value))
					c.unifier.Unify(stmt.Value.ExprRange(), op, annotated, vt)
					vt = annotated
				}
				poly = c.prefix.Generalize(vt)
				return nil
			})
			c.bind(stmt.Name, poly, stmt.NameRange)
			last = types.Void(ast.Range{})
		}
	}
	return last
}

func (c *Checker) pushScope() {
	c.scope = &scope{parent: c.scope, names: make(map[string]binding)}
}

func (c *Checker) popScope() {
	c.scope = c.scope.parent
}

func (c *Checker) bind(name string, t types.Polytype, rng ast.Range) {
	c.scope.names[name] = binding{t: t, rng: rng}
}

func (c *Checker) lookup(name string) (binding, bool) {
	for s := c.scope; s != nil; s = s.parent {
		if b, ok := s.names[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

// snippet renders an expression the way the programmer wrote it, as far as
// the AST records it.
func snippet(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Reference:
		return e.Name
	case *ast.Constant:
		return e.Literal
	case *ast.Property:
		return snippet(e.Object) + "." + e.Label
	case *ast.Block:
		// A block reads as its final expression statement.
		if n := len(e.Statements); n > 0 {
			if s, ok := e.Statements[n-1].(*ast.ExpressionStatement); ok {
				return snippet(s.Expression)
			}
		}
		return e.ExprName()
	default:
		return e.ExprName()
	}
}

func logicalOpName(op ast.LogicalOp) string {
	if op == ast.AndOp {
		return "&&"
	}
	return "||"
}

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
