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

// ast describes the syntax trees consumed by the checker. The trees are
// produced by an external parser; every node carries the source range the
// parser recorded for it, and the checker reads the trees without
// modifying them.
package ast

// Module is a list of declarations.
type Module struct {
	Declarations []Declaration
}

// Declaration is the base for all declarations.
type Declaration interface {
	// Name of the syntax-type of the declaration.
	DeclName() string
	// Source range covered by the declaration.
	DeclRange() Range
}

var (
	_ Declaration = (*FunctionDeclaration)(nil)
)

// FunctionDeclaration declares a named, possibly generic function.
type FunctionDeclaration struct {
	Range     Range
	Name      string
	NameRange Range
	// Programmer-named type parameters quantified over the function's type.
	TypeParams []TypeBound
	Function   Function
}

func (d *FunctionDeclaration) DeclName() string { return "function declaration" }
func (d *FunctionDeclaration) DeclRange() Range { return d.Range }

// Function is a function header and body. It appears both in function
// declarations and as a function expression.
type Function struct {
	Range  Range
	Params []Param
	// Source range of the parameter list, parentheses included.
	ParamsRange Range
	// Optional return type annotation.
	Return Type
	Body   Expr
}

func (f *Function) ExprName() string { return "function" }
func (f *Function) ExprRange() Range { return f.Range }

// Param is a single function parameter with an optional type annotation.
type Param struct {
	Range Range
	Name  string
	// Optional type annotation. Declaration parameters without an annotation
	// are reported by the checker.
	Type Type
}

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Source range covered by the expression.
	ExprRange() Range
}

var (
	_ Expr = (*Constant)(nil)
	_ Expr = (*Reference)(nil)
	_ Expr = (*Function)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Conditional)(nil)
	_ Expr = (*Record)(nil)
	_ Expr = (*Property)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Logical)(nil)
	_ Expr = (*Block)(nil)
)

// ConstantKind distinguishes the constant expressions.
type ConstantKind int

const (
	BoolConstant ConstantKind = iota
	IntConstant
	FloatConstant
	VoidConstant
)

// Constant is a literal value in the program.
type Constant struct {
	Range Range
	Kind  ConstantKind
	// Literal syntax, e.g. "true" or "42".
	Literal string
}

func (e *Constant) ExprName() string { return "constant" }
func (e *Constant) ExprRange() Range { return e.Range }

// Reference is a use of a name bound in an enclosing scope.
type Reference struct {
	Range Range
	Name  string
}

func (e *Reference) ExprName() string { return "reference" }
func (e *Reference) ExprRange() Range { return e.Range }

// Call applies a function to a list of arguments.
type Call struct {
	Range  Range
	Callee Expr
	Args   []Expr
	// Source range of the argument list, parentheses included.
	ArgsRange Range
}

func (e *Call) ExprName() string { return "call" }
func (e *Call) ExprRange() Range { return e.Range }

// Conditional chooses between two branches. The alternate may be nil.
type Conditional struct {
	Range      Range
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (e *Conditional) ExprName() string { return "conditional" }
func (e *Conditional) ExprRange() Range { return e.Range }

// Record constructs a structural record from labeled fields.
type Record struct {
	Range  Range
	Fields []Field
}

func (e *Record) ExprName() string { return "record" }
func (e *Record) ExprRange() Range { return e.Range }

// Field is a single labeled record entry.
type Field struct {
	Range Range
	Label string
	Value Expr
}

// Property projects a labeled field out of a record.
type Property struct {
	Range      Range
	Object     Expr
	Label      string
	LabelRange Range
}

func (e *Property) ExprName() string { return "property" }
func (e *Property) ExprRange() Range { return e.Range }

// UnaryOp is the operator of a Unary expression.
type UnaryOp int

const (
	NotOp UnaryOp = iota
)

// Unary is an operation using prefix syntax.
type Unary struct {
	Range   Range
	Op      UnaryOp
	Operand Expr
}

func (e *Unary) ExprName() string { return "unary" }
func (e *Unary) ExprRange() Range { return e.Range }

// LogicalOp is the operator of a Logical expression.
type LogicalOp int

const (
	AndOp LogicalOp = iota
	OrOp
)

// Logical is a short-circuiting boolean operation using infix syntax.
type Logical struct {
	Range Range
	Op    LogicalOp
	Left  Expr
	Right Expr
}

func (e *Logical) ExprName() string { return "logical" }
func (e *Logical) ExprRange() Range { return e.Range }

// Block is a sequence of statements; the value of the final expression
// statement is the value of the block.
type Block struct {
	Range      Range
	Statements []Statement
}

func (e *Block) ExprName() string { return "block" }
func (e *Block) ExprRange() Range { return e.Range }

// Statement is the base for all statements.
type Statement interface {
	// Name of the syntax-type of the statement.
	StmtName() string
	// Source range covered by the statement.
	StmtRange() Range
}

var (
	_ Statement = (*ExpressionStatement)(nil)
	_ Statement = (*BindingStatement)(nil)
)

// ExpressionStatement executes an expression for its value or side effects.
type ExpressionStatement struct {
	Range      Range
	Expression Expr
}

func (s *ExpressionStatement) StmtName() string { return "expression statement" }
func (s *ExpressionStatement) StmtRange() Range { return s.Range }

// BindingStatement binds a value to a name in the current scope. Bindings are
// generalized, so a binding may be used polymorphically below its statement.
type BindingStatement struct {
	Range     Range
	Name      string
	NameRange Range
	// Optional type annotation.
	Type  Type
	Value Expr
}

func (s *BindingStatement) StmtName() string { return "binding statement" }
func (s *BindingStatement) StmtRange() Range { return s.Range }

// Type is the base for all type annotations.
type Type interface {
	// Name of the syntax-type of the annotation.
	TypeName() string
	// Source range covered by the annotation.
	TypeRange() Range
}

var (
	_ Type = (*TypeReference)(nil)
	_ Type = (*FunctionType)(nil)
	_ Type = (*RecordType)(nil)
	_ Type = (*QuantifiedType)(nil)
)

// TypeReference names a primitive type or a type variable in scope.
type TypeReference struct {
	Range Range
	Name  string
}

func (t *TypeReference) TypeName() string { return "type reference" }
func (t *TypeReference) TypeRange() Range { return t.Range }

// FunctionType annotates a function's parameter and return types.
type FunctionType struct {
	Range  Range
	Params []Type
	// Source range of the parameter type list, parentheses included.
	ParamsRange Range
	Return      Type
}

func (t *FunctionType) TypeName() string { return "function type" }
func (t *FunctionType) TypeRange() Range { return t.Range }

// RecordType annotates a structural record as a row of labeled fields with an
// optional extension.
type RecordType struct {
	Range  Range
	Fields []TypeField
	// Optional row extension: a type variable or a further record type.
	Extension Type
}

func (t *RecordType) TypeName() string { return "record type" }
func (t *RecordType) TypeRange() Range { return t.Range }

// TypeField is a single labeled entry of a RecordType.
type TypeField struct {
	Range Range
	Label string
	Type  Type
}

// BoundKind is the flexibility of a quantified type-variable bound.
type BoundKind int

const (
	// FlexibleBound allows the variable to be strengthened during unification.
	FlexibleBound BoundKind = iota
	// RigidBound fixes the variable; unification against it may only succeed
	// by equality.
	RigidBound
)

// TypeBound is a quantified type-variable binding: a name, a flexibility, and
// an optional bounding type. A nil bounding type quantifies over bottom.
type TypeBound struct {
	Range Range
	Name  string
	Kind  BoundKind
	Type  Type
}

// QuantifiedType annotates a polymorphic type, universally quantified over
// one or more bounds.
type QuantifiedType struct {
	Range  Range
	Bounds []TypeBound
	Body   Type
}

func (t *QuantifiedType) TypeName() string { return "quantified type" }
func (t *QuantifiedType) TypeRange() Range { return t.Range }
