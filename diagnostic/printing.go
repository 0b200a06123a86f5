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
	"strconv"
	"strings"

	"github.com/wdamron/mlf/ast"
)

// Related is a secondary location for a diagnostic in case the primary
// message was not enough, pointing at source code which contributed to
// the error.
type Related struct {
	Range   ast.Range
	Message string
}

// Message builds the human readable message for d. The message is generated
// on every call instead of being stored with the diagnostic.
func (d *Diagnostic) Message() string {
	msg, _ := d.render()
	return msg
}

// Related builds the related locations for d, in the order they should
// be presented.
func (d *Diagnostic) Related() []Related {
	_, related := d.render()
	return related
}

func (d *Diagnostic) render() (string, []Related) {
	switch m := d.message.(type) {
	case unboundVariable:
		return "Unbound variable `" + m.name + "`.", nil

	case unboundTypeVariable:
		return "Unbound type variable `" + m.name + "`.", nil

	// The operation ties the incompatibility to an actual place in the
	// program. We print the type we found before the type we expected:
	// expected types are mostly static while the programmer constantly
	// changes which values flow into them.
	case incompatibleTypes:
		if m.op == nil {
			return m.expected.Printed + " ≢ " + m.actual.Printed, nil
		}
		var sb strings.Builder
		sb.WriteString(m.op.clause)
		sb.WriteString(" because ")
		sb.WriteString(operandString(m.actual, true))
		sb.WriteString(" is not ")
		sb.WriteString(operandString(m.expected, true))
		sb.WriteString(".")
		var related []Related
		if r := d.operandRelated(m.actual); r != nil {
			related = append(related, *r)
		}
		if r := d.operandRelated(m.expected); r != nil {
			related = append(related, *r)
		}
		return sb.String(), related

	case infiniteType:
		return "Infinite type since `" + m.name + "` occurs in `" + m.printed + "`.", nil

	case incompatibleKinds:
		return m.kind1 + " ≢ " + m.kind2, nil

	case infiniteKind:
		return "Infinite kind.", nil

	// We use the word "argument" over "parameter" since it is more common,
	// and we spell out small numbers. The two function types would be big,
	// so related locations point at the two parameter lists instead of
	// printing them.
	case incompatibleParameterLengths:
		var sb strings.Builder
		sb.WriteString(m.op.clause)
		sb.WriteString(" because we have ")
		sb.WriteString(argumentLen(m.actual.Len, true))
		if m.actual.Len < m.expected.Len {
			sb.WriteString(" but we need ")
		} else {
			sb.WriteString(" but we only need ")
		}
		sb.WriteString(argumentLen(m.expected.Len, false))
		sb.WriteString(".")
		var related []Related
		if !m.actual.Range.IsZero() && !d.Range.Intersects(m.actual.Range) {
			related = append(related, Related{m.actual.Range, argumentLen(m.actual.Len, true)})
		}
		if !m.expected.Range.IsZero() && !d.Range.Intersects(m.expected.Range) {
			related = append(related, Related{m.expected.Range, argumentLen(m.expected.Len, true)})
		}
		return sb.String(), related

	case missingParameterType:
		return "We need a type for `" + m.pattern + "`.", nil

	case cannotCall:
		related := []Related(nil)
		if r := d.operandRelated(m.callee); r != nil {
			related = append(related, *r)
		}
		return "Can not call " + operandString(m.callee, true) + ".", related

	case nameAlreadyUsed:
		related := []Related{{m.declRange, "`" + m.name + "`"}}
		return "Can not use the name `" + m.name + "` again.", related
	}
	return "", nil
}

// operandRelated links an operand's introduction point, unless the diagnostic
// already points there or the operand has no recorded location.
func (d *Diagnostic) operandRelated(o Operand) *Related {
	if o.Range.IsZero() || d.Range.Intersects(o.Range) {
		return nil
	}
	return &Related{o.Range, operandString(o, false)}
}

// operandString renders an operand as spoken in a message. The article
// argument selects between e.g. "an `Int`" in the main message and the bare
// "`Int`" used for related locations.
func operandString(o Operand, article bool) string {
	switch o.Printed {
	case "Never", "Void":
		return "`" + o.Printed + "`"
	case "Int":
		if article {
			return "an `Int`"
		}
		return "`Int`"
	case "Bool", "Num", "Float":
		if article {
			return "a `" + o.Printed + "`"
		}
		return "`" + o.Printed + "`"
	}
	if strings.Contains(o.Printed, "→") {
		if article {
			return "a function"
		}
		return "function"
	}
	if strings.HasPrefix(o.Printed, "(|") {
		if article {
			return "a record"
		}
		return "record"
	}
	return "`" + o.Printed + "`"
}

// argumentLen spells out an argument count, with a word for small numbers.
func argumentLen(n int, unit bool) string {
	s := cardinal(n)
	if s == "" {
		s = strconv.Itoa(n)
	}
	if unit {
		if n == 1 {
			return s + " argument"
		}
		return s + " arguments"
	}
	return s
}

var cardinals = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen", "twenty",
}

// cardinal returns the word for a small number and "" for larger numbers.
func cardinal(n int) string {
	if n >= 0 && n < len(cardinals) {
		return cardinals[n]
	}
	return ""
}

// MarkdownList renders the collection as a Markdown list, one top-level
// bullet per diagnostic with its related locations nested below it. This is
// the format golden test fixtures record.
func (c *Collection) MarkdownList() string {
	var sb strings.Builder
	for _, d := range c.diagnostics {
		sb.WriteString("- (")
		sb.WriteString(d.Range.String())
		sb.WriteString(") ")
		sb.WriteString(d.Message())
		sb.WriteString("\n")
		for _, rel := range d.Related() {
			sb.WriteString("  - (")
			sb.WriteString(rel.Range.String())
			sb.WriteString(") ")
			sb.WriteString(rel.Message)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
