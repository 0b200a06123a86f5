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

package ast

import (
	"strconv"
)

// Pos is a line/column position within a source document, supplied by the
// parser which produced a syntax tree. Lines are 1-based and columns
// are 0-based.
type Pos struct {
	Line   int
	Column int
}

// Before reports whether p is ordered strictly before q.
func (p Pos) Before(q Pos) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Column < q.Column)
}

// Range is a span of characters within a source document. The end position is
// exclusive.
type Range struct {
	Start Pos
	End   Pos
}

// NewRange constructs a range from raw line/column coordinates.
func NewRange(startLine, startColumn, endLine, endColumn int) Range {
	return Range{Pos{startLine, startColumn}, Pos{endLine, endColumn}}
}

// IsZero reports whether r is the zero range, which marks a type or node with
// no recorded source location.
func (r Range) IsZero() bool { return r == Range{} }

// Intersects reports whether r and q cover at least one common position.
func (r Range) Intersects(q Range) bool {
	return !(r.End.Before(q.Start) || r.End == q.Start || q.End.Before(r.Start) || q.End == r.Start)
}

// String formats r as "startLine:startColumn-endLine:endColumn".
func (r Range) String() string {
	return strconv.Itoa(r.Start.Line) + ":" + strconv.Itoa(r.Start.Column) +
		"-" + strconv.Itoa(r.End.Line) + ":" + strconv.Itoa(r.End.Column)
}
