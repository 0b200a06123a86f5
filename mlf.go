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

// mlf implements type inference for a polymorphic type-system with bounded
// quantification and extensible records.
//
// The type-system is based on the MLF family: every type variable lives in a
// prefix which binds it to a bound that is either flexible (an instance may
// specialize it) or rigid (an instance must keep it as-is). Unification never
// substitutes eagerly; instead it strengthens bounds in the prefix, which
// keeps principal types without requiring annotations on ordinary code.
//
// Records use extensible rows with scoped labels, so a label may repeat and
// the leftmost entry shadows the rest.
//
//
// Supported Features:
//
//   * Bounded (flexible/rigid) quantification over a binding prefix
//   * Level-based generalization of let bindings and function declarations
//   * Subtyping at function boundaries (contravariant parameters, covariant returns)
//   * Extensible records with scoped labels
//   * Error types that silence downstream diagnostics after a first report
//
//
// Links:
//
// MLF, Raising ML to the Power of System F (Le Botlan, Rémy, 2003): https://gallium.inria.fr/~remy/work/mlf/icfp.pdf
//
// Extensible Records with Scoped Labels (Leijen, 2005): https://www.microsoft.com/en-us/research/publication/extensible-records-with-scoped-labels/
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
package mlf
