// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sconsgen

import (
	"fmt"
	"strconv"
	"strings"
)

// An Expr is a Python expression in the generated script.
type Expr interface {
	pyExpr() string
}

// Ident refers to a name defined earlier in the script or by the helper
// module, e.g. echospawn or compile_source_message.
type Ident string

// Str is a string literal.  It is quoted and escaped when rendered; engine
// placeholders such as $SOURCE are left untouched.
type Str string

// StrList is a list of string literals.
type StrList []string

type Int int64

type Bool bool

// A Kwarg is a keyword argument to a call.
type Kwarg struct {
	Name  string
	Value Expr
}

// Dict is a dictionary literal with string keys, rendered in order.
type Dict []Kwarg

// CallExpr is a function call expression, e.g. Value("...").
type CallExpr struct {
	Func   string
	Args   []Expr
	Kwargs []Kwarg
}

// ExprList is a list literal of arbitrary expressions.
type ExprList []Expr

func (i Ident) pyExpr() string { return string(i) }
func (s Str) pyExpr() string   { return quote(string(s)) }
func (i Int) pyExpr() string   { return strconv.FormatInt(int64(i), 10) }

func (b Bool) pyExpr() string {
	if b {
		return "True"
	}
	return "False"
}

func (l StrList) pyExpr() string {
	quoted := make([]string, len(l))
	for i, s := range l {
		quoted[i] = quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (l ExprList) pyExpr() string {
	items := make([]string, len(l))
	for i, e := range l {
		items[i] = e.pyExpr()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (d Dict) pyExpr() string {
	items := make([]string, len(d))
	for i, kv := range d {
		items[i] = quote(kv.Name) + ": " + kv.Value.pyExpr()
	}
	return "{" + strings.Join(items, ", ") + "}"
}

func (c CallExpr) pyExpr() string {
	return c.Func + "(" + strings.Join(callArgs(c.Args, c.Kwargs), ", ") + ")"
}

func callArgs(args []Expr, kwargs []Kwarg) []string {
	result := make([]string, 0, len(args)+len(kwargs))
	for _, a := range args {
		result = append(result, a.pyExpr())
	}
	for _, kw := range kwargs {
		result = append(result, kw.Name+"="+kw.Value.pyExpr())
	}
	return result
}

// quote returns s as a double-quoted Python string literal.  Go's escape
// sequences for control characters and quotes are a subset of Python's.
func quote(s string) string {
	return strconv.Quote(s)
}

// validateName checks that name is a valid Python identifier.  Dotted names
// are allowed when dotted is true, for attribute targets like
// scons_helper.option_verbose.
func validateName(name string, dotted bool) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	start := true
	for i, r := range name {
		valid := (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r == '_') ||
			(!start && r >= '0' && r <= '9')
		if dotted && r == '.' && !start {
			start = true
			continue
		}
		if !valid {
			return fmt.Errorf("%q contains an invalid name character "+
				"%q at byte offset %d", name, r, i)
		}
		start = false
	}
	if start {
		return fmt.Errorf("%q ends with '.'", name)
	}
	return nil
}

func validateKwargs(kwargs []Kwarg) error {
	for _, kw := range kwargs {
		err := validateName(kw.Name, false)
		if err != nil {
			return err
		}
		if kw.Value == nil {
			return fmt.Errorf("keyword argument %q has no value", kw.Name)
		}
	}
	return nil
}
