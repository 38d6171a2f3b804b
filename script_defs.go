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
	"errors"
	"fmt"
)

// A DirectiveKind classifies a Directive.
type DirectiveKind int

const (
	KindStatement DirectiveKind = iota
	KindAssign
	KindItemAssign
	KindEnvironment
	KindEnvMutation
	KindMessage
	KindBuilder
	KindBuilderRegistration
	KindCompile
	KindClone
	KindCall
)

func (k DirectiveKind) String() string {
	switch k {
	case KindStatement:
		return "statement"
	case KindAssign:
		return "assign"
	case KindItemAssign:
		return "item-assign"
	case KindEnvironment:
		return "environment"
	case KindEnvMutation:
		return "env-mutation"
	case KindMessage:
		return "message"
	case KindBuilder:
		return "builder"
	case KindBuilderRegistration:
		return "builder-registration"
	case KindCompile:
		return "compile"
	case KindClone:
		return "clone"
	case KindCall:
		return "call"
	default:
		panic(fmt.Sprintf("unknown directive kind: %d", k))
	}
}

// A Directive is one unit of the generated SConstruct.  Directives are plain
// values; they are only turned into text by WriteTo.
type Directive interface {
	Kind() DirectiveKind
	WriteTo(sw *scriptWriter) error
}

// A Statement is verbatim script text, used for import blocks and for
// target rules produced outside the generator.
type Statement struct {
	Comment string
	Text    string
}

func (Statement) Kind() DirectiveKind { return KindStatement }

func (d Statement) WriteTo(sw *scriptWriter) error {
	if d.Comment != "" {
		if err := sw.Comment(d.Comment); err != nil {
			return err
		}
	}
	return sw.Statement(d.Text)
}

// Assign binds a (possibly dotted) name to a value.
type Assign struct {
	Name  string
	Value Expr
}

func (Assign) Kind() DirectiveKind { return KindAssign }

func (d Assign) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Name, true); err != nil {
		return err
	}
	if d.Value == nil {
		return fmt.Errorf("assignment to %q has no value", d.Name)
	}
	return sw.Assign(d.Name, d.Value.pyExpr())
}

// ItemAssign sets Target[Key], e.g. top_env["SPAWN"] = echospawn.
type ItemAssign struct {
	Target string
	Key    string
	Value  Expr
}

func (ItemAssign) Kind() DirectiveKind { return KindItemAssign }

func (d ItemAssign) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Target, true); err != nil {
		return err
	}
	if d.Value == nil {
		return fmt.Errorf("assignment to %s[%q] has no value", d.Target, d.Key)
	}
	return sw.Assign(d.Target+"["+quote(d.Key)+"]", d.Value.pyExpr())
}

// EnvironmentDef creates a construction environment.
type EnvironmentDef struct {
	Name string
	// InheritOSEnv passes the generator's process environment through to
	// the commands the engine runs.
	InheritOSEnv bool
}

func (EnvironmentDef) Kind() DirectiveKind { return KindEnvironment }

func (d EnvironmentDef) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Name, false); err != nil {
		return err
	}
	var args []string
	if d.InheritOSEnv {
		args = append(args, "ENV=os.environ")
	}
	return sw.AssignCall(d.Name, "Environment", args)
}

type MutationOp int

const (
	OpAppend MutationOp = iota
	OpReplace
)

func (op MutationOp) String() string {
	switch op {
	case OpAppend:
		return "Append"
	case OpReplace:
		return "Replace"
	default:
		panic(fmt.Sprintf("unknown mutation op: %d", op))
	}
}

// EnvMutation appends to or replaces construction variables of Env.
type EnvMutation struct {
	Env  string
	Op   MutationOp
	Vars []Kwarg
}

func (EnvMutation) Kind() DirectiveKind { return KindEnvMutation }

func (d EnvMutation) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Env, false); err != nil {
		return err
	}
	if len(d.Vars) == 0 {
		return errors.New("environment mutation has no variables")
	}
	if err := validateKwargs(d.Vars); err != nil {
		return err
	}
	return sw.Call(d.Env+"."+d.Op.String(), callArgs(nil, d.Vars))
}

// MessageDef declares a progress message shown while an action runs.  Text
// is fully rendered, including any color escapes; the engine substitutes
// $SOURCE and $TARGET when the message is printed.
type MessageDef struct {
	Name string
	Text string
}

func (MessageDef) Kind() DirectiveKind { return KindMessage }

func (d MessageDef) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Name, false); err != nil {
		return err
	}
	return sw.Assign(d.Name, quote(d.Text))
}

// BuilderDef declares a reusable build step.  Exactly one of Command and
// Function is set: Command is a shell command line, Function names a Python
// callable from the helper module.
type BuilderDef struct {
	Name     string // The name the builder is registered under, e.g. "Proto".
	Var      string // The script variable holding the builder.
	Command  string
	Function string
	Message  string // The MessageDef shown while the builder runs.
}

func (BuilderDef) Kind() DirectiveKind { return KindBuilder }

func (d BuilderDef) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Name, false); err != nil {
		return fmt.Errorf("builder name: %s", err)
	}
	if err := validateName(d.Var, false); err != nil {
		return fmt.Errorf("builder %s: %s", d.Name, err)
	}
	if err := validateName(d.Message, false); err != nil {
		return fmt.Errorf("builder %s message: %s", d.Name, err)
	}

	var action Expr
	switch {
	case d.Command != "" && d.Function != "":
		return fmt.Errorf("builder %s has both a command and a function", d.Name)
	case d.Command != "":
		action = Str(d.Command)
	case d.Function != "":
		if err := validateName(d.Function, true); err != nil {
			return fmt.Errorf("builder %s function: %s", d.Name, err)
		}
		action = Ident(d.Function)
	default:
		return fmt.Errorf("builder %s has no command", d.Name)
	}

	makeAction := CallExpr{Func: "MakeAction", Args: []Expr{action, Ident(d.Message)}}
	return sw.AssignCall(d.Var, "Builder", []string{"action=" + makeAction.pyExpr()})
}

// BuilderRegistration makes a declared builder available on Env under Name.
type BuilderRegistration struct {
	Env  string
	Name string
	Var  string
}

func (BuilderRegistration) Kind() DirectiveKind { return KindBuilderRegistration }

func (d BuilderRegistration) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Env, false); err != nil {
		return err
	}
	if err := validateName(d.Name, false); err != nil {
		return err
	}
	if err := validateName(d.Var, false); err != nil {
		return err
	}
	builders := Dict{{Name: d.Name, Value: Ident(d.Var)}}
	return sw.Call(d.Env+".Append", []string{"BUILDERS=" + builders.pyExpr()})
}

// CompileDef compiles a single source into an object held in Var.
type CompileDef struct {
	Env    string
	Var    string
	Source string
	Shared bool
}

func (CompileDef) Kind() DirectiveKind { return KindCompile }

func (d CompileDef) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Env, false); err != nil {
		return err
	}
	if err := validateName(d.Var, false); err != nil {
		return err
	}
	if d.Source == "" {
		return errors.New("compile directive has no source")
	}
	method := "Object"
	if d.Shared {
		method = "SharedObject"
	}
	return sw.AssignCall(d.Var, d.Env+"."+method, []string{quote(d.Source)})
}

// CloneDef copies environment From into a new environment Name.
type CloneDef struct {
	Name string
	From string
}

func (CloneDef) Kind() DirectiveKind { return KindClone }

func (d CloneDef) WriteTo(sw *scriptWriter) error {
	if err := validateName(d.Name, false); err != nil {
		return err
	}
	if err := validateName(d.From, false); err != nil {
		return err
	}
	return sw.AssignCall(d.Name, d.From+".Clone", nil)
}

// CallDef is a bare function or method call, optionally bound to Result.
type CallDef struct {
	Result string
	Func   string
	Args   []Expr
	Kwargs []Kwarg
}

func (CallDef) Kind() DirectiveKind { return KindCall }

func (d CallDef) WriteTo(sw *scriptWriter) error {
	if d.Result != "" {
		if err := validateName(d.Result, false); err != nil {
			return err
		}
	}
	if err := validateName(d.Func, true); err != nil {
		return err
	}
	for i, a := range d.Args {
		if a == nil {
			return fmt.Errorf("call to %s: argument %d has no value", d.Func, i)
		}
	}
	if err := validateKwargs(d.Kwargs); err != nil {
		return err
	}
	return sw.AssignCall(d.Result, d.Func, callArgs(d.Args, d.Kwargs))
}
