// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package ast

// ControlOp distinguishes jump statements.
type ControlOp string

const (
	ControlReturn   ControlOp = "Return"
	ControlBreak    ControlOp = "Break"
	ControlContinue ControlOp = "Continue"
)

// BinaryFamily is the precedence family of a binary operator.
type BinaryFamily string

const (
	FamilyComparative BinaryFamily = "Comparative"
	FamilyAddSub      BinaryFamily = "AddSub"
	FamilyMultDivMod  BinaryFamily = "MultDivMod"
	FamilyLogical     BinaryFamily = "Logical"
)

// NumberForm tells integer literals from floating ones.
type NumberForm string

const (
	NumberInteger NumberForm = "Integer"
	NumberDouble  NumberForm = "Double"
)

// If is "if (cond) then [else otherwise]". Branches are a *Body or a single
// statement; an "else if" chain nests another *If in Else.
type If struct {
	base
	Cond Node
	Then Node
	Else Node
}

func NewIf(children []Node, cond Node, then, els Node) *If {
	return &If{base: base{children}, Cond: cond, Then: then, Else: els}
}

func (*If) Kind() Kind { return KindIf }

type While struct {
	base
	Cond Node
	Body Node
}

func NewWhile(children []Node, cond Node, body Node) *While {
	return &While{base: base{children}, Cond: cond, Body: body}
}

func (*While) Kind() Kind { return KindWhile }

// Control is return, break or continue. Value is only set for return.
type Control struct {
	base
	Op    ControlOp
	Value Node
}

func NewControl(children []Node, op ControlOp, value Node) *Control {
	return &Control{base: base{children}, Op: op, Value: value}
}

func (*Control) Kind() Kind { return KindControl }

// FunctionCall is "callee(args) [{ lambda }]". Name is set when the callee
// is a plain identifier.
type FunctionCall struct {
	base
	Callee Node
	Name   string
	Args   []*CallArgument
	Lambda *Body
}

func NewFunctionCall(children []Node, callee Node, args []*CallArgument, lambda *Body) *FunctionCall {
	fc := &FunctionCall{base: base{children}, Callee: callee, Args: args, Lambda: lambda}
	if id, ok := callee.(*Identifier); ok {
		fc.Name = id.Name
	}
	return fc
}

func (*FunctionCall) Kind() Kind { return KindFunctionCall }

// CallArgument is one positional or named ("name = value") call argument.
type CallArgument struct {
	base
	Name  string
	Value Node
}

func NewCallArgument(children []Node, name string, value Node) *CallArgument {
	return &CallArgument{base: base{children}, Name: name, Value: value}
}

func (*CallArgument) Kind() Kind { return KindCallArgument }

// MemberAccess is "target.name" (or "target?.name").
type MemberAccess struct {
	base
	Target Node
	Name   string
}

func NewMemberAccess(children []Node, target Node, name string) *MemberAccess {
	return &MemberAccess{base: base{children}, Target: target, Name: name}
}

func (*MemberAccess) Kind() Kind { return KindMemberAccess }

// Index is "target[args]".
type Index struct {
	base
	Target Node
	Args   []*CallArgument
}

func NewIndex(children []Node, target Node, args []*CallArgument) *Index {
	return &Index{base: base{children}, Target: target, Args: args}
}

func (*Index) Kind() Kind { return KindIndex }

// Assignment is "target op value" where op is "=" or a compound operator.
type Assignment struct {
	base
	Target Node
	Op     string
	Value  Node
}

func NewAssignment(children []Node, target Node, op string, value Node) *Assignment {
	return &Assignment{base: base{children}, Target: target, Op: op, Value: value}
}

func (*Assignment) Kind() Kind { return KindAssignment }

// Declaration is a local "val|var name[: Type] [= value]".
type Declaration struct {
	base
	Binding Binding
	Name    string
	Type    *Type
	Value   Node
}

func NewDeclaration(children []Node, binding Binding, name string, typ *Type, value Node) *Declaration {
	return &Declaration{base: base{children}, Binding: binding, Name: name, Type: typ, Value: value}
}

func (*Declaration) Kind() Kind { return KindDeclaration }

// Postfix is "operand++" or "operand--".
type Postfix struct {
	base
	Operand Node
	Op      string
}

func NewPostfix(children []Node, operand Node, op string) *Postfix {
	return &Postfix{base: base{children}, Operand: operand, Op: op}
}

func (*Postfix) Kind() Kind { return KindPostfix }

type BinaryExpression struct {
	base
	Family BinaryFamily
	Op     string
	Left   Node
	Right  Node
}

func NewBinary(children []Node, family BinaryFamily, op string, left, right Node) *BinaryExpression {
	return &BinaryExpression{base: base{children}, Family: family, Op: op, Left: left, Right: right}
}

func (*BinaryExpression) Kind() Kind { return KindBinary }

type Number struct {
	base
	Form NumberForm
	Text string
}

func NewNumber(children []Node, form NumberForm, text string) *Number {
	return &Number{base: base{children}, Form: form, Text: text}
}

func (*Number) Kind() Kind { return KindNumber }

// Literal is true, false, null or this.
type Literal struct {
	base
	Value string
}

func NewLiteral(children []Node, value string) *Literal {
	return &Literal{base: base{children}, Value: value}
}

func (*Literal) Kind() Kind { return KindLiteral }

// Signal is a prefix operator applied to an operand: "-x", "+x", "!x".
type Signal struct {
	base
	Op      string
	Operand Node
}

func NewSignal(children []Node, op string, operand Node) *Signal {
	return &Signal{base: base{children}, Op: op, Operand: operand}
}

func (*Signal) Kind() Kind { return KindSignal }

type Parenthesis struct {
	base
	Inner Node
}

func NewParenthesis(children []Node, inner Node) *Parenthesis {
	return &Parenthesis{base: base{children}, Inner: inner}
}

func (*Parenthesis) Kind() Kind { return KindParenthesis }
