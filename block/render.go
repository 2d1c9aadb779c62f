package block

import (
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Rendering: compact human-readable program listings
// ---------------------------------------------------------------------------

// Render formats a program as an indented statement listing with infix
// expressions, one statement per line. The output is for humans (logs,
// CLI); MarshalProgram is the machine form.
func Render(p *Program) string {
	var sb strings.Builder
	sb.WriteString("inputs(" + strings.Join(p.InputVars, ", ") + ")\n")
	renderBlocks(&sb, p.Blocks, 0)
	return sb.String()
}

func renderBlocks(sb *strings.Builder, blocks []*Block, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, b := range blocks {
		sb.WriteString(indent)
		renderStatement(sb, b, depth)
		sb.WriteByte('\n')
	}
}

func renderStatement(sb *strings.Builder, b *Block, depth int) {
	switch b.Kind {
	case KindSet:
		sb.WriteString("set " + b.Target + " = ")
		if len(b.Inputs) > 0 {
			sb.WriteString(renderValue(b.Inputs[0]))
		}
	case KindReturn:
		sb.WriteString("return")
		if len(b.Inputs) > 0 {
			sb.WriteString(" " + renderValue(b.Inputs[0]))
		}
	case KindIf, KindIfElse:
		cond := "?"
		if len(b.Inputs) > 0 {
			cond = renderValue(b.Inputs[0])
		}
		sb.WriteString("if " + cond + " {\n")
		renderBlocks(sb, b.Actions, depth+1)
		sb.WriteString(strings.Repeat("  ", depth) + "}")
		if b.Kind == KindIfElse {
			sb.WriteString(" else {\n")
			renderBlocks(sb, b.Else, depth+1)
			sb.WriteString(strings.Repeat("  ", depth) + "}")
		}
	default:
		sb.WriteString(renderExpr(b))
	}
}

// infixTokens maps binary reporter kinds to their rendered operator.
var infixTokens = map[Kind]string{
	KindAdd:      "+",
	KindSubtract: "-",
	KindMultiply: "*",
	KindDivide:   "/",
	KindPower:    "^",
	KindModulo:   "%",
	KindAnd:      "and",
	KindOr:       "or",
}

func renderExpr(b *Block) string {
	if tok, ok := infixTokens[b.Kind]; ok && len(b.Inputs) == 2 {
		return "(" + renderValue(b.Inputs[0]) + " " + tok + " " + renderValue(b.Inputs[1]) + ")"
	}
	switch b.Kind {
	case KindCompare:
		if len(b.Inputs) == 3 {
			return "(" + renderValue(b.Inputs[0]) + " " + renderValue(b.Inputs[1]) + " " + renderValue(b.Inputs[2]) + ")"
		}
	case KindNot:
		if len(b.Inputs) == 1 {
			return "not(" + renderValue(b.Inputs[0]) + ")"
		}
	case KindAbsolute:
		if len(b.Inputs) == 1 {
			return "abs(" + renderValue(b.Inputs[0]) + ")"
		}
	case KindNegate:
		if len(b.Inputs) == 1 {
			return "neg(" + renderValue(b.Inputs[0]) + ")"
		}
	case KindGet:
		if len(b.Inputs) == 1 {
			return renderValue(b.Inputs[0])
		}
	case KindPi:
		return "pi"
	case KindE:
		return "e"
	case KindNumber, KindBoolean:
		if len(b.Inputs) == 1 {
			return renderValue(b.Inputs[0])
		}
	}
	// Malformed arity still renders, call-style, so broken candidates
	// stay inspectable in logs.
	args := make([]string, len(b.Inputs))
	for i, in := range b.Inputs {
		args[i] = renderValue(in)
	}
	return b.Kind.String() + "(" + strings.Join(args, ", ") + ")"
}

func renderValue(v Value) string {
	switch {
	case v.IsNumber():
		return strconv.FormatFloat(v.Number(), 'g', -1, 64)
	case v.IsBool():
		return strconv.FormatBool(v.Bool())
	case v.IsVariable():
		return v.Variable()
	case v.IsOperator():
		return v.Operator()
	case v.IsBlock():
		return renderExpr(v.Block())
	default:
		return "<none>"
	}
}
