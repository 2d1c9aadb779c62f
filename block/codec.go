package block

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Codec: structured tree form for logging, archival, and round-trips
// ---------------------------------------------------------------------------

// ProgramDoc is the serialized form of a Program: a nested, order-preserving
// tree that round-trips to a structurally equal Program. JSON is the
// canonical textual encoding; the same structs feed the CBOR snapshot
// envelope (cbor falls back to json struct tags).
type ProgramDoc struct {
	Inputs []string    `json:"inputs"`
	Blocks []*BlockDoc `json:"blocks"`
}

// BlockDoc is the serialized form of one block node.
type BlockDoc struct {
	Kind    string      `json:"kind"`
	Target  string      `json:"target,omitempty"`
	Inputs  []*ValueDoc `json:"inputs,omitempty"`
	Actions []*BlockDoc `json:"actions,omitempty"`
	Else    []*BlockDoc `json:"else,omitempty"`
}

// ValueDoc is the serialized form of one input slot.
type ValueDoc struct {
	Type     string    `json:"type"`
	Number   *float64  `json:"number,omitempty"`
	Bool     *bool     `json:"bool,omitempty"`
	Name     string    `json:"name,omitempty"`
	Operator string    `json:"operator,omitempty"`
	Block    *BlockDoc `json:"block,omitempty"`
}

// Encode converts a Program to its document form.
func Encode(p *Program) *ProgramDoc {
	doc := &ProgramDoc{Inputs: append([]string(nil), p.InputVars...)}
	for _, b := range p.Blocks {
		doc.Blocks = append(doc.Blocks, encodeBlock(b))
	}
	return doc
}

func encodeBlock(b *Block) *BlockDoc {
	doc := &BlockDoc{Kind: b.Kind.String(), Target: b.Target}
	for _, in := range b.Inputs {
		doc.Inputs = append(doc.Inputs, encodeValue(in))
	}
	for _, a := range b.Actions {
		doc.Actions = append(doc.Actions, encodeBlock(a))
	}
	for _, a := range b.Else {
		doc.Else = append(doc.Else, encodeBlock(a))
	}
	return doc
}

func encodeValue(v Value) *ValueDoc {
	switch {
	case v.IsNumber():
		n := v.Number()
		return &ValueDoc{Type: "number", Number: &n}
	case v.IsBool():
		b := v.Bool()
		return &ValueDoc{Type: "boolean", Bool: &b}
	case v.IsVariable():
		return &ValueDoc{Type: "variable", Name: v.Variable()}
	case v.IsOperator():
		return &ValueDoc{Type: "operator", Operator: v.Operator()}
	case v.IsBlock():
		return &ValueDoc{Type: "block", Block: encodeBlock(v.Block())}
	default:
		return &ValueDoc{Type: "none"}
	}
}

// Decode converts a document back to a Program. The block list is restored
// verbatim (no normalization), so Encode/Decode round-trips structurally.
func Decode(doc *ProgramDoc) (*Program, error) {
	if doc == nil {
		return nil, fmt.Errorf("block: decode nil program document")
	}
	blocks := make([]*Block, 0, len(doc.Blocks))
	for i, bd := range doc.Blocks {
		b, err := decodeBlock(bd)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	p := &Program{
		ID:        uuid.NewString(),
		Blocks:    blocks,
		InputVars: append([]string(nil), doc.Inputs...),
	}
	return p, nil
}

func decodeBlock(doc *BlockDoc) (*Block, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil block document")
	}
	kind, ok := KindByName(doc.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown block kind %q", doc.Kind)
	}
	b := &Block{Kind: kind, Target: doc.Target}
	for i, vd := range doc.Inputs {
		v, err := decodeValue(vd)
		if err != nil {
			return nil, fmt.Errorf("input %d of %s: %w", i, doc.Kind, err)
		}
		b.Inputs = append(b.Inputs, v)
	}
	for i, ad := range doc.Actions {
		a, err := decodeBlock(ad)
		if err != nil {
			return nil, fmt.Errorf("action %d of %s: %w", i, doc.Kind, err)
		}
		b.Actions = append(b.Actions, a)
	}
	for i, ad := range doc.Else {
		a, err := decodeBlock(ad)
		if err != nil {
			return nil, fmt.Errorf("else action %d of %s: %w", i, doc.Kind, err)
		}
		b.Else = append(b.Else, a)
	}
	return b, nil
}

func decodeValue(doc *ValueDoc) (Value, error) {
	if doc == nil {
		return Value{}, fmt.Errorf("nil value document")
	}
	switch doc.Type {
	case "number":
		if doc.Number == nil {
			return Value{}, fmt.Errorf("number value missing payload")
		}
		return NumberValue(*doc.Number), nil
	case "boolean":
		if doc.Bool == nil {
			return Value{}, fmt.Errorf("boolean value missing payload")
		}
		return BoolValue(*doc.Bool), nil
	case "variable":
		return VariableValue(doc.Name), nil
	case "operator":
		return OperatorValue(doc.Operator), nil
	case "block":
		b, err := decodeBlock(doc.Block)
		if err != nil {
			return Value{}, err
		}
		return BlockValue(b), nil
	case "none":
		return Value{}, nil
	default:
		return Value{}, fmt.Errorf("unknown value type %q", doc.Type)
	}
}

// MarshalProgram serializes a Program to its canonical JSON tree.
func MarshalProgram(p *Program) ([]byte, error) {
	data, err := json.Marshal(Encode(p))
	if err != nil {
		return nil, fmt.Errorf("block: marshal program: %w", err)
	}
	return data, nil
}

// UnmarshalProgram restores a Program from its canonical JSON tree.
func UnmarshalProgram(data []byte) (*Program, error) {
	var doc ProgramDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("block: unmarshal program: %w", err)
	}
	return Decode(&doc)
}
