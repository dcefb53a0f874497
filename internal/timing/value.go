package timing

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind classifies an intent value. Exactly four forms exist.
type Kind int

const (
	// KindLiteral is a concrete position/duration in seconds.
	KindLiteral Kind = iota
	// KindAuto derives the value from track order (start) or from the
	// asset's probed duration (length).
	KindAuto
	// KindEnd extends a clip's length to the end of the timeline.
	// Valid only as a length.
	KindEnd
	// KindAlias copies the value from another clip, referenced by its
	// user-assigned alias name.
	KindAlias
)

// String returns the document spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindAuto:
		return "auto"
	case KindEnd:
		return "end"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field names which timing field of the target clip an alias reference reads.
type Field string

const (
	FieldStart  Field = "start"
	FieldLength Field = "length"
)

// AliasRef is a typed reference of the form "clip named Name's Field".
// Valid only as the value of an intent start or length.
type AliasRef struct {
	Name  string
	Field Field
}

// String renders the reference in document syntax: "alias:hero.start".
func (r AliasRef) String() string {
	return "alias:" + r.Name + "." + string(r.Field)
}

// Value is one timing intent value: the start or the length declared by
// the user. The zero Value is the literal 0s.
type Value struct {
	kind    Kind
	seconds Seconds
	ref     AliasRef
}

// Literal constructs a concrete value in seconds.
func Literal(s Seconds) Value {
	return Value{kind: KindLiteral, seconds: s}
}

// Auto constructs the symbolic "auto" value.
func Auto() Value {
	return Value{kind: KindAuto}
}

// End constructs the symbolic "end" value.
func End() Value {
	return Value{kind: KindEnd}
}

// Alias constructs a reference to another clip's timing field.
func Alias(name string, field Field) Value {
	return Value{kind: KindAlias, ref: AliasRef{Name: name, Field: field}}
}

// Kind classifies the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Seconds returns the literal value. Valid only when Kind is KindLiteral;
// the bool reports whether the value was literal.
func (v Value) Seconds() (Seconds, bool) {
	return v.seconds, v.kind == KindLiteral
}

// Ref returns the alias reference. Valid only when Kind is KindAlias.
func (v Value) Ref() (AliasRef, bool) {
	return v.ref, v.kind == KindAlias
}

// IsLiteral reports whether the value is a concrete number.
func (v Value) IsLiteral() bool {
	return v.kind == KindLiteral
}

// String renders the value in document syntax.
func (v Value) String() string {
	switch v.kind {
	case KindLiteral:
		return fmt.Sprintf("%g", float64(v.seconds))
	case KindAuto:
		return "auto"
	case KindEnd:
		return "end"
	case KindAlias:
		return v.ref.String()
	default:
		return fmt.Sprintf("Value(kind=%d)", int(v.kind))
	}
}

// Intent is the user's declared timing for one clip.
type Intent struct {
	Start  Value
	Length Value
}

// parseSymbolic interprets the string spellings of non-literal values:
// "auto", "end", "alias:<name>.<start|length>".
func parseSymbolic(s string) (Value, error) {
	switch s {
	case "auto":
		return Auto(), nil
	case "end":
		return End(), nil
	}
	if rest, ok := strings.CutPrefix(s, "alias:"); ok {
		name, field, ok := strings.Cut(rest, ".")
		if !ok {
			return Value{}, fmt.Errorf("alias reference %q: missing field, want alias:<name>.start or alias:<name>.length", s)
		}
		if name == "" {
			return Value{}, fmt.Errorf("alias reference %q: empty alias name", s)
		}
		switch Field(field) {
		case FieldStart, FieldLength:
			return Alias(name, Field(field)), nil
		default:
			return Value{}, fmt.Errorf("alias reference %q: unknown field %q, want start or length", s, field)
		}
	}
	return Value{}, fmt.Errorf("invalid timing value %q: want a number, \"auto\", \"end\", or \"alias:<name>.<field>\"", s)
}

// MarshalJSON renders literals as numbers and symbolic values as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindLiteral {
		return json.Marshal(float64(v.seconds))
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts a JSON number (literal seconds) or one of the
// symbolic string spellings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = Literal(Seconds(num))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timing value: want number or string, got %s", string(data))
	}
	parsed, err := parseSymbolic(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML mirrors the JSON encoding for YAML documents.
func (v Value) MarshalYAML() (any, error) {
	if v.kind == KindLiteral {
		return float64(v.seconds), nil
	}
	return v.String(), nil
}

// UnmarshalYAML mirrors the JSON decoding for YAML documents.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var num float64
	if err := node.Decode(&num); err == nil {
		*v = Literal(Seconds(num))
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: timing value: want number or string", node.Line)
	}
	parsed, err := parseSymbolic(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = parsed
	return nil
}
