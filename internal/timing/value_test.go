package timing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValue_ZeroValueIsLiteralZero(t *testing.T) {
	var v Value
	assert.Equal(t, KindLiteral, v.Kind())
	sec, ok := v.Seconds()
	assert.True(t, ok)
	assert.Equal(t, Seconds(0), sec)
}

func TestValue_Classification(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		kind Kind
	}{
		{"literal", Literal(5), KindLiteral},
		{"auto", Auto(), KindAuto},
		{"end", End(), KindEnd},
		{"alias", Alias("hero", FieldStart), KindAlias},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.val.Kind())
		})
	}
}

func TestValue_Seconds_OnlyForLiterals(t *testing.T) {
	_, ok := Auto().Seconds()
	assert.False(t, ok)
	_, ok = End().Seconds()
	assert.False(t, ok)
	_, ok = Alias("hero", FieldLength).Seconds()
	assert.False(t, ok)
}

func TestValue_Ref(t *testing.T) {
	ref, ok := Alias("hero", FieldStart).Ref()
	require.True(t, ok)
	assert.Equal(t, "hero", ref.Name)
	assert.Equal(t, FieldStart, ref.Field)

	_, ok = Literal(1).Ref()
	assert.False(t, ok)
}

func TestValue_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		val     Value
		encoded string
	}{
		{"literal", Literal(2.5), "2.5"},
		{"literal zero", Literal(0), "0"},
		{"auto", Auto(), `"auto"`},
		{"end", End(), `"end"`},
		{"alias start", Alias("hero", FieldStart), `"alias:hero.start"`},
		{"alias length", Alias("intro", FieldLength), `"alias:intro.length"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.val)
			require.NoError(t, err)
			assert.Equal(t, tt.encoded, string(data))

			var back Value
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.val, back)
		})
	}
}

func TestValue_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown symbol", `"forever"`},
		{"alias without field", `"alias:hero"`},
		{"alias empty name", `"alias:.start"`},
		{"alias unknown field", `"alias:hero.middle"`},
		{"object", `{"start": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			assert.Error(t, json.Unmarshal([]byte(tt.data), &v))
		})
	}
}

func TestValue_YAMLRoundTrip(t *testing.T) {
	type doc struct {
		Start  Value `yaml:"start"`
		Length Value `yaml:"length"`
	}
	in := "start: auto\nlength: alias:hero.length\n"

	var d doc
	require.NoError(t, yaml.Unmarshal([]byte(in), &d))
	assert.Equal(t, Auto(), d.Start)
	assert.Equal(t, Alias("hero", FieldLength), d.Length)

	out, err := yaml.Marshal(d)
	require.NoError(t, err)

	var back doc
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, d, back)
}

func TestValue_YAMLLiteral(t *testing.T) {
	var v Value
	require.NoError(t, yaml.Unmarshal([]byte("1.5"), &v))
	assert.Equal(t, Literal(1.5), v)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "3", Literal(3).String())
	assert.Equal(t, "auto", Auto().String())
	assert.Equal(t, "end", End().String())
	assert.Equal(t, "alias:hero.start", Alias("hero", FieldStart).String())
}
