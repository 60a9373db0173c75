package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare object",
			text: `{"skills":["Go"]}`,
			want: `{"skills":["Go"]}`,
		},
		{
			name: "markdown fenced",
			text: "```json\n{\"skills\":[\"Go\"]}\n```",
			want: `{"skills":["Go"]}`,
		},
		{
			name: "surrounding commentary",
			text: `Here is the analysis you asked for: {"skills":[]} Hope this helps!`,
			want: `{"skills":[]}`,
		},
		{
			name: "stray control characters",
			text: "\x00{\"skills\":\x01[\"Go\"]}\x02",
			want: `{"skills":["Go"]}`,
		},
		{
			name: "preserves newlines and tabs inside",
			text: "{\n\t\"skills\": []\n}",
			want: "{\n\t\"skills\": []\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestExtractJSONObjectMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "no object at all", text: "I could not process that resume."},
		{name: "only an array", text: `["Go", "Python"]`},
		{name: "truncated object", text: `{"skills": ["Go"`},
		{name: "brace order reversed", text: `} nothing {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractJSONObject(tt.text)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestValidateShape(t *testing.T) {
	shape := map[string]fieldKind{
		"skills":      kindArray,
		"overview":    kindObject,
		"impactScore": kindNumber,
	}

	err := validateShape([]byte(`{"skills":[],"overview":{},"impactScore":85,"extra":"ignored"}`), shape)
	assert.NoError(t, err)
}

func TestValidateShapeMissingKey(t *testing.T) {
	shape := map[string]fieldKind{"recommendedRoles": kindArray}

	err := validateShape([]byte(`{"roles":[]}`), shape)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestValidateShapeWrongContainer(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind fieldKind
	}{
		{name: "object where array expected", data: `{"skills":{}}`, kind: kindArray},
		{name: "string where array expected", data: `{"skills":"Go"}`, kind: kindArray},
		{name: "array where object expected", data: `{"skills":[]}`, kind: kindObject},
		{name: "string where number expected", data: `{"skills":"85"}`, kind: kindNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateShape([]byte(tt.data), map[string]fieldKind{"skills": tt.kind})
			assert.ErrorIs(t, err, ErrInvalidShape)
		})
	}
}

func TestValidateShapeTopLevelNotObject(t *testing.T) {
	err := validateShape([]byte(`[1,2,3]`), map[string]fieldKind{"skills": kindArray})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestValidateShapeNegativeNumber(t *testing.T) {
	err := validateShape([]byte(`{"impactScore":-1}`), map[string]fieldKind{"impactScore": kindNumber})
	assert.NoError(t, err, "negative numbers are still numbers; range checks belong to callers")
}
