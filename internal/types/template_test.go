package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateID(t *testing.T) {
	tests := []struct {
		input    string
		expected TemplateID
		wantErr  bool
	}{
		{input: "", expected: TemplateModern},
		{input: "modern", expected: TemplateModern},
		{input: " Elegant ", expected: TemplateElegant},
		{input: "EXECUTIVE", expected: TemplateExecutive},
		{input: "fancy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseTemplateID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown template")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestAllTemplates(t *testing.T) {
	all := AllTemplates()

	assert.Len(t, all, 6)
	assert.Equal(t, DefaultTemplate, all[0])
}
