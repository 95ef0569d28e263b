package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
	}{
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"YAML", FormatYAML},
		{"json", FormatJSON},
		{"dir", FormatDir},
		{"directory", FormatDir},
		{"", FormatYAML},
		{"bogus", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOutputFormat(tt.input))
		})
	}
}

func TestOutputFormatIsValid(t *testing.T) {
	assert.True(t, FormatYAML.IsValid())
	assert.True(t, FormatJSON.IsValid())
	assert.True(t, FormatDir.IsValid())
	assert.False(t, OutputFormat("bogus").IsValid())
}

func TestValidFormats(t *testing.T) {
	assert.Equal(t, []string{"yaml", "json", "dir"}, ValidFormats())
}
