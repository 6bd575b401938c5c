package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"1", ActionSelectExport, false},
		{" 2 ", ActionSelectImport, false},
		{"3", ActionRunAnalysis, false},
		{"4", ActionExit, false},
		{"run analysis", ActionRunAnalysis, false},
		{"Select Export Data", ActionSelectExport, false},
		{"q", ActionExit, false},
		{"QUIT", ActionExit, false},
		{"0", 0, true},
		{"5", 0, true},
		{"save", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "Run Analysis", ActionRunAnalysis.String())
	assert.Equal(t, "Action(9)", Action(9).String())
}
