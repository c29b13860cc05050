package check_test

import (
	"bytes"
	"testing"

	"github.com/myrjola/finbias/cmd/cli/check"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "report only", args: []string{"--strict=false"}, wantErr: nil},
		{name: "strict", args: []string{"--strict"}, wantErr: check.ErrMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			check.Validate.SetOut(&out)
			check.Validate.SetErr(&out)
			check.Validate.SetArgs(tt.args)

			err := check.Validate.Execute()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Contains(t, out.String(), "herdMentality: configured 20 < achievable 21")
			require.Contains(t, out.String(), "anchoring: configured 15 < achievable 18")
			require.NotContains(t, out.String(), "lossAversion: configured")
		})
	}
}
