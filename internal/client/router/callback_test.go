package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Callback
		wantErr error
	}{
		{
			name: "full hash-routed redirect",
			raw:  "http://localhost:5173/#/oauth/callback?token=eyJ.abc.def&provider=GOOGLE",
			want: Callback{Token: "eyJ.abc.def", Provider: "GOOGLE"},
		},
		{
			name: "route only",
			raw:  "/oauth/callback?token=tok&provider=MICROSOFT",
			want: Callback{Token: "tok", Provider: "MICROSOFT"},
		},
		{
			name: "bare token",
			raw:  "  eyJ.abc.def  ",
			want: Callback{Token: "eyJ.abc.def"},
		},
		{name: "empty", raw: "   ", wantErr: ErrNoCallbackToken},
		{name: "missing token", raw: "/oauth/callback?provider=GOOGLE", wantErr: ErrNoCallbackToken},
		{name: "other route", raw: "/login?token=x", wantErr: ErrNoCallbackToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCallback(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
