package api_test

import (
	"testing"

	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    trickle.Event
		wantErr bool
	}{
		{name: "text", payload: `{"type":"text","content":"Sure, "}`, want: trickle.EventText{Delta: "Sure, "}},
		{name: "text keeps whitespace", payload: `{"type":"text","content":"\n\n"}`, want: trickle.EventText{Delta: "\n\n"}},
		{name: "text unicode", payload: `{"type":"text","content":"日本 🎉"}`, want: trickle.EventText{Delta: "日本 🎉"}},
		{name: "empty text", payload: `{"type":"text","content":""}`},
		{name: "text without content", payload: `{"type":"text"}`},
		{name: "done", payload: `{"type":"done"}`, want: trickle.EventDone{}},
		{name: "done with content", payload: `{"type":"done","content":"ignored"}`, want: trickle.EventDone{}},
		{name: "error", payload: `{"type":"error","content":"agent failed"}`, want: trickle.EventError{Message: "agent failed"}},
		{name: "error without content", payload: `{"type":"error"}`, want: trickle.EventError{}},
		{name: "tool progress", payload: `{"type":"tool","content":"calling list_services"}`, wantErr: true},
		{name: "missing type", payload: `{"content":"x"}`, wantErr: true},
		{name: "not json", payload: `hello`, wantErr: true},
		{name: "truncated json", payload: `{"type":"te`, wantErr: true},
		{name: "empty", payload: ``, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := api.ParseFrame(tt.payload)
			if tt.wantErr {
				require.ErrorIs(t, err, trickle.ErrMalformedFrame)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
