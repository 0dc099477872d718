package webhook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	valid := Sign("sk_test", body)

	testCases := []struct {
		name    string
		secret  string
		body    []byte
		header  string
		wantErr bool
	}{
		{"valid", "sk_test", body, valid, false},
		{"valid with whitespace", "sk_test", body, " " + valid + "\n", false},
		{"tampered body", "sk_test", []byte(`{"event":"transfer.success"}`), valid, true},
		{"wrong secret", "sk_live", body, valid, true},
		{"empty header", "sk_test", body, "", true},
		{"not hex", "sk_test", body, "zz", true},
		{"no secret configured", "", body, valid, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifySignature(tc.secret, tc.body, tc.header)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrSignature)
				return
			}
			require.NoError(t, err)
		})
	}
}
