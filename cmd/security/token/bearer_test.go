package token

import (
	"errors"
	"testing"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "plain", header: "Bearer abc123", want: "abc123"},
		{name: "trims whitespace", header: "Bearer   abc123  ", want: "abc123"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
		{name: "lowercase scheme rejected", header: "bearer abc123", wantErr: true},
		{name: "no space after scheme", header: "Bearerabc123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedAuthHeader) {
					t.Fatalf("expected ErrMalformedAuthHeader, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BearerToken: %v", err)
			}
			if got != tt.want {
				t.Fatalf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
