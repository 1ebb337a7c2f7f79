package session

import (
	"strings"
	"testing"

	"famboard/internal/core"
)

func TestNewNormalizesBaseURL(t *testing.T) {
	s := New(" https://api.example.com/ ", "tok", "fam-1", core.Viewer{UserID: "u1"})
	if got, want := s.APIBaseURL, "https://api.example.com"; got != want {
		t.Errorf("APIBaseURL = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr string
	}{
		{
			name:    "valid",
			session: New("https://api.example.com", "tok", "fam-1", core.Viewer{UserID: "u1"}),
		},
		{
			name:    "valid without token",
			session: New("https://api.example.com", "", "fam-1", core.Viewer{UserID: "u1"}),
		},
		{
			name:    "missing base url",
			session: New("", "tok", "fam-1", core.Viewer{UserID: "u1"}),
			wantErr: "missing API base URL",
		},
		{
			name:    "missing family and user",
			session: New("https://api.example.com", "tok", "", core.Viewer{}),
			wantErr: "missing family id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWithViewer(t *testing.T) {
	s := New("https://api.example.com", "tok", "fam-1", core.Viewer{UserID: "u1", IsOwner: true})
	s2 := s.WithViewer(core.Viewer{UserID: "u2"})
	if s2.Viewer.UserID != "u2" || s2.Viewer.IsOwner {
		t.Errorf("WithViewer viewer = %+v", s2.Viewer)
	}
	if s.Viewer.UserID != "u1" {
		t.Errorf("original session mutated: %+v", s.Viewer)
	}
}
