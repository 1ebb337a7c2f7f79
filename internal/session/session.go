// Package session holds the explicit per-process session value: bearer
// token, selected family, and viewer identity. It is constructed once at
// startup and threaded into the data-fetch and aggregation layers, replacing
// ad hoc reads of persisted client state.
package session

import (
	"errors"
	"fmt"
	"strings"

	"famboard/internal/core"
)

// Session identifies who is talking to which family on the remote API.
type Session struct {
	APIBaseURL string
	Token      string
	FamilyID   string
	Viewer     core.Viewer
}

var (
	ErrMissingBaseURL  = errors.New("missing API base URL")
	ErrMissingFamilyID = errors.New("missing family id")
	ErrMissingUserID   = errors.New("missing user id")
)

// New builds a session, normalizing the base URL.
func New(baseURL, token, familyID string, viewer core.Viewer) Session {
	return Session{
		APIBaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Token:      strings.TrimSpace(token),
		FamilyID:   strings.TrimSpace(familyID),
		Viewer:     viewer,
	}
}

// Validate checks that the session can address the remote API.
// The token may be empty for open dev servers; everything else is required.
func (s Session) Validate() error {
	var problems []string
	if s.APIBaseURL == "" {
		problems = append(problems, ErrMissingBaseURL.Error())
	}
	if s.FamilyID == "" {
		problems = append(problems, ErrMissingFamilyID.Error())
	}
	if s.Viewer.UserID == "" {
		problems = append(problems, ErrMissingUserID.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid session: %s", strings.Join(problems, "; "))
	}
	return nil
}

// WithViewer returns a copy of the session for a different viewer. Used by
// screens that re-evaluate permissions after a membership change.
func (s Session) WithViewer(v core.Viewer) Session {
	s.Viewer = v
	return s
}
