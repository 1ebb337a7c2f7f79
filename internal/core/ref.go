// Package core defines the raw records famboard receives from the family
// API and the normalization applied at that boundary.
//
// Identity fields (category, createdBy, assignedTo, user) arrive either as a
// bare id string or as an embedded object carrying _id/id plus display
// fields. Ref is the single normalized form; nothing past the API boundary
// ever sees the duck shape again.
package core

import (
	"encoding/json"
	"strings"
)

// Ref is a normalized reference to another entity: the id plus whatever
// display fields the API embedded alongside it.
type Ref struct {
	ID    string
	Name  string
	Icon  string
	Email string
}

// refObject mirrors the embedded-object wire shape.
type refObject struct {
	MongoID  string `json:"_id"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Icon     string `json:"icon"`
	Email    string `json:"email"`
}

// UnmarshalJSON accepts a bare id string, an embedded object, or null.
// Anything else decodes to the zero Ref rather than failing the record.
func (r *Ref) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*r = Ref{}
		return nil
	}

	if s[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}

	var obj refObject
	if err := json.Unmarshal(data, &obj); err != nil {
		*r = Ref{}
		return nil
	}
	id := obj.MongoID
	if id == "" {
		id = obj.ID
	}
	name := obj.Name
	if name == "" {
		name = obj.Username
	}
	*r = Ref{ID: id, Name: name, Icon: obj.Icon, Email: obj.Email}
	return nil
}

// MarshalJSON writes the embedded-object shape so round-tripped records stay
// self-describing.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(refObject{MongoID: r.ID, Name: r.Name, Icon: r.Icon, Email: r.Email})
}

// IsZero reports whether the ref carries no id.
func (r Ref) IsZero() bool {
	return r.ID == ""
}
