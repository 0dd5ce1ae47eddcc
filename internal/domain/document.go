package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Section is an ordered list of free-form records. Each record must be a
// JSON object; nothing else about its shape is enforced.
type Section []json.RawMessage

// Validate checks that every record in the section is a JSON object.
func (s Section) Validate(name string) error {
	for i, rec := range s {
		trimmed := bytes.TrimSpace(rec)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return fmt.Errorf("%w: %s[%d] must be an object", ErrValidation, name, i)
		}
	}
	return nil
}

func (s Section) orEmpty() Section {
	if s == nil {
		return Section{}
	}
	return s
}

// Sections is the application data exposed to clients: the document
// without its users.
type Sections struct {
	Notes          Section `json:"notes"`
	NoteCategories Section `json:"note_categories"`
	Software       Section `json:"software"`
	Websites       Section `json:"websites"`
}

// Validate checks every section.
func (s Sections) Validate() error {
	for _, sec := range []struct {
		name string
		data Section
	}{
		{"notes", s.Notes},
		{"note_categories", s.NoteCategories},
		{"software", s.Software},
		{"websites", s.Websites},
	} {
		if err := sec.data.Validate(sec.name); err != nil {
			return err
		}
	}
	return nil
}

// Normalize replaces missing sections with empty ones so they serialize
// as [] rather than null.
func (s *Sections) Normalize() {
	s.Notes = s.Notes.orEmpty()
	s.NoteCategories = s.NoteCategories.orEmpty()
	s.Software = s.Software.orEmpty()
	s.Websites = s.Websites.orEmpty()
}

// Document is the single persisted state blob.
type Document struct {
	Users []User `json:"users"`
	Sections
}

// NewDocument returns the default document: every key present, all empty.
func NewDocument() *Document {
	doc := &Document{}
	doc.Normalize()
	return doc
}

// Normalize repairs missing keys.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	d.Sections.Normalize()
}

// FindUser returns the user with exactly this username.
func (d *Document) FindUser(username string) (User, bool) {
	for _, u := range d.Users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}
