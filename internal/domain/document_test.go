package domain

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentHasAllKeys(t *testing.T) {
	data, err := json.Marshal(NewDocument())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"users", "notes", "note_categories", "software", "websites"} {
		v, ok := raw[key]
		if assert.True(t, ok, "missing key %s", key) {
			assert.JSONEq(t, `[]`, string(v))
		}
	}
}

func TestDocumentNormalizeRepairsMissingKeys(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"notes":[{"text":"hi"}]}`), &doc))

	doc.Normalize()

	assert.NotNil(t, doc.Users)
	assert.Len(t, doc.Notes, 1)
	assert.NotNil(t, doc.NoteCategories)
	assert.NotNil(t, doc.Software)
	assert.NotNil(t, doc.Websites)
}

func TestSectionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"objects only", `{"notes":[{"a":1},{"b":[1,2]}],"websites":[]}`, false},
		{"string record", `{"software":["not an object"]}`, true},
		{"number record", `{"note_categories":[1]}`, true},
		{"nested array record", `{"websites":[[{"a":1}]]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Sections
			require.NoError(t, json.Unmarshal([]byte(tt.body), &s))
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindUserIsCaseSensitive(t *testing.T) {
	doc := NewDocument()
	doc.Users = append(doc.Users, User{Username: "Alice", Password: "secret1", Role: RoleUser})

	_, ok := doc.FindUser("Alice")
	assert.True(t, ok)

	_, ok = doc.FindUser("alice")
	assert.False(t, ok)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrValidation, http.StatusBadRequest},
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrStorage, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.err), "StatusCode(%v)", tt.err)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}
