package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdboard/rd-tracker-backend/internal/validation"
)

func names(ms []Member) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestDirectory_Match(t *testing.T) {
	dir := NewDirectory([]Member{{ID: "1", Name: "Ann Lee"}, {ID: "2", Name: "Ben Ng"}})

	for _, in := range []string{"an", "AN", "aN"} {
		assert.Equal(t, []string{"Ann Lee"}, names(dir.Match(in)), in)
	}
	assert.Equal(t, []string{"Ann Lee", "Ben Ng"}, names(dir.Match("")))
	assert.Equal(t, []string{"Ann Lee", "Ben Ng"}, names(dir.Match("   ")))
	assert.Equal(t, []string{"Ann Lee", "Ben Ng"}, names(dir.Match("n")), "directory order is preserved")
	assert.Empty(t, dir.Match("zed"))
}

func TestDirectory_IsValidMember(t *testing.T) {
	dir := NewDirectory([]Member{{ID: "1", Name: "Ann Lee"}, {ID: "2", Name: "Ben Ng"}})

	assert.True(t, dir.IsValidMember("Ann Lee"))
	assert.True(t, dir.IsValidMember("ann lee"))
	assert.True(t, dir.IsValidMember("BEN NG"))
	assert.False(t, dir.IsValidMember("Ann"))
	assert.False(t, dir.IsValidMember(""))
	assert.False(t, dir.IsValidMember("Ann Lee "))

	m, ok := dir.Lookup("ben ng")
	require.True(t, ok)
	assert.Equal(t, "Ben Ng", m.Name)

	withBlank := NewDirectory([]Member{{ID: "3", Name: ""}})
	assert.True(t, withBlank.IsValidMember(""))
}

func TestMemberInput_Validate(t *testing.T) {
	in := MemberInput{Name: " Ann Lee ", Email: " ann@example.com ", Department: "  "}
	in.Normalize()
	require.NoError(t, in.Validate())
	assert.Equal(t, "Ann Lee", in.Name)
	assert.Nil(t, Optional(in.Department))
	assert.Equal(t, "R&D", *Optional("R&D"))

	bad := MemberInput{Name: "", Email: "not-an-email", Role: strings.Repeat("r", 101)}
	err := bad.Validate()
	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name is required", vErr.Fields["name"])
	assert.Equal(t, "Invalid email", vErr.Fields["email"])
	assert.Equal(t, "role must be at most 100 characters", vErr.Fields["role"])
}
