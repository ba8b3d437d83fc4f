package validation

import (
	"testing"

	domainerrors "yamdb/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupLike struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,max=150,username,notme"`
}

type catalogLike struct {
	Name  string   `json:"name" validate:"required,max=256"`
	Slug  string   `json:"slug" validate:"required,max=50,slug"`
	Score int      `json:"score" validate:"gte=1,lte=10"`
	Tags  []string `json:"genre" validate:"dive,slug"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(signupLike{Email: "a@b.co", Username: "john.doe+1@x"}))
	assert.NoError(t, v.Validate(catalogLike{Name: "Drama", Slug: "drama_2-x", Score: 10, Tags: []string{"sci-fi"}}))
}

func TestValidate_ReservedUsername(t *testing.T) {
	v := New()
	for _, name := range []string{"me", "Me", "ME"} {
		err := v.Validate(signupLike{Email: "a@b.co", Username: name})
		require.Error(t, err)

		var de *domainerrors.Error
		require.True(t, domainerrors.As(err, &de))
		assert.Equal(t, domainerrors.CodeValidation, de.Code)
		assert.Contains(t, de.Details, "username")
	}
	assert.NoError(t, v.Validate(signupLike{Email: "a@b.co", Username: "meme"}))
}

func TestValidate_FieldMessages(t *testing.T) {
	v := New()
	err := v.Validate(catalogLike{Name: "", Slug: "bad slug!", Score: 11, Tags: []string{"ok", "no way"}})
	require.Error(t, err)

	var de *domainerrors.Error
	require.True(t, domainerrors.As(err, &de))
	assert.Equal(t, "is required", de.Details["name"])
	assert.Equal(t, "may only contain letters, digits, hyphens and underscores", de.Details["slug"])
	assert.Equal(t, "must be less than or equal to 10", de.Details["score"])
	assert.Contains(t, de.Details, "genre[1]")
}

func TestValidate_BadUsernameAndEmail(t *testing.T) {
	v := New()
	err := v.Validate(signupLike{Email: "not-an-email", Username: "has space"})
	require.Error(t, err)

	var de *domainerrors.Error
	require.True(t, domainerrors.As(err, &de))
	assert.Equal(t, "must be a valid email address", de.Details["email"])
	assert.Equal(t, "may only contain letters, digits and @/./+/-/_", de.Details["username"])
}
