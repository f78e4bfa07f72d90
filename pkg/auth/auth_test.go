package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/dash/pkg/kvstore"
)

func TestSignUpSetsSession(t *testing.T) {
	r := NewRegistry(kvstore.NewMemory())

	user, err := r.SignUp("ada@example.com", "s3cret", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.Name)

	current := r.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, user, *current)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	r := NewRegistry(kvstore.NewMemory())

	_, err := r.SignUp("ada@example.com", "s3cret", "Ada")
	require.NoError(t, err)

	_, err = r.SignUp("ada@example.com", "other", "Imposter")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogIn(t *testing.T) {
	store := kvstore.NewMemory()
	r := NewRegistry(store)

	created, err := r.SignUp("ada@example.com", "s3cret", "Ada")
	require.NoError(t, err)
	require.NoError(t, r.LogOut())
	require.Nil(t, r.CurrentUser())

	user, err := r.LogIn("ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created, user)

	current := r.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, created.ID, current.ID)
}

func TestLogInFailureLeavesSessionUntouched(t *testing.T) {
	r := NewRegistry(kvstore.NewMemory())

	ada, err := r.SignUp("ada@example.com", "s3cret", "Ada")
	require.NoError(t, err)

	_, err = r.LogIn("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = r.LogIn("nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email reads the same as a wrong password")

	current := r.CurrentUser()
	require.NotNil(t, current, "failed login must not clear the prior session")
	assert.Equal(t, ada.ID, current.ID)
}

func TestPasswordNeverStoredInClearOrInSession(t *testing.T) {
	store := kvstore.NewMemory()
	r := NewRegistry(store)

	_, err := r.SignUp("ada@example.com", "s3cret-passphrase", "Ada")
	require.NoError(t, err)

	users, err := store.Get("dashboard_users")
	require.NoError(t, err)
	assert.NotContains(t, users, "s3cret-passphrase")
	assert.Contains(t, users, "passwordHash")

	session, err := store.Get("dashboard_current_user")
	require.NoError(t, err)
	assert.NotContains(t, session, "passwordHash")
	assert.False(t, strings.Contains(session, "s3cret"), "session record carries no credential material")
}

func TestMalformedRecordsFallBack(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Set("dashboard_users", "{not json"))
	require.NoError(t, store.Set("dashboard_current_user", "{not json"))

	r := NewRegistry(store)
	assert.Nil(t, r.CurrentUser())

	// A corrupt user list reads as empty, so signup succeeds.
	_, err := r.SignUp("ada@example.com", "s3cret", "Ada")
	assert.NoError(t, err)
}
