package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/log"
)

func identityServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/v1/token":
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			if creds["password"] != "hunter22" {
				http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "tok-123",
				"token_type":   "bearer",
				"user": map[string]interface{}{
					"id":            "u-1",
					"email":         creds["email"],
					"created_at":    "2026-01-02T03:04:05Z",
					"user_metadata": map[string]string{"name": "Ada"},
				},
			})
		case r.URL.Path == "/auth/v1/signup":
			var body struct {
				Email string            `json:"email"`
				Data  map[string]string `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "tok-456",
				"user": map[string]interface{}{
					"id":            "u-2",
					"email":         body.Email,
					"user_metadata": body.Data,
				},
			})
		case r.URL.Path == "/auth/v1/logout":
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestAuth_SignInSuccess(t *testing.T) {
	srv := identityServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", log.NullLogger())
	session, err := c.SignIn(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)

	require.Equal(t, "tok-123", session.AccessToken)
	require.Equal(t, "Ada", session.User.Name)
	require.Equal(t, "ada@example.com", session.User.Email)
	require.Equal(t, domain.DefaultAvatar, session.User.Avatar)

	require.NotNil(t, c.Session())
}

func TestAuth_SignInRejected(t *testing.T) {
	srv := identityServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", log.NullLogger())
	_, err := c.SignIn(context.Background(), "ada@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	require.Nil(t, c.Session())
}

func TestAuth_SignUpDerivesNameFromMetadata(t *testing.T) {
	srv := identityServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", log.NullLogger())
	session, err := c.SignUp(context.Background(), "Bob", "bob@example.com", "pw123456")
	require.NoError(t, err)
	require.Equal(t, "Bob", session.User.Name)
}

func TestAuth_NameFallsBackToEmailLocalPart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-789",
			"user":         map[string]interface{}{"id": "u-3", "email": "carol@example.com"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", log.NullLogger())
	session, err := c.SignIn(context.Background(), "carol@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "carol", session.User.Name)
}

func TestAuth_SignOutClearsSessionEvenOnRemoteFailure(t *testing.T) {
	srv := identityServer(t)

	c := NewClient(srv.URL, "anon-key", log.NullLogger())
	_, err := c.SignIn(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)

	// Remote revocation fails once the server is gone; the local
	// session still clears.
	srv.Close()
	err = c.SignOut(context.Background())
	require.Error(t, err)
	require.Nil(t, c.Session())
}

func TestAuth_SubscribeDeliversStateChanges(t *testing.T) {
	srv := identityServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", log.NullLogger())

	var states []State
	unsubscribe := c.Subscribe(func(s State) { states = append(states, s) })

	// The current (anonymous) state arrives immediately.
	require.Len(t, states, 1)
	require.False(t, states[0].Authenticated)

	_, err := c.SignIn(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.Len(t, states, 2)
	require.True(t, states[1].Authenticated)
	require.Equal(t, "Ada", states[1].User.Name)

	require.NoError(t, c.SignOut(context.Background()))
	require.Len(t, states, 3)
	require.False(t, states[2].Authenticated)

	unsubscribe()
	c.SignIn(context.Background(), "ada@example.com", "hunter22")
	require.Len(t, states, 3, "no delivery after unsubscribe")
}

func TestAuth_UnreachableService(t *testing.T) {
	srv := identityServer(t)
	srv.Close()

	c := NewClient(srv.URL, "anon-key", log.NullLogger())
	_, err := c.SignIn(context.Background(), "ada@example.com", "hunter22")
	require.ErrorIs(t, err, domain.ErrServiceOffline)
}
