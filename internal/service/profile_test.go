package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/log"
)

func strptr(s string) *string { return &s }

func TestProfile_DefaultsOnFirstUse(t *testing.T) {
	svc := NewProfileService(newTestStorage(t), log.NullLogger())

	p := svc.Get()
	require.Equal(t, "Guest User", p.Name)
	require.Empty(t, p.Email)
	require.Empty(t, p.Bio)
	require.Equal(t, domain.DefaultAvatar, p.Avatar)
	require.Zero(t, p.SearchCount)
	require.WithinDuration(t, time.Now(), p.CreatedAt, time.Minute)
}

func TestProfile_PartialUpdate(t *testing.T) {
	svc := NewProfileService(newTestStorage(t), log.NullLogger())
	before := svc.Get()

	p := svc.Update(domain.ProfileUpdate{Name: strptr("Alice")})

	require.Equal(t, "Alice", p.Name)
	require.Equal(t, before.Email, p.Email)
	require.Equal(t, before.Bio, p.Bio)
	require.Equal(t, before.Avatar, p.Avatar)
	require.Equal(t, before.SearchCount, p.SearchCount)

	p = svc.Update(domain.ProfileUpdate{Email: strptr("alice@example.com"), Bio: strptr("shutterbug")})
	require.Equal(t, "Alice", p.Name, "earlier update survives")
	require.Equal(t, "alice@example.com", p.Email)
	require.Equal(t, "shutterbug", p.Bio)
}

func TestProfile_IncrementSearchCount(t *testing.T) {
	svc := NewProfileService(newTestStorage(t), log.NullLogger())

	svc.IncrementSearchCount()
	svc.IncrementSearchCount()
	svc.IncrementSearchCount()

	require.Equal(t, 3, svc.Get().SearchCount)
}

func TestProfile_ChangeAvatarAcceptsAnyGlyph(t *testing.T) {
	svc := NewProfileService(newTestStorage(t), log.NullLogger())

	svc.ChangeAvatar("🚀")
	require.Equal(t, "🚀", svc.Get().Avatar)

	// Palette membership is not enforced.
	svc.ChangeAvatar("x")
	require.Equal(t, "x", svc.Get().Avatar)
}

func TestProfile_ResetRestoresDefaults(t *testing.T) {
	svc := NewProfileService(newTestStorage(t), log.NullLogger())

	svc.Update(domain.ProfileUpdate{Name: strptr("Alice"), Email: strptr("a@b.c"), Bio: strptr("bio")})
	svc.ChangeAvatar("🎨")
	svc.IncrementSearchCount()

	p := svc.Reset()
	require.Equal(t, "Guest User", p.Name)
	require.Empty(t, p.Email)
	require.Empty(t, p.Bio)
	require.Equal(t, domain.DefaultAvatar, p.Avatar)
	require.Zero(t, p.SearchCount)
	require.WithinDuration(t, time.Now(), p.CreatedAt, time.Minute)
}

func TestProfile_PersistsAcrossServices(t *testing.T) {
	storage := newTestStorage(t)

	first := NewProfileService(storage, log.NullLogger())
	first.Update(domain.ProfileUpdate{Name: strptr("Alice")})

	second := NewProfileService(storage, log.NullLogger())
	require.Equal(t, "Alice", second.Get().Name)
}
