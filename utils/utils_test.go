package utils

import (
	"context"
	"crypto/tls"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher()
	ctx := context.Background()

	hash, err := h.Hash(ctx, "abc123")
	require.NoError(t, err)
	assert.NotEqual(t, "abc123", hash)

	ok, err := h.Verify(ctx, hash, "abc123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_MalformedHashIsMismatch(t *testing.T) {
	ok, err := NewPasswordHasher().Verify(context.Background(), "not-a-hash", "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_CancelledContext(t *testing.T) {
	h := NewPasswordHasher()
	require.NoError(t, h.slots.Acquire(context.Background(), h.capacity))
	defer h.slots.Release(h.capacity)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "abc123")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(20)
	require.NoError(t, err)
	b, err := RandomToken(20)
	require.NoError(t, err)

	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}

func TestSessionToken_RoundTrip(t *testing.T) {
	signed, err := SignSessionID("s3cret", "session-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	id, err := ParseSessionID("s3cret", signed)
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)

	_, err = ParseSessionID("other", signed)
	assert.Error(t, err)
}

func TestSessionToken_Expired(t *testing.T) {
	signed, err := SignSessionID("s3cret", "session-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseSessionID("s3cret", signed)
	assert.Error(t, err)
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		host    string
		tls     bool
		want    string
	}{
		{name: "plain", host: "shop.local:3000", want: "http://shop.local:3000"},
		{name: "tls connection", host: "shop.local", tls: true, want: "https://shop.local"},
		{name: "forwarded proto", host: "lalune.vn", headers: map[string]string{"X-Forwarded-Proto": "https"}, want: "https://lalune.vn"},
		{name: "forwarded list", host: "lalune.vn", headers: map[string]string{"X-Forwarded-Proto": "https, http"}, want: "https://lalune.vn"},
		{name: "forwarded host ignored", host: "lalune.vn", headers: map[string]string{"X-Forwarded-Proto": "https", "X-Forwarded-Host": "evil.example"}, want: "https://lalune.vn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/forgot-password", nil)
			r.Host = tt.host
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if tt.tls {
				r.TLS = &tls.ConnectionState{}
			}
			assert.Equal(t, tt.want, BaseURL(r))
		})
	}
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(&multipart.FileHeader{Filename: "cake.PNG", Size: 10}, 100))
	assert.ErrorIs(t, ValidateImage(&multipart.FileHeader{Filename: "cake.png", Size: 101}, 100), ErrFileTooLarge)
	assert.ErrorIs(t, ValidateImage(&multipart.FileHeader{Filename: "cake.exe", Size: 10}, 100), ErrInvalidImageType)
}

func TestImageFilename(t *testing.T) {
	name := ImageFilename("red velvet.JPG")
	assert.True(t, strings.HasSuffix(name, "_red_velvet.jpg"), name)
}
