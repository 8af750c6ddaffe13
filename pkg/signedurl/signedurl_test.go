package signedurl

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", "https://example.test", time.Hour)

	token, err := issuer.Sign("resume")
	require.NoError(t, err)

	resource, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "resume", resource)
}

func TestResourceLinkShape(t *testing.T) {
	issuer := NewIssuer("test-secret", "https://example.test", time.Hour)

	link, err := issuer.ResourceLink("resume")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://example.test/api/v1/resources/download?token="))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", "https://example.test", -time.Minute)
	// NewIssuer floors non-positive TTLs, so sign with a hand-built short one.
	short := &Issuer{secret: []byte("test-secret"), baseURL: "https://example.test", ttl: -time.Minute}

	token, err := short.Sign("resume")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := NewIssuer("test-secret", "https://example.test", time.Hour)
	other := NewIssuer("other-secret", "https://example.test", time.Hour)

	token, err := other.Sign("resume")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", "https://example.test", time.Hour)
	_, err := issuer.Verify("not-a-token")
	assert.Error(t, err)
}
