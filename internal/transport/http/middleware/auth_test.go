package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-api-errnotify/internal/config"
	jwtinfra "github.com/go-api-errnotify/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

// fakeVerifier accepts exactly one token.
type fakeVerifier struct {
	token  string
	claims *jwtinfra.Claims
}

func (f fakeVerifier) Verify(token string) (*jwtinfra.Claims, error) {
	if token != f.token {
		return nil, errors.New("rejected")
	}
	return f.claims, nil
}

func TestAuth_Headers(t *testing.T) {
	v := fakeVerifier{token: "good", claims: &jwtinfra.Claims{UserID: "u1", Role: "user"}}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"basic scheme", "Basic dTE6cHc=", http.StatusUnauthorized},
		{"scheme only", "Bearer", http.StatusUnauthorized},
		{"blank token", "Bearer   ", http.StatusUnauthorized},
		{"rejected token", "Bearer forged", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
		{"padded", "  Bearer  good ", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestClaimsFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ClaimsFromContext(req.Context())
	assert.False(t, ok)
}

// writeKeyPair stores a fresh RSA key pair as PEM files under t.TempDir().
func writeKeyPair(t *testing.T) (privPath, pubPath string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath = filepath.Join(dir, "private.pem")
	pubPath = filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(pubPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub}), 0o600))
	return privPath, pubPath
}

func TestAuth_WithProvider_InjectsClaims(t *testing.T) {
	privPath, pubPath := writeKeyPair(t)
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTExpiry:         time.Hour,
	})
	require.NoError(t, err)

	signed, err := p.Sign("u1", "admin")
	require.NoError(t, err)

	var got *jwtinfra.Claims
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	Auth(p)(capture).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "admin", got.Role)
}

func TestAuth_WithProvider_ForeignKeyRejected(t *testing.T) {
	signerPriv, signerPub := writeKeyPair(t)
	_, otherPub := writeKeyPair(t)

	signer, err := jwtinfra.NewProvider(&config.Config{JWTPrivateKeyPath: signerPriv, JWTPublicKeyPath: signerPub, JWTExpiry: time.Hour})
	require.NoError(t, err)
	verifier, err := jwtinfra.NewProvider(&config.Config{JWTPublicKeyPath: otherPub})
	require.NoError(t, err)

	signed, err := signer.Sign("u1", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	Auth(verifier)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
