package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-api-errnotify/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeys(t *testing.T) (privPath, pubPath string) {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath = filepath.Join(dir, "private.pem")
	pubPath = filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))
	return privPath, pubPath
}

func TestSignVerify_RoundTrip(t *testing.T) {
	privPath, pubPath := writeKeys(t)
	p, err := NewProvider(&config.Config{JWTPrivateKeyPath: privPath, JWTPublicKeyPath: pubPath, JWTExpiry: time.Hour})
	require.NoError(t, err)

	token, err := p.Sign("u1", "admin")
	require.NoError(t, err)
	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestSign_VerifyOnlyProvider(t *testing.T) {
	_, pubPath := writeKeys(t)
	p, err := NewProvider(&config.Config{JWTPublicKeyPath: pubPath, JWTExpiry: time.Hour})
	require.NoError(t, err)

	_, err = p.Sign("u1", "")
	assert.ErrorIs(t, err, ErrSigningDisabled)
}

func TestVerify_Garbage(t *testing.T) {
	_, pubPath := writeKeys(t)
	p, err := NewProvider(&config.Config{JWTPublicKeyPath: pubPath})
	require.NoError(t, err)

	_, err = p.Verify("not-a-token")
	assert.Error(t, err)
}

func TestVerify_MissingUserID(t *testing.T) {
	privPath, pubPath := writeKeys(t)
	p, err := NewProvider(&config.Config{JWTPrivateKeyPath: privPath, JWTPublicKeyPath: pubPath, JWTExpiry: time.Hour})
	require.NoError(t, err)

	token, err := p.Sign("", "admin")
	require.NoError(t, err)
	_, err = p.Verify(token)
	assert.ErrorContains(t, err, "user_id")
}

func TestNewProvider_MissingPublicKey(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTPublicKeyPath: filepath.Join(t.TempDir(), "nope.pem")})
	assert.ErrorContains(t, err, "read public key")
}
