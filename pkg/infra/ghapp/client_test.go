package ghapp_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/infra/ghapp"
	"github.com/m-mizutani/pytiming/pkg/utils/testutil"
)

func newTestKey(t *testing.T) (*rsa.PrivateKey, types.GitHubAppPrivateKey) {
	t.Helper()
	key := gt.R1(rsa.GenerateKey(rand.Reader, 2048)).NoError(t)
	block := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return key, types.GitHubAppPrivateKey(block)
}

func TestNew(t *testing.T) {
	_, privateKey := newTestKey(t)

	t.Run("create new GitHub App client with valid inputs", func(t *testing.T) {
		_, err := ghapp.New(types.GitHubAppID(12345), privateKey)
		gt.NoError(t, err)
	})

	t.Run("create with empty private key fails", func(t *testing.T) {
		client, err := ghapp.New(types.GitHubAppID(12345), "")
		gt.Error(t, err)
		gt.V(t, client).Equal(nil)
	})

	t.Run("create with zero app ID fails", func(t *testing.T) {
		client, err := ghapp.New(types.GitHubAppID(0), privateKey)
		gt.Error(t, err)
		gt.V(t, client).Equal(nil)
	})

	t.Run("create with invalid key fails", func(t *testing.T) {
		client, err := ghapp.New(types.GitHubAppID(12345), "invalid-key")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
		gt.V(t, client).Equal(nil)
	})
}

func TestCreateInstallationToken(t *testing.T) {
	key, privateKey := newTestKey(t)
	now := time.Now().UTC().Truncate(time.Second)
	expiresAt := now.Add(time.Hour).Truncate(time.Second)

	newClient := func(t *testing.T, handler http.HandlerFunc) *ghapp.Client {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		return gt.R1(ghapp.New(12345, privateKey,
			ghapp.WithBaseURL(gt.R1(url.Parse(srv.URL)).NoError(t)),
			ghapp.WithClock(func() time.Time { return now }),
		)).NoError(t)
	}

	t.Run("exchange signed assertion for installation token", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			gt.V(t, r.Method).Equal(http.MethodPost)
			gt.V(t, r.URL.Path).Equal("/app/installations/678/access_tokens")

			assertion, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			gt.True(t, ok)

			var claims jwt.RegisteredClaims
			_, err := jwt.ParseWithClaims(assertion, &claims, func(token *jwt.Token) (any, error) {
				gt.V(t, token.Method.Alg()).Equal("RS256")
				return &key.PublicKey, nil
			})
			gt.NoError(t, err)
			gt.V(t, claims.Issuer).Equal(strconv.Itoa(12345))
			gt.V(t, claims.IssuedAt.Time.Unix()).Equal(now.Unix())
			gt.V(t, claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)).Equal(60 * time.Second)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"token":"ghs_test","expires_at":"` + expiresAt.Format(time.RFC3339) + `"}`))
		})

		cred := gt.R1(client.CreateInstallationToken(context.Background(), 678)).NoError(t)
		gt.V(t, cred.Token).Equal("ghs_test")
		gt.True(t, cred.ExpiresAt.Equal(expiresAt))
	})

	t.Run("missing expires_at is ErrAuth", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"token":"ghs_test"}`))
		})

		_, err := client.CreateInstallationToken(context.Background(), 678)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrAuth))
	})

	t.Run("missing token is ErrAuth", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"expires_at":"` + expiresAt.Format(time.RFC3339) + `"}`))
		})

		_, err := client.CreateInstallationToken(context.Background(), 678)
		gt.True(t, errors.Is(err, types.ErrAuth))
	})

	t.Run("non-2xx response is ErrAuth", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
		})

		_, err := client.CreateInstallationToken(context.Background(), 678)
		gt.True(t, errors.Is(err, types.ErrAuth))
	})

	t.Run("works with Authority", func(t *testing.T) {
		var calls int
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"token":"ghs_auth","expires_at":"` + expiresAt.Format(time.RFC3339) + `"}`))
		})

		authority := ghapp.NewAuthority(client, 678, ghapp.WithAuthorityClock(func() time.Time { return now }))
		for i := 0; i < 3; i++ {
			hdr := gt.R1(authority.Header(context.Background())).NoError(t)
			gt.V(t, hdr).Equal("token ghs_auth")
		}
		gt.V(t, calls).Equal(1)
	})
}

func TestFindInstallationID(t *testing.T) {
	_, privateKey := newTestKey(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))

		switch r.URL.Path {
		case "/orgs/my-org/installation":
			_, _ = w.Write([]byte(`{"id":11}`))
		case "/orgs/my-user/installation":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		case "/users/my-user/installation":
			_, _ = w.Write([]byte(`{"id":22}`))
		case "/app/installations":
			_, _ = w.Write([]byte(`[{"id":33,"account":{"login":"first"}},{"id":44}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := gt.R1(ghapp.New(12345, privateKey,
		ghapp.WithBaseURL(gt.R1(url.Parse(srv.URL)).NoError(t)),
	)).NoError(t)
	ctx := context.Background()

	t.Run("organization installation", func(t *testing.T) {
		id := gt.R1(client.FindInstallationID(ctx, "my-org")).NoError(t)
		gt.V(t, id).Equal(types.GitHubAppInstallID(11))
	})

	t.Run("falls back to user installation", func(t *testing.T) {
		id := gt.R1(client.FindInstallationID(ctx, "my-user")).NoError(t)
		gt.V(t, id).Equal(types.GitHubAppInstallID(22))
	})

	t.Run("first installation without owner", func(t *testing.T) {
		id := gt.R1(client.FindInstallationID(ctx, "")).NoError(t)
		gt.V(t, id).Equal(types.GitHubAppInstallID(33))
	})
}

func TestFindInstallationID_Integration(t *testing.T) {
	appIDStr := testutil.GetEnvOrSkip(t, "TEST_GITHUB_APP_ID")
	privateKey := testutil.GetEnvOrSkip(t, "TEST_GITHUB_PRIVATE_KEY")
	owner := testutil.GetEnvOrSkip(t, "TEST_GITHUB_OWNER")

	appID := gt.R1(strconv.ParseInt(appIDStr, 10, 64)).NoError(t)
	client := gt.R1(ghapp.New(types.GitHubAppID(appID), types.GitHubAppPrivateKey(privateKey))).NoError(t)

	ctx := context.Background()
	installID := gt.R1(client.FindInstallationID(ctx, owner)).NoError(t)
	gt.V(t, installID).NotEqual(types.GitHubAppInstallID(0))

	authority := ghapp.NewAuthority(client, installID)
	hdr := gt.R1(authority.Header(ctx)).NoError(t)
	gt.True(t, strings.HasPrefix(hdr, "token "))
}
