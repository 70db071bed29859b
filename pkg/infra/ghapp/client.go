package ghapp

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

// assertionLifetime is validity of signed app assertion used for token exchange
const assertionLifetime = 60 * time.Second

type Client struct {
	appID      types.GitHubAppID
	pem        types.GitHubAppPrivateKey
	baseURL    *url.URL
	httpClient *http.Client
	now        func() time.Time
}

type Option func(*Client)

// WithBaseURL changes GitHub API endpoint, e.g. GitHub Enterprise Server or test server
func WithBaseURL(baseURL *url.URL) Option {
	return func(x *Client) {
		x.baseURL = baseURL
	}
}

// WithHTTPClient sets HTTP client for token exchange. Timeout of the client is also applied to it.
func WithHTTPClient(client *http.Client) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

func WithClock(now func() time.Time) Option {
	return func(x *Client) {
		x.now = now
	}
}

func New(appID types.GitHubAppID, pem types.GitHubAppPrivateKey, options ...Option) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}
	if _, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pem)); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid private key", goerr.V("error", err))
	}

	client := &Client{
		appID:      appID,
		pem:        pem,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (x *Client) newGitHubClient(httpClient *http.Client) *github.Client {
	client := github.NewClient(httpClient)
	if x.baseURL != nil {
		base := *x.baseURL
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		client.BaseURL = &base
	}
	return client
}

func (x *Client) buildAppClient() (*github.Client, error) {
	tr := http.DefaultTransport
	if x.httpClient.Transport != nil {
		tr = x.httpClient.Transport
	}
	itr, err := ghinstallation.NewAppsTransport(tr, int64(x.appID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create app transport")
	}
	if x.baseURL != nil {
		itr.BaseURL = strings.TrimSuffix(x.baseURL.String(), "/")
	}

	return x.newGitHubClient(&http.Client{Transport: itr, Timeout: x.httpClient.Timeout}), nil
}

// FindInstallationID resolves installation of the app. If owner is given, the installation for
// the organization or user is looked up. Otherwise the first installation of the app is used.
func (x *Client) FindInstallationID(ctx context.Context, owner string) (types.GitHubAppInstallID, error) {
	if owner != "" {
		return x.GetInstallationIDForOwner(ctx, owner)
	}
	return x.GetFirstInstallationID(ctx)
}

func (x *Client) GetFirstInstallationID(ctx context.Context) (types.GitHubAppInstallID, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return 0, err
	}

	installations, _, err := client.Apps.ListInstallations(ctx, &github.ListOptions{PerPage: 1})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list installations", goerr.V("appID", x.appID))
	}
	if len(installations) == 0 {
		return 0, goerr.Wrap(types.ErrInvalidOption, "app has no installation", goerr.V("appID", x.appID))
	}

	installID := types.GitHubAppInstallID(installations[0].GetID())
	logging.From(ctx).Info("Found first installation",
		slog.Any("installID", installID),
		slog.String("account", installations[0].GetAccount().GetLogin()),
	)

	return installID, nil
}

func (x *Client) GetInstallationIDForOwner(ctx context.Context, owner string) (types.GitHubAppInstallID, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return 0, err
	}

	// Try organization installation first
	installation, resp, orgErr := client.Apps.FindOrganizationInstallation(ctx, owner)
	if orgErr == nil && installation != nil {
		logging.From(ctx).Info("Found organization installation",
			slog.String("owner", owner),
			slog.Int64("installID", installation.GetID()),
		)
		return types.GitHubAppInstallID(installation.GetID()), nil
	}

	if resp != nil && resp.StatusCode == http.StatusNotFound {
		installation, _, userErr := client.Apps.FindUserInstallation(ctx, owner)
		if userErr != nil {
			return 0, goerr.Wrap(userErr, "failed to find user installation for owner",
				goerr.V("owner", owner),
			)
		}

		if installation != nil {
			logging.From(ctx).Info("Found user installation",
				slog.String("owner", owner),
				slog.Int64("installID", installation.GetID()),
			)
			return types.GitHubAppInstallID(installation.GetID()), nil
		}
	}

	if orgErr != nil {
		return 0, goerr.Wrap(orgErr, "failed to find organization installation for owner",
			goerr.V("owner", owner),
		)
	}

	return 0, goerr.Wrap(types.ErrInvalidOption, "installation not found for owner",
		goerr.V("owner", owner),
	)
}

// signAssertion builds RS256 JWT of the app. It is valid for 60 seconds from now.
func (x *Client) signAssertion(now time.Time) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(x.pem))
	if err != nil {
		return "", goerr.Wrap(types.ErrAuth, "failed to parse private key", goerr.V("error", err))
	}

	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
		Issuer:    strconv.FormatInt(int64(x.appID), 10),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", goerr.Wrap(types.ErrAuth, "failed to sign app assertion", goerr.V("error", err))
	}
	return signed, nil
}

// CreateInstallationToken exchanges a signed app assertion for an installation token. A failed
// exchange or a payload without token or expires_at is ErrAuth.
func (x *Client) CreateInstallationToken(ctx context.Context, installID types.GitHubAppInstallID) (*model.InstallationCredential, error) {
	assertion, err := x.signAssertion(x.now().UTC())
	if err != nil {
		return nil, err
	}

	base := http.DefaultTransport
	if x.httpClient.Transport != nil {
		base = x.httpClient.Transport
	}
	client := x.newGitHubClient(&http.Client{
		Transport: &bearerTransport{base: base, token: assertion},
		Timeout:   x.httpClient.Timeout,
	})

	token, _, err := client.Apps.CreateInstallationToken(ctx, int64(installID), nil)
	if err != nil {
		return nil, goerr.Wrap(types.ErrAuth, "failed to create installation token",
			goerr.V("installID", installID),
			goerr.V("error", err),
		)
	}

	if token.GetToken() == "" || token.ExpiresAt == nil {
		return nil, goerr.Wrap(types.ErrAuth, "installation token response is incomplete",
			goerr.V("installID", installID),
			goerr.V("has_token", token.GetToken() != ""),
			goerr.V("has_expires_at", token.ExpiresAt != nil),
		)
	}

	return &model.InstallationCredential{
		Token:     token.GetToken(),
		ExpiresAt: token.GetExpiresAt().Time.UTC(),
	}, nil
}

type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func (x *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+x.token)
	return x.base.RoundTrip(r)
}
