package ghapp

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

// expirySkew is the margin before expiry. A cached token is not used at or after expires_at - 10s.
const expirySkew = 10 * time.Second

type TokenExchanger interface {
	CreateInstallationToken(ctx context.Context, installID types.GitHubAppInstallID) (*model.InstallationCredential, error)
}

// Authority owns installation token of the app and refreshes it lazily on the calling goroutine
// when it is about to expire.
type Authority struct {
	exchanger TokenExchanger
	installID types.GitHubAppInstallID
	now       func() time.Time

	mu   sync.RWMutex
	cred *model.InstallationCredential
}

var _ interfaces.Authority = (*Authority)(nil)

type AuthorityOption func(*Authority)

func WithAuthorityClock(now func() time.Time) AuthorityOption {
	return func(x *Authority) {
		x.now = now
	}
}

func NewAuthority(exchanger TokenExchanger, installID types.GitHubAppInstallID, options ...AuthorityOption) *Authority {
	x := &Authority{
		exchanger: exchanger,
		installID: installID,
		now:       time.Now,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *Authority) valid(cred *model.InstallationCredential) bool {
	return cred != nil && x.now().UTC().Before(cred.ExpiresAt.Add(-expirySkew))
}

// Header returns Authorization header value for GitHub API. Concurrent callers that find the token
// expired wait for one exchange and share its result.
func (x *Authority) Header(ctx context.Context) (string, error) {
	x.mu.RLock()
	cred := x.cred
	x.mu.RUnlock()

	if x.valid(cred) {
		return "token " + cred.Token, nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	// Another caller may have refreshed while waiting for the lock
	if x.valid(x.cred) {
		return "token " + x.cred.Token, nil
	}

	newCred, err := x.exchanger.CreateInstallationToken(ctx, x.installID)
	if err != nil {
		if !errors.Is(err, types.ErrAuth) {
			err = goerr.Wrap(types.ErrAuth, "token exchange failed", goerr.V("error", err))
		}
		return "", goerr.Wrap(err, "failed to refresh installation token", goerr.V("installID", x.installID))
	}
	if newCred == nil || newCred.Token == "" || newCred.ExpiresAt.IsZero() {
		return "", goerr.Wrap(types.ErrAuth, "installation token is incomplete", goerr.V("installID", x.installID))
	}

	x.cred = newCred
	logging.From(ctx).Info("installation token refreshed",
		slog.Any("installID", x.installID),
		slog.Time("expires_at", newCred.ExpiresAt),
	)

	return "token " + newCred.Token, nil
}
