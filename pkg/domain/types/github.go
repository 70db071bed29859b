package types

import "log/slog"

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string

	CommitSHA  string
	RunID      int64
	PullNumber int
)

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x CommitSHA) String() string {
	return string(x)
}

// Short returns first 7 characters of the commit SHA for display
func (x CommitSHA) Short() string {
	if len(x) < 7 {
		return string(x)
	}
	return string(x[:7])
}
