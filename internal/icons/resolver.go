// Package icons resolves condition icon ids to renderable URLs, preferring a
// configured icon directory and falling back to a vendor icon set.
package icons

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// probeExtensions are tried in order against the custom base URL.
var probeExtensions = []string{".svg", ".png"}

// Resolver resolves icon ids against an optional custom icon directory.
// The first extension found to exist is cached together with the base URL it
// was probed against; later calls for that base URL make no requests.
// It is safe for concurrent use.
type Resolver struct {
	client *http.Client
	logger *slog.Logger

	mu         sync.Mutex
	cachedBase string
	cachedExt  string
}

func NewResolver(client *http.Client, logger *slog.Logger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client: client,
		logger: logger.With("component", "icon-resolver"),
	}
}

// ResolveIconURL returns baseURL/iconID.<ext> when the custom directory serves
// the icon, and the vendor fallback URL otherwise. It never fails.
func (r *Resolver) ResolveIconURL(ctx context.Context, baseURL, iconID string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !validBaseURL(base) {
		return FallbackURL(iconID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cachedExt != "" && r.cachedBase == base {
		return base + "/" + iconID + r.cachedExt
	}

	for _, ext := range probeExtensions {
		candidate := base + "/" + iconID + ext
		if r.exists(ctx, candidate) {
			r.cachedBase, r.cachedExt = base, ext
			r.logger.Debug("icon extension resolved", "base", base, "ext", ext)
			return candidate
		}
	}

	return FallbackURL(iconID)
}

// exists issues a HEAD request and reports a 2xx answer.
func (r *Resolver) exists(ctx context.Context, target string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("icon probe failed", "url", target, "error", err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func validBaseURL(base string) bool {
	if base == "" {
		return false
	}
	if err := validate.Var(base, "url"); err != nil {
		return false
	}
	u, err := url.Parse(base)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
