package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService opens and copies document URLs.
// Relative document URLs are resolved against the site the backend serves.
type ResultActionService struct {
	opener driven.URLOpener
	env    driven.Environment
	base   *url.URL
}

// NewResultActionService creates a new result action service.
// siteURL is any absolute URL on the documentation site, typically the
// backend endpoint; only its scheme and host are used.
func NewResultActionService(opener driven.URLOpener, env driven.Environment, siteURL string) *ResultActionService {
	s := &ResultActionService{opener: opener, env: env}
	if u, err := url.Parse(siteURL); err == nil && u.IsAbs() {
		s.base = &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	}
	return s
}

// OpenURL opens a document URL in the default application.
func (s *ResultActionService) OpenURL(_ context.Context, rawURL string) error {
	if s.env != nil && !s.env.Interactive() {
		return domain.ErrUnavailable
	}
	target, err := s.Absolute(rawURL)
	if err != nil {
		return err
	}
	logger.Debug("opening %s", target)
	return s.opener.Open(target)
}

// CopyURL copies a document URL to the system clipboard.
func (s *ResultActionService) CopyURL(_ context.Context, rawURL string) error {
	target, err := s.Absolute(rawURL)
	if err != nil {
		return err
	}
	return s.opener.Copy(target)
}

// Absolute resolves rawURL against the site. Only http and https targets are allowed.
func (s *ResultActionService) Absolute(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: empty url", domain.ErrInvalidInput)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !u.IsAbs() {
		if s.base == nil {
			return "", fmt.Errorf("%w: relative url %q without a site", domain.ErrInvalidInput, rawURL)
		}
		u = s.base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidInput, u.Scheme)
	}
	return u.String(), nil
}
