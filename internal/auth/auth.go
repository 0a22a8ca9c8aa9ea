package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/go-pkgz/auth/v2"
	"github.com/go-pkgz/auth/v2/avatar"
	"github.com/go-pkgz/auth/v2/token"

	"wishloop/config"
)

// New wires the OAuth/session service: JWT-in-cookie sessions with the
// providers enabled in configuration. The auth service owns /auth/... and
// /avatar/... routes; the rest of the app only reads token.User from the
// request.
func New(cfg *config.Settings) (*auth.Service, error) {
	opts := auth.Opts{
		SecretReader: token.SecretFunc(func(string) (string, error) {
			return cfg.AuthSecret, nil
		}),
		TokenDuration:  time.Hour,
		CookieDuration: 30 * 24 * time.Hour,
		Issuer:         "wishloop",
		URL:            cfg.BaseURL,
		AvatarStore:    avatar.NewLocalFS(cfg.AvatarDir),
	}

	svc := auth.NewService(opts)

	enabled := 0
	if cfg.GithubClientID != "" {
		svc.AddProvider("github", cfg.GithubClientID, cfg.GithubClientSecret)
		enabled++
	}
	if cfg.GoogleClientID != "" {
		svc.AddProvider("google", cfg.GoogleClientID, cfg.GoogleClientSecret)
		enabled++
	}
	if cfg.DevAuth {
		// The dev provider pairs with the DevAuth server started in main.
		svc.AddProvider("dev", "", "")
		enabled++
		log.Println("[auth] dev auth provider enabled")
	}
	if enabled == 0 {
		return nil, fmt.Errorf("no auth providers configured; set GITHUB_CLIENT_ID/GOOGLE_CLIENT_ID or DEV_AUTH=1")
	}

	return svc, nil
}
