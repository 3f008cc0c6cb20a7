package bootstrap

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	appconfig "github.com/wolfman30/medmatch/internal/config"
	"github.com/wolfman30/medmatch/internal/http/middleware"
	"github.com/wolfman30/medmatch/pkg/logging"
)

// ErrOwnerTokenSecretRequired is returned in production when no signing secret is set.
var ErrOwnerTokenSecretRequired = errors.New("bootstrap: OWNER_TOKEN_SECRET is required in production")

// BuildOwnerTokens returns the owner token issuer. Outside production an empty
// secret is replaced by a random one, so tokens do not survive a restart.
func BuildOwnerTokens(cfg *appconfig.Config, logger *logging.Logger) (*middleware.OwnerTokens, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	secret := strings.TrimSpace(cfg.OwnerTokenSecret)
	if secret == "" {
		if cfg.IsProduction() {
			return nil, ErrOwnerTokenSecretRequired
		}
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("bootstrap: generate owner secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logger.Warn("OWNER_TOKEN_SECRET not set; using an ephemeral secret")
	}
	return middleware.NewOwnerTokens(secret, cfg.OwnerTokenTTL), nil
}
