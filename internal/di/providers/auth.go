package providers

import (
	"github.com/samber/do/v2"

	"github.com/JeelMungra28/BookValley/internal/auth"
	"github.com/JeelMungra28/BookValley/internal/config"
	"github.com/JeelMungra28/BookValley/internal/logger"
)

// AuthKey is the hex-encoded PASETO symmetric key.
type AuthKey string

// ProvideAuthKey loads the token key from config, or loads/generates one
// persisted under the data path.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keyHex := cfg.Auth.TokenKeyHex
	if keyHex == "" {
		var err error
		keyHex, err = auth.LoadOrGenerateKey(cfg.Store.DataPath)
		if err != nil {
			return "", err
		}
		cfg.Auth.TokenKeyHex = keyHex
	}

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"refresh_token_duration", cfg.Auth.RefreshTokenDuration,
	)

	return AuthKey(keyHex), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
}
