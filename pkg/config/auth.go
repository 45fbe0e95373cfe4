package config

import "time"

// AuthConfig cubre la validación de tokens emitidos por el IdP externo.
// El portal no emite credenciales propias; solo consume JWTs firmados
// con el secreto compartido.
type AuthConfig struct {
	JWT JWTConfig
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       []string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
			Issuer:         getEnv("JWT_ISSUER", "portal"),
			Audience:       getEnvStringSlice("JWT_AUDIENCE", []string{"portal-api"}),
		},
	}
}
