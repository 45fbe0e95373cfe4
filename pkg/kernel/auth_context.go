package kernel

import "strings"

// AuthContext es la identidad autenticada adjunta a cada request del staff
type AuthContext struct {
	UserID *UserID  `json:"user_id,omitempty"`
	Email  string   `json:"email,omitempty"`
	Name   string   `json:"name,omitempty"`
	Scopes []string `json:"scopes"`
}

// HasScope verifica si el contexto incluye un scope específico.
// Soporta wildcards: "*" y "dominio:*".
func (a *AuthContext) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope || s == "*" {
			return true
		}
		if domain, ok := strings.CutSuffix(s, ":*"); ok {
			if strings.HasPrefix(scope, domain+":") {
				return true
			}
		}
	}
	return false
}

// HasAnyScope verifica si el contexto incluye alguno de los scopes
func (a *AuthContext) HasAnyScope(scopes ...string) bool {
	for _, s := range scopes {
		if a.HasScope(s) {
			return true
		}
	}
	return false
}
