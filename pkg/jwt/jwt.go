package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ruoli applicativi trasportati nel token.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Claims include i claims standard JWT più i campi propri dell'applicazione.
// La sessione è interamente contenuta nel token: dopo il login nessuna
// chiamata al database la convalida, quindi la revoca non è possibile prima
// della scadenza (comportamento documentato del sistema).
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"` // "admin" oppure lo slug del dipendente
	Name      string `json:"name"`
	Role      string `json:"role"` // "admin" | "employee"
	LoginTime string `json:"login_time"`
}

// Generate genera un token firmato che include identità, ruolo e ora di login.
// expHours è la durata della sessione (24 ore di default nella configurazione).
func Generate(secret, userID, name, role, issuer string, expHours int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vuoto")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expHours) * time.Hour)),
		},
		UserID:    userID,
		Name:      name,
		Role:      role,
		LoginTime: now.Format(time.RFC3339),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida il token e restituisce i claims applicativi.
// Ritorna errore se il token è invalido, scaduto o con firma errata.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vuoto")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metodo di firma inatteso: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims invalidi")
	}
	return claims, nil
}
