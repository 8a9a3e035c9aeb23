package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// purposeReset marca tokens de recuperação de senha, que não servem como token de acesso.
const purposeReset = "password_reset"

// Claims inclui os claims padrão JWT mais os campos próprios da aplicação.
// Role permite que o middleware RBAC decida sem consultar o banco.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"` // vazio para administradores da plataforma
	Role      string `json:"role"`       // "admin" | "gerente" | "atendente"
	Purpose   string `json:"purpose,omitempty"`
}

// Generate gera um token de acesso assinado com userID, companyID e role.
func Generate(secret, userID, companyID, role, issuer string, expHours int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
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
		CompanyID: companyID,
		Role:      role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token de acesso e devolve userID, companyID e role.
// Retorna erro se o token é inválido, expirado, de recuperação de senha ou com assinatura incorreta.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	claims, err := parseClaims(secret, tokenString)
	if err != nil {
		return "", "", "", err
	}
	if claims.Purpose != "" {
		return "", "", "", fmt.Errorf("jwt: token não é de acesso")
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}

// GenerateReset gera um token de uso único para redefinição de senha (TTL curto).
func GenerateReset(secret, userID, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  userID,
		Purpose: purposeReset,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseReset valida um token de redefinição de senha e devolve o userID.
// Tokens de acesso são rejeitados aqui para que não sirvam como link de redefinição.
func ParseReset(secret, tokenString string) (string, error) {
	claims, err := parseClaims(secret, tokenString)
	if err != nil {
		return "", err
	}
	if claims.Purpose != purposeReset {
		return "", fmt.Errorf("jwt: token não é de redefinição de senha")
	}
	return claims.UserID, nil
}

func parseClaims(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
