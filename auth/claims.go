package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"storefront-client/models"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claim URIs used by the backend's token issuer.
const (
	claimNameID = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	claimEmail  = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	claimRole   = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

// DecodeClaims parses a JWT payload without verifying the signature. The
// client never holds the signing secret; the backend stays the authority and
// rejects tampered tokens on its side.
func DecodeClaims(tokenStr string) (jwt.MapClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// TokenExpired reports whether the token's exp claim has passed. Tokens that
// cannot be parsed count as expired.
func TokenExpired(tokenStr string) bool {
	claims, err := DecodeClaims(tokenStr)
	if err != nil {
		return true
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return true
	}
	return NowTimeFunc().Unix() >= int64(exp)
}

// UserFromToken maps access token claims to a User profile. Unrecognized role
// values default to customer.
func UserFromToken(tokenStr string) (*models.User, error) {
	claims, err := DecodeClaims(tokenStr)
	if err != nil {
		return nil, err
	}

	rawRole := stringClaim(claims, claimRole)
	if rawRole == "" {
		rawRole = stringClaim(claims, "role")
	}
	if rawRole == "" {
		rawRole = stringClaim(claims, "Role")
	}
	role := models.RoleCustomer
	if strings.EqualFold(rawRole, models.RoleAdmin) {
		role = models.RoleAdmin
	}

	email := stringClaim(claims, claimEmail)
	if email == "" {
		email = stringClaim(claims, "email")
	}

	return &models.User{
		ID:          stringClaim(claims, claimNameID),
		FirstName:   stringClaim(claims, "given_name"),
		LastName:    stringClaim(claims, "family_name"),
		Email:       email,
		PhoneNumber: stringClaim(claims, "phone_number"),
		Role:        role,
		IsActive:    true,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
