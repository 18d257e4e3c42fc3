package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"strconv"
	"time"
)

var ErrInvalidClaims = errors.New("token claims are invalid")

type Claims struct {
	UserID uint   `json:"userID"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// 生成JWT Token
func GenerateToken(secret string, userID uint, role string, expTime time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// 驗證JWT Token並回傳UserID及Role
func VerifyToken(secret, tokenString string) (uint, string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, "", err
	}

	if !token.Valid {
		return 0, "", jwt.ErrTokenSignatureInvalid
	}

	//不接受沒有期限的Token
	if claims.ExpiresAt == nil || claims.UserID == 0 || claims.Role == "" {
		return 0, "", ErrInvalidClaims
	}

	return claims.UserID, claims.Role, nil
}
