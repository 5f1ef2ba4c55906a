package services

import (
	"errors"
	"testing"

	"github.com/fixmate/repair-backend/internal/dto"
	"github.com/golang-jwt/jwt/v5"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.IsAdmin {
		t.Fatal("freshly registered user must not be admin")
	}

	resp, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", resp.TokenType)
	}

	claims := parseClaims(t, resp.AccessToken)
	if claims["sub"] != user.ID.String() {
		t.Fatalf("sub claim = %v, want %s", claims["sub"], user.ID)
	}
	if claims["email"] != "alice@example.com" {
		t.Fatalf("email claim = %v", claims["email"])
	}
	if isAdmin, _ := claims["is_admin"].(bool); isAdmin {
		t.Fatal("is_admin claim must be false for a regular user")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	createUser(t, db, "bob", false)

	if _, err := svc.Login(&dto.LoginRequest{Username: "bob", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Username: "nobody", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	req := &dto.RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "password123"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second register: err = %v, want ErrEmailTaken", err)
	}
}

func TestAdminFlagBakedIntoToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	admin := createUser(t, db, "root", true)

	resp, err := svc.Login(&dto.LoginRequest{Username: "root", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims := parseClaims(t, resp.AccessToken)
	if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
		t.Fatal("is_admin claim must be true for an admin")
	}
	if claims["sub"] != admin.ID.String() {
		t.Fatalf("sub claim = %v, want %s", claims["sub"], admin.ID)
	}

	// Demoting the user does not touch already-issued tokens: the
	// claim stays as it was at login until the token expires.
	if err := db.Model(admin).Update("is_admin", false).Error; err != nil {
		t.Fatalf("demote: %v", err)
	}
	claims = parseClaims(t, resp.AccessToken)
	if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
		t.Fatal("claims must be static for the token lifetime")
	}
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	return claims
}
