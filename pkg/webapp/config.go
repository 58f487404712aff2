// Package webapp is the session-gate collaborator around the editor: a small
// authenticated shell (login, signed session cookie, admin user management,
// PWA manifest). It tells the editor whether an authenticated identity is
// present and never receives pixel data.
package webapp

import (
	"crypto/sha256"
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config is the web shell configuration, read from the environment with an
// optional .env file.
type Config struct {
	Addr          string
	DBPath        string
	Secret        []byte // 32-byte HMAC key for session tokens
	CookieDomain  string
	SecureCookies bool
	AdminPassword string
	UserPassword  string
}

// LoadConfig reads configuration from the environment. A .env file is loaded
// first when present; missing files are fine.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	secretInput := os.Getenv("APP_SECRET_KEY")
	if secretInput == "" {
		return Config{}, errors.New("APP_SECRET_KEY is required")
	}
	// Derive a fixed-length HMAC key from whatever the operator supplied.
	sum := sha256.Sum256([]byte(secretInput))

	return Config{
		Addr:          ":" + env("PORT", "8000"),
		DBPath:        env("APP_DB_PATH", "auth.db"),
		Secret:        sum[:],
		CookieDomain:  os.Getenv("COOKIE_DOMAIN"),
		SecureCookies: os.Getenv("SECURE_COOKIES") == "1",
		AdminPassword: env("DEFAULT_ADMIN_PASSWORD", "admin123"),
		UserPassword:  env("DEFAULT_USER_PASSWORD", "user123"),
	}, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
