package entities

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. Password always holds the bcrypt digest
// once HashPassword has run; Token is the currently bound session token,
// empty until the first registration or login binds one.
type User struct {
	ID       int64
	Email    string
	Password string
	Token    string
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) BindToken(token string) {
	u.Token = token
}

// NormalizeEmail lowercases and trims an address. For gmail-hosted
// addresses the dot and +tag aliases all deliver to the same inbox, so
// they are collapsed to keep the email index unique per actual account.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]

	if domain == "googlemail.com" {
		domain = "gmail.com"
	}
	if domain == "gmail.com" {
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
	}

	return local + "@" + domain
}
