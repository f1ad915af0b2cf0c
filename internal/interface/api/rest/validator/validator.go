package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"docmanager-api/internal/interface/api/rest/dto/auth"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minNameLen     = 2
	maxNameLen     = 100
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt safe
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	validateUsername(errs, r.Username)

	// name (required + length)
	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs["name"] = "name is required"
	} else if l := utf8.RuneCountInString(name); l < minNameLen || l > maxNameLen {
		errs["name"] = "name length must be 2–100 characters"
	}

	validatePassword(errs, "password", r.Password)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateForgotPassword(r auth.ForgotPasswordRequest) map[string]string {
	errs := make(map[string]string)

	validateUsername(errs, r.Username)
	validatePassword(errs, "newPassword", r.NewPassword)
	if r.ConfirmPassword != r.NewPassword {
		errs["confirmPassword"] = "password and confirmation do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateUsername(errs map[string]string, username string) {
	u := strings.TrimSpace(username)
	switch {
	case u == "":
		errs["username"] = "username is required"
	case utf8.RuneCountInString(u) < minUsernameLen || utf8.RuneCountInString(u) > maxUsernameLen:
		errs["username"] = "username length must be 3–64 characters"
	case u != username:
		errs["username"] = "username must not start or end with spaces"
	}
}

// password is not trimmed, only its length is checked
func validatePassword(errs map[string]string, field, password string) {
	if password == "" {
		errs[field] = "password is required"
	} else if l := utf8.RuneCountInString(password); l < minPasswordLen {
		errs[field] = "password must be at least 6 characters"
	} else if len(password) > maxPasswordLen {
		errs[field] = "password must be at most 72 bytes"
	}
}
