package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	errAuthFailed    = errors.New("authentication failed")
	errLoginCanceled = errors.New("login cancelled")
)

const (
	loginBanner = "╔══════════════════════════════════════╗\r\n" +
		"║              LUMENCHAT               ║\r\n" +
		"║    Ask the server anything it knows  ║\r\n" +
		"╚══════════════════════════════════════╝"
	loginTagline    = "Type 'ask <question>' once you are in."
	copyrightNotice = "All rights reserved, Copyright 2025 Carl Frank Otto III"
	maxNameLength   = 24
	minPasswordLen  = 6
)

func validateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("name cannot contain spaces")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxNameLength)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be blank")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// loginConn is the part of a session the login flow needs.
type loginConn interface {
	WriteString(string) error
	ReadLine() (string, error)
}

const (
	maxNameAttempts     = 5
	maxPasswordAttempts = 3
)

func ask(conn loginConn, prompt string) (string, error) {
	_ = conn.WriteString(Ansi(prompt))
	line, err := conn.ReadLine()
	if err != nil {
		return "", err
	}
	return Trim(line), nil
}

func warn(conn loginConn, msg string) {
	_ = conn.WriteString(Ansi(Style("\r\n"+msg, AnsiYellow)))
}

// login runs the interactive sign-in and registration flow. It returns the
// signed-in account and whether it carries admin rights.
func login(conn loginConn, accounts *AccountManager) (Account, bool, error) {
	_ = conn.WriteString(Ansi("\r\n" + Style(loginBanner, AnsiCyan, AnsiBold) + "\r\n"))
	_ = conn.WriteString(Ansi(Style("\r\n"+loginTagline+"\r\n", AnsiGreen)))
	_ = conn.WriteString(Ansi(Style("\r\n"+copyrightNotice+"\r\n", AnsiBlue, AnsiDim)))
	_ = conn.WriteString(Ansi(Style("\r\nLogin required.\r\n", AnsiMagenta, AnsiBold)))

	for range maxNameAttempts {
		username, err := ask(conn, "\r\nUsername: ")
		if err != nil {
			return Account{}, false, err
		}
		if err := validateUsername(username); err != nil {
			warn(conn, err.Error())
			continue
		}

		welcome := "Welcome back, "
		if accounts.Exists(username) {
			if err := authenticate(conn, accounts, username); err != nil {
				return Account{}, false, err
			}
		} else {
			created, err := register(conn, accounts, username)
			if err != nil {
				return Account{}, false, err
			}
			if !created {
				continue
			}
			welcome = "Account created. Welcome, "
		}

		// The stored spelling is used from here on, whatever case was typed.
		account, ok := accounts.Account(username)
		if !ok {
			return Account{}, false, ErrAccountNotFound
		}
		_ = conn.WriteString(Ansi(Style("\r\n"+welcome+account.Name+"!", AnsiGreen)))
		return account, accounts.IsAdmin(account.Name), nil
	}
	_ = conn.WriteString(Ansi("\r\nLogin cancelled.\r\n"))
	return Account{}, false, errLoginCanceled
}

func authenticate(conn loginConn, accounts *AccountManager, username string) error {
	for range maxPasswordAttempts {
		password, err := ask(conn, "\r\nPassword: ")
		if err != nil {
			return err
		}
		if accounts.Authenticate(username, password) {
			return nil
		}
		warn(conn, "Incorrect password.")
	}
	_ = conn.WriteString(Ansi("\r\nToo many failed attempts.\r\n"))
	return errAuthFailed
}

// register prompts until a valid password is set. It reports false when the
// name was taken in the meantime so the caller can ask for another.
func register(conn loginConn, accounts *AccountManager, username string) (bool, error) {
	for {
		password, err := ask(conn, "\r\nSet a password: ")
		if err != nil {
			return false, err
		}
		if err := validatePassword(password); err != nil {
			warn(conn, err.Error())
			continue
		}
		if err := accounts.Register(username, password); err != nil {
			warn(conn, err.Error())
			return false, nil
		}
		return true, nil
	}
}
