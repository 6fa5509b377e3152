// Package util carries small helpers shared by the commands.
package util

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

// ReadPassword prompts on stderr and reads a password from the
// terminal without echo.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("reading from terminal: %w", err)
	}
	return string(raw), nil
}

// GetContext returns a context honoring the configured timeout, if any.
func GetContext() (context.Context, context.CancelFunc) {
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// GetHttpClient builds the http client used for server-backed
// databases.
func GetHttpClient() (*http.Client, error) {
	return &http.Client{}, nil
}
