// Package passbolt backs the match picker with a Passbolt server,
// exposing decrypted resources as auto-type candidates.
package passbolt

import (
	"context"
	"fmt"

	"github.com/keepick/keepick/util"
	"github.com/passbolt/go-passbolt/api"
	"github.com/passbolt/go-passbolt/helper"
	"github.com/spf13/viper"
)

// Client wraps the passbolt API client for the picker's lifetime.
type Client struct {
	api    *api.Client
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient builds and logs in the API client from viper configuration
// (serverAddress, userPrivateKey, userPassword, optional noninteractive
// TOTP MFA). The picker has no login screen, so interactive MFA is not
// supported here.
func NewClient() (*Client, error) {
	serverAddress := viper.GetString("serverAddress")
	if serverAddress == "" {
		return nil, fmt.Errorf("serverAddress is not defined")
	}

	userPrivateKey := viper.GetString("userPrivateKey")
	if userPrivateKey == "" {
		return nil, fmt.Errorf("userPrivateKey is not defined")
	}

	// Read the passphrase before bubbletea takes over the terminal.
	userPassword := viper.GetString("userPassword")
	if userPassword == "" {
		var err error
		userPassword, err = util.ReadPassword("Enter Passbolt passphrase:")
		if err != nil {
			fmt.Println()
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}
		fmt.Println()
	}

	httpClient, err := util.GetHttpClient()
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(httpClient, "", serverAddress, userPrivateKey, userPassword)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	client.Debug = viper.GetBool("debug")

	ctx, cancel := util.GetContext()

	// Server verification
	token := viper.GetString("serverVerifyToken")
	encToken := viper.GetString("serverVerifyEncToken")
	if token != "" {
		if err := client.VerifyServer(ctx, token, encToken); err != nil {
			cancel()
			return nil, fmt.Errorf("verifying server: %w", err)
		}
	}

	if totpToken := viper.GetString("mfaTotpToken"); totpToken != "" {
		helper.AddMFACallbackTOTP(client,
			viper.GetUint("mfaRetrys"),
			viper.GetDuration("mfaDelay"),
			viper.GetDuration("mfaTotpOffset"),
			totpToken)
	}

	if err := client.Login(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return &Client{api: client, ctx: ctx, cancel: cancel}, nil
}

// Close logs out and releases the client.
func (c *Client) Close() {
	_ = c.api.Logout(c.ctx)
	c.cancel()
}
