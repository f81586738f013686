package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jrsteele09/pocket-auth-server/credentials"
	"github.com/jrsteele09/pocket-auth-server/pocket"
)

type tokenFlow interface {
	ObtainRequestToken(ctx context.Context, redirectURI string) (*pocket.RequestToken, error)
	ExchangeAndPersist(ctx context.Context, requestToken string) (*credentials.Credential, error)
}

type authorizeURLBuilder interface {
	AuthorizeURL(requestToken, redirectURI string) string
}

// login walks through both legs of the flow in a terminal: the user opens the
// printed URL, grants access, then presses Enter.
func login(ctx context.Context, flow tokenFlow, urls authorizeURLBuilder, redirectURI string, in io.Reader, out io.Writer) error {
	token, err := flow.ObtainRequestToken(ctx, redirectURI)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Authorize this application at:\n\n  %s\n\n", urls.AuthorizeURL(token.Code, redirectURI))
	fmt.Fprintln(out, "Press Enter to continue after authorization...")

	if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}

	credential, err := flow.ExchangeAndPersist(ctx, token.Code)
	if err != nil {
		if credential != nil {
			fmt.Fprintf(out, "Access token for %s was issued but not stored: %s\n", credential.Username, credential.AccessToken)
		}
		return err
	}

	fmt.Fprintf(out, "Pocket access token saved for %s.\n", credential.Username)
	return nil
}
