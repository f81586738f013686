package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jrsteele09/pocket-auth-server/credentials"
	"golang.org/x/oauth2"
)

const visibleTokenChars = 4

// showToken prints who the stored credential belongs to without revealing the
// access token itself.
func showToken(src oauth2.TokenSource, out io.Writer) error {
	token, err := src.Token()
	if errors.Is(err, credentials.ErrNotFound) {
		fmt.Fprintln(out, "No Pocket access token stored. Run login first.")
		return err
	}
	if err != nil {
		return err
	}

	username, _ := token.Extra("username").(string)
	status := "valid"
	if !token.Valid() {
		status = "invalid"
	}
	fmt.Fprintf(out, "Pocket access token for %s: %s %s (%s)\n", username, token.Type(), maskToken(token.AccessToken), status)
	return nil
}

func maskToken(token string) string {
	if len(token) <= visibleTokenChars {
		return "****"
	}
	return "****" + token[len(token)-visibleTokenChars:]
}
