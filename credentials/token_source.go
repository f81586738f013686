package credentials

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

const tokenTypeBearer = "Bearer"

type repoTokenSource struct {
	ctx  context.Context
	repo Repo
}

var _ oauth2.TokenSource = (*repoTokenSource)(nil)

// TokenSource exposes the stored credential as an oauth2.TokenSource. Each call
// reads the slot again, so a newer exchange is picked up immediately. The
// username travels in the token's extra fields under "username".
func TokenSource(ctx context.Context, repo Repo) oauth2.TokenSource {
	return &repoTokenSource{ctx: ctx, repo: repo}
}

func (s *repoTokenSource) Token() (*oauth2.Token, error) {
	c, err := s.repo.Get(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("read stored credential: %w", err)
	}
	t := &oauth2.Token{
		AccessToken: c.AccessToken,
		TokenType:   tokenTypeBearer,
	}
	return t.WithExtra(map[string]any{"username": c.Username}), nil
}
