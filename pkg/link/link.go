// Package link turns actions into URL tokens and back.
//
// Two strategies are provided. Inline embeds the whole action in the token,
// Store persists it and embeds only "{type}-{shortId}".
package link

import (
	"context"
	"strings"

	"github.com/devesh1011/EtherBlinks/models"
)

// ActionPath is the URL prefix under which action links are served.
const ActionPath = "/a/"

type Encoder interface {
	Encode(ctx context.Context, a models.Action) (string, error)
}

type Resolver interface {
	Resolve(ctx context.Context, token string) (models.Action, error)
}

type Codec interface {
	Encoder
	Resolver
}

// URL composes the shareable link for a token.
func URL(base, token string) string {
	return strings.TrimRight(base, "/") + ActionPath + token
}

// Dispatch resolves "{type}-{shortId}" tokens through Store and anything
// else through Inline, so links of both strategies stay valid.
type Dispatch struct {
	Store  Resolver
	Inline Resolver
}

func (d Dispatch) Resolve(ctx context.Context, token string) (models.Action, error) {
	for _, t := range models.ActionTypes {
		if strings.HasPrefix(token, string(t)+"-") {
			return d.Store.Resolve(ctx, token)
		}
	}
	return d.Inline.Resolve(ctx, token)
}

// TokenFromURL returns the token of a shareable link. Anything without the
// action path is taken to be a bare token.
func TokenFromURL(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, ActionPath); i >= 0 {
		s = s[i+len(ActionPath):]
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
