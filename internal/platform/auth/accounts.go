package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"

	"github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

// wholesaleClaim is the custom claim set by the back office on trade accounts.
const wholesaleClaim = "wholesale"

// ErrInvalidToken indicates that the presented ID token could not be verified.
var ErrInvalidToken = errors.New("auth: invalid id token")

// TokenVerifier is the subset of FirebaseVerifier the resolver depends on.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// AccountResolver turns Firebase ID tokens into checkout account contexts.
type AccountResolver struct {
	verifier TokenVerifier
}

// NewAccountResolver wires a resolver over the given verifier.
func NewAccountResolver(verifier TokenVerifier) (*AccountResolver, error) {
	if verifier == nil {
		return nil, errors.New("auth: token verifier is required")
	}
	return &AccountResolver{verifier: verifier}, nil
}

// Resolve verifies the ID token and derives the account context used for
// pricing decisions. An empty token yields a guest context rather than an
// error, matching the storefront where checkout is open to anonymous buyers.
func (r *AccountResolver) Resolve(ctx context.Context, idToken string) (domain.AccountContext, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return domain.AccountContext{}, nil
	}

	token, err := r.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return domain.AccountContext{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return domain.AccountContext{
		UserID:    token.UID,
		Wholesale: wholesaleFromClaims(token.Claims),
	}, nil
}

// GuestAccount returns the context assigned to an anonymous buyer, keyed by
// the contact details captured at checkout.
func GuestAccount(contact domain.GuestContact) domain.AccountContext {
	return domain.AccountContext{Guest: &contact}
}

func wholesaleFromClaims(claims map[string]any) bool {
	value, ok := claims[wholesaleClaim]
	if !ok {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}
