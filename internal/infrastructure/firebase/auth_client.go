package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// IdentityClaims is the subset of identity-provider claims the backend keeps.
type IdentityClaims struct {
	UID      string
	Name     string
	Email    string
	Phone    string
	Avatar   string
	Provider string
}

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

// VerifyIDToken validates a Firebase ID token and extracts profile claims.
func (f *FirebaseAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*IdentityClaims, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	claims := &IdentityClaims{
		UID:      token.UID,
		Name:     stringClaim(token.Claims, "name"),
		Email:    stringClaim(token.Claims, "email"),
		Phone:    stringClaim(token.Claims, "phone_number"),
		Avatar:   stringClaim(token.Claims, "picture"),
		Provider: "unknown",
	}

	if fb, ok := token.Claims["firebase"].(map[string]interface{}); ok {
		if provider, ok := fb["sign_in_provider"].(string); ok {
			claims.Provider = provider
		}
	}

	return claims, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
