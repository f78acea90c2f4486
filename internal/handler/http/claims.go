package http

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// ownerFromContext pulls the tenant key out of the verified token.
func ownerFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	owner, ok := claims["owner"].(string)
	if !ok || owner == "" {
		return "", fmt.Errorf("owner claim is missing or invalid")
	}
	return owner, nil
}
