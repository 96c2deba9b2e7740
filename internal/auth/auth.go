// Package auth adapts the external identity collaborator: the core never
// issues credentials, it only resolves them to actors.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bhojnalaya/ordercore/pkg/types"
)

// Resolver resolves an opaque credential to an actor.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (types.Actor, error)
}

// StaticResolver maps fixed bearer tokens to actors. It stands in for the
// real identity service in development and tests.
type StaticResolver struct {
	actors map[string]types.Actor
}

// NewStaticResolver parses a token table of the form
// "token=userID:role,token2=userID:role".
func NewStaticResolver(spec string) (*StaticResolver, error) {
	actors := make(map[string]types.Actor)
	if spec == "" {
		return &StaticResolver{actors: actors}, nil
	}
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		token, actorSpec, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid auth token entry %q", entry)
		}
		idStr, roleStr, ok := strings.Cut(actorSpec, ":")
		if !ok {
			return nil, fmt.Errorf("invalid auth token entry %q", entry)
		}
		userID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in auth token entry %q: %w", entry, err)
		}
		role := types.Role(roleStr)
		if !role.Valid() {
			return nil, fmt.Errorf("invalid role in auth token entry %q", entry)
		}
		actors[strings.TrimSpace(token)] = types.Actor{UserID: userID, Role: role}
	}
	return &StaticResolver{actors: actors}, nil
}

// Resolve returns the actor for a token, or types.ErrUnauthenticated.
func (r *StaticResolver) Resolve(_ context.Context, credential string) (types.Actor, error) {
	actor, ok := r.actors[credential]
	if !ok {
		return types.Actor{}, types.ErrUnauthenticated
	}
	return actor, nil
}
