package auth

import "context"

var _ Checker = (*Authority)(nil)

type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}
