package user

import "context"

type Store interface {
	ListAll(ctx context.Context) ([]User, error)
}
