package account

import "context"

type AccountRepository interface {
	Create(ctx context.Context, newAccount Account) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	// ExistsByUsername ignores the account with excludeID when it is set.
	ExistsByUsername(ctx context.Context, username string, excludeID *string) (bool, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
