package memory

import (
	"context"

	"github.com/SkShizan/clg-project/internal/domain/account"
)

type accountRepository struct {
	s *Store
}

func NewAccountRepository(s *Store) account.AccountRepository {
	return &accountRepository{s: s}
}

func (r *accountRepository) usernameTaken(username, excludeID string) bool {
	for id, a := range r.s.data.accounts {
		if a.Username == username && id != excludeID {
			return true
		}
	}
	return false
}

func (r *accountRepository) Create(ctx context.Context, newAccount account.Account) (account.Account, error) {
	err := r.s.begin("account.Create")
	defer r.s.mu.Unlock()
	if err != nil {
		return account.Account{}, err
	}

	if r.usernameTaken(newAccount.Username, "") {
		return account.Account{}, account.ErrUsernameExists
	}

	now := r.s.tick()
	newAccount.ID = newID()
	newAccount.CreatedAt = now
	newAccount.UpdatedAt = now
	r.s.data.accounts[newAccount.ID] = newAccount
	return newAccount, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (account.Account, error) {
	err := r.s.begin("account.GetByID")
	defer r.s.mu.Unlock()
	if err != nil {
		return account.Account{}, err
	}

	a, ok := r.s.data.accounts[id]
	if !ok {
		return account.Account{}, account.ErrAccountNotFound
	}
	return a, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (account.Account, error) {
	err := r.s.begin("account.GetByUsername")
	defer r.s.mu.Unlock()
	if err != nil {
		return account.Account{}, err
	}

	for _, a := range r.s.data.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return account.Account{}, account.ErrAccountNotFound
}

func (r *accountRepository) ExistsByUsername(ctx context.Context, username string, excludeID *string) (bool, error) {
	err := r.s.begin("account.ExistsByUsername")
	defer r.s.mu.Unlock()
	if err != nil {
		return false, err
	}

	exclude := ""
	if excludeID != nil {
		exclude = *excludeID
	}
	return r.usernameTaken(username, exclude), nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id string, req account.UpdateProfileRequest) error {
	err := r.s.begin("account.UpdateProfile")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	a, ok := r.s.data.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	if r.usernameTaken(req.Username, id) {
		return account.ErrUsernameExists
	}

	a.Username = req.Username
	a.FirstName = req.FirstName
	a.LastName = req.LastName
	a.UpdatedAt = r.s.tick()
	r.s.data.accounts[id] = a
	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	err := r.s.begin("account.UpdatePassword")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	a, ok := r.s.data.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	a.UpdatedAt = r.s.tick()
	r.s.data.accounts[id] = a
	return nil
}

// Delete cascades to the owned employee and its history, like the schema does.
func (r *accountRepository) Delete(ctx context.Context, id string) error {
	err := r.s.begin("account.Delete")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	if _, ok := r.s.data.accounts[id]; !ok {
		return account.ErrAccountNotFound
	}
	delete(r.s.data.accounts, id)

	for token, t := range r.s.data.refreshTokens {
		if t.accountID == id {
			delete(r.s.data.refreshTokens, token)
		}
	}

	for empID, e := range r.s.data.employees {
		if e.AccountID == id {
			r.s.deleteEmployeeLocked(empID)
		}
	}
	return nil
}
