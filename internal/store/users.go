package store

import (
	"context"
	"time"
)

// CreateUserAccountParams holds the arguments for CreateUserAccount.
type CreateUserAccountParams struct {
	UUID                     string
	Email                    string
	PreferredUILanguage      string
	PreferredContentLanguage string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// CreateUserAccount inserts a new user account.
func (q *Queries) CreateUserAccount(ctx context.Context, arg CreateUserAccountParams) (UserAccount, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO user_accounts (uuid, email, preferred_ui_language, preferred_content_language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, uuid, email, preferred_ui_language, preferred_content_language, created_at, updated_at`,
		arg.UUID, arg.Email, arg.PreferredUILanguage, arg.PreferredContentLanguage, arg.CreatedAt, arg.UpdatedAt)
	var u UserAccount
	err := row.Scan(&u.ID, &u.UUID, &u.Email, &u.PreferredUILanguage, &u.PreferredContentLanguage, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUserAccountByUUID returns the account with the given UUID.
func (q *Queries) GetUserAccountByUUID(ctx context.Context, uuid string) (UserAccount, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, uuid, email, preferred_ui_language, preferred_content_language, created_at, updated_at
		FROM user_accounts WHERE uuid = ?`, uuid)
	var u UserAccount
	err := row.Scan(&u.ID, &u.UUID, &u.Email, &u.PreferredUILanguage, &u.PreferredContentLanguage, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdateUserContentLanguageParams holds the arguments for UpdateUserContentLanguage.
type UpdateUserContentLanguageParams struct {
	UUID                     string
	PreferredContentLanguage string
	UpdatedAt                time.Time
}

// UpdateUserContentLanguage persists the content language preference.
func (q *Queries) UpdateUserContentLanguage(ctx context.Context, arg UpdateUserContentLanguageParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE user_accounts SET preferred_content_language = ?, updated_at = ? WHERE uuid = ?`,
		arg.PreferredContentLanguage, arg.UpdatedAt, arg.UUID)
	return err
}

// UpdateUserUILanguageParams holds the arguments for UpdateUserUILanguage.
type UpdateUserUILanguageParams struct {
	UUID                string
	PreferredUILanguage string
	UpdatedAt           time.Time
}

// UpdateUserUILanguage persists the interface language preference.
func (q *Queries) UpdateUserUILanguage(ctx context.Context, arg UpdateUserUILanguageParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE user_accounts SET preferred_ui_language = ?, updated_at = ? WHERE uuid = ?`,
		arg.PreferredUILanguage, arg.UpdatedAt, arg.UUID)
	return err
}
