package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/airtik/flight-reservation/internal/model"
    "github.com/airtik/flight-reservation/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
    // ErrEmailExists indicates the email is already registered.
    ErrEmailExists = errors.New("email already exists")
    // ErrPhoneExists indicates the phone number is already in use.
    ErrPhoneExists = errors.New("phone number already in use")
    // ErrUserNotFound indicates no user row matched.
    ErrUserNotFound = errors.New("user not found")
)

// Create hashes the password and inserts a user, returning its ID.
// Email is normalized to lower case. Phone uniqueness is pre-checked
// so the caller gets a distinct error from the email unique index.
func (r *UserRepo) Create(ctx context.Context, name, email, phone, password string, isAdmin bool, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    phone = strings.TrimSpace(phone)
    var phoneTaken bool
    if err := r.DB.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM users WHERE phone=?)", phone).Scan(&phoneTaken); err != nil {
        return 0, err
    }
    if phoneTaken {
        return 0, ErrPhoneExists
    }
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (name, email, phone, password_hash, is_admin) VALUES (?,?,?,?,?)",
        name, email, phone, hash, isAdmin)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,name,email,phone,password_hash,is_admin,created_at FROM users WHERE email=? LIMIT 1",
        email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
    return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,name,email,phone,password_hash,is_admin,created_at FROM users WHERE id=? LIMIT 1",
        id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
    if err == sql.ErrNoRows {
        return u, ErrUserNotFound
    }
    return u, err
}

// ListOthers returns every user except the caller, newest first.
// Used by the admin user listing so admins do not see themselves.
func (r *UserRepo) ListOthers(ctx context.Context, excludeID uint64) ([]model.User, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id,name,email,phone,is_admin,created_at FROM users WHERE id<>? ORDER BY created_at DESC",
        excludeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    users := make([]model.User, 0)
    for rows.Next() {
        var u model.User
        if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.IsAdmin, &u.CreatedAt); err != nil {
            return nil, err
        }
        users = append(users, u)
    }
    return users, rows.Err()
}

// Delete removes a user. It refuses with ErrConflict while any
// booking still references the user, matching the referential
// guards on the other catalog deletes.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
    var hasBookings bool
    if err := r.DB.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM bookings WHERE user_id=?)", id).Scan(&hasBookings); err != nil {
        return err
    }
    if hasBookings {
        return ErrConflict
    }
    res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrUserNotFound
    }
    return nil
}
