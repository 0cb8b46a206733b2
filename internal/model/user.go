package model

import "time"

// User represents an application user record as stored in the
// `users` table. Passwords are stored only as bcrypt hashes. The
// IsAdmin flag gates management endpoints: flight and catalog
// writes, booking cancellation and the dashboard.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address.
//  Phone        – unique phone number.
//  PasswordHash – bcrypt hashed password.
//  IsAdmin      – whether the account may perform admin operations.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    Phone        string    // users.phone
    PasswordHash string    // users.password_hash
    IsAdmin      bool      // users.is_admin
    CreatedAt    time.Time // users.created_at
}

// Session models an entry in the `sessions` table. A session is
// created at login and revoked at logout; only the SHA‑256 hash of
// the cookie token is stored, never the token itself.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  TokenHash – SHA‑256 hex digest of the session token.
//  ExpiresAt – expiration timestamp of the session.
//  RevokedAt – when the session was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type Session struct {
    ID        uint64     // sessions.id
    UserID    uint64     // sessions.user_id
    TokenHash string     // sessions.token_hash
    ExpiresAt time.Time  // sessions.expires_at
    RevokedAt *time.Time // sessions.revoked_at (nullable)
    CreatedAt time.Time  // sessions.created_at
}
