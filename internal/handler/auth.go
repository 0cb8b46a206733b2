package handler // handler defines http handlers

import (
    "context"
    "database/sql"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/config"
    "github.com/airtik/flight-reservation/internal/middleware"
    "github.com/airtik/flight-reservation/internal/repository"
    "github.com/airtik/flight-reservation/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints. Sessions are
// cookie-based: login signs an HS256 JWT, stores its hash in the
// sessions table and sets it as an httpOnly cookie; logout revokes
// the hash and clears the cookie.
type AuthHandler struct {
    Cfg      config.Config
    Users    *repository.UserRepo
    Sessions *repository.SessionRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// ----- DTOs -----

type registerReq struct {
    Name     string `json:"name"`
    Email    string `json:"email"`
    Phone    string `json:"phone"`
    Password string `json:"password"`
    IsAdmin  bool   `json:"is_admin"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type userPart struct {
    ID      uint64 `json:"id"`
    Name    string `json:"name"`
    Email   string `json:"email"`
    Phone   string `json:"phone"`
    IsAdmin bool   `json:"is_admin"`
}

// sessionCookie builds an httpOnly cookie carrying the session JWT.
// SameSite=None with Secure matches the browser frontend being
// served from a different origin.
func sessionCookie(raw string, exp time.Time) *http.Cookie {
    return &http.Cookie{
        Name:     middleware.SessionCookie,
        Value:    raw,
        Path:     "/",
        Expires:  exp,
        HttpOnly: true,
        Secure:   true,
        SameSite: http.SameSiteNoneMode,
    }
}

// Register: create user and open a session immediately.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    req.Phone = strings.TrimSpace(req.Phone)
    if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/phone/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Phone, req.Password, req.IsAdmin, h.Cfg.BcryptCost)
    if err != nil {
        switch err {
        case repository.ErrEmailExists:
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
        case repository.ErrPhoneExists:
            return c.JSON(http.StatusConflict, echo.Map{"error": "phone number already in use"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }

    tok, err := h.openSession(ctx, uid, req.IsAdmin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }
    c.SetCookie(sessionCookie(tok.Raw, tok.Exp))
    return c.JSON(http.StatusCreated, echo.Map{
        "user": userPart{ID: uid, Name: req.Name, Email: req.Email, Phone: req.Phone, IsAdmin: req.IsAdmin},
    })
}

// Login: verify credentials, open a session and set the cookie.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    tok, err := h.openSession(ctx, u.ID, u.IsAdmin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }
    c.SetCookie(sessionCookie(tok.Raw, tok.Exp))
    return c.JSON(http.StatusOK, echo.Map{
        "user": userPart{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, IsAdmin: u.IsAdmin},
    })
}

// Logout: revoke the current session and clear the cookie. Safe to
// call with a dead cookie; clearing is unconditional.
func (h *AuthHandler) Logout(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
        _ = h.Sessions.RevokeByHash(ctx, utils.HashSessionRaw(cookie.Value))
    }
    expired := sessionCookie("", time.Unix(0, 0))
    expired.MaxAge = -1
    c.SetCookie(expired)
    return c.JSON(http.StatusOK, echo.Map{"logout": true})
}

// Me returns the authenticated user's record (check-auth).
func (h *AuthHandler) Me(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "user": userPart{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, IsAdmin: u.IsAdmin},
    })
}

func (h *AuthHandler) openSession(ctx context.Context, userID uint64, admin bool) (utils.SessionToken, error) {
    tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, userID, admin, h.Cfg.SessionTTLMin)
    if err != nil {
        return utils.SessionToken{}, err
    }
    if err := h.Sessions.Store(ctx, userID, utils.HashSessionRaw(tok.Raw), tok.Exp); err != nil {
        return utils.SessionToken{}, err
    }
    return tok, nil
}
