package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/models"
	"github.com/lanternworks/api-template/pkg/tokens"
)

// The auth stub knows exactly one account. Replace with a real user store
// when the template grows up.
const demoUsername = "demo"

// Hashed at startup so the stub exercises the same verification path a real
// credential store would.
var demoPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)

var demoUser = models.User{ID: 1, Username: demoUsername, Scopes: []string{"read", "write"}}

// AuthHandler issues demo tokens and guards the demo secure route.
type AuthHandler struct {
	tokens *tokens.Generator
	log    *slog.Logger
}

func NewAuthHandler(generator *tokens.Generator, log *slog.Logger) *AuthHandler {
	return &AuthHandler{tokens: generator, log: log.With(slog.String("component", "AUTH"))}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// IssueToken handles POST /auth/token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) error {
	var req tokenRequest
	if err := httputil.Decode(r, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return httputil.Validation("Validation error", "username and password are required")
	}

	if req.Username != demoUsername ||
		bcrypt.CompareHashAndPassword(demoPasswordHash, []byte(req.Password)) != nil {
		h.log.WarnContext(r.Context(), "token request rejected", slog.String("user", req.Username))
		return httputil.Unauthorized("Invalid username or password")
	}

	token, err := h.tokens.Generate(demoUser.ID, demoUser.Username, demoUser.Scopes)
	if err != nil {
		return err
	}

	h.log.InfoContext(r.Context(), "token issued", slog.String("user", req.Username))
	httputil.WriteSuccess(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
	return nil
}

// Profile handles GET /example/secure/profile, requiring a bearer token.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) error {
	user, err := h.authenticate(r)
	if err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, user)
	return nil
}

func (h *AuthHandler) authenticate(r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, httputil.Unauthorized("Missing bearer token")
	}

	claims, err := h.tokens.Validate(token)
	if err != nil {
		h.log.WarnContext(r.Context(), "token rejected", slog.String("err", err.Error()))
		return nil, httputil.Unauthorized("Invalid or expired token")
	}

	return &models.User{ID: claims.UserID, Username: claims.Username, Scopes: claims.Scopes}, nil
}
