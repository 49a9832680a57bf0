package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"ultrarent/db"
	"ultrarent/globals"
	"ultrarent/middleware"
	"ultrarent/models"
	"ultrarent/rdx"
	"ultrarent/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	accessTokenTTL  = 15 * time.Minute
)

type Handlers struct {
	Store db.UserStore
}

func NewHandlers(store db.UserStore) *Handlers {
	return &Handlers{Store: store}
}

func (h *Handlers) registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	// Uniqueness by lookup-before-insert; two simultaneous registrations for
	// the same email can race. The store has no unique constraint.
	if _, err := h.Store.GetUserByEmail(r.Context(), input.Email); err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	role := models.RoleCustomer
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" && input.Email == strings.ToLower(adminEmail) {
		role = models.RoleAdmin
	}

	user := &models.User{
		ID:        utils.GetUUID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := h.Store.InsertUser(r.Context(), user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{
		"userid": user.ID,
	}, "Registration successful", nil)
}

func (h *Handlers) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	storedUser, err := h.Store.GetUserByEmail(r.Context(), input.Email)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	if err := rdx.RdxHset("refresh", storedUser.ID, hashToken(refreshToken)); err != nil {
		log.Printf("Redis refresh token storage failed: %v", err)
	}

	if err := h.Store.SetLastLogin(r.Context(), storedUser.ID, time.Now()); err != nil {
		log.Printf("lastLogin update failed for %s: %v", storedUser.ID, err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       storedUser.ID,
		"role":         storedUser.Role,
		"name":         storedUser.Name,
	}, "Login successful", nil)
}

func (h *Handlers) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := rdx.RdxHdel("refresh", userID); err != nil {
		log.Printf("Redis refresh token delete failed: %v", err)
	}
	utils.SendResponse(w, http.StatusOK, nil, "Logged out", nil)
}

// refreshTokenHandler trades a refresh token for a fresh access token. It is
// deliberately not behind Authenticate: the whole point is that the access
// token may already be expired, so the caller identifies itself with the
// userid and refresh token from login and the Redis hash does the vetting.
func (h *Handlers) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.UserID == "" || input.RefreshToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "User id and refresh token required")
		return
	}

	stored, err := rdx.RdxHget("refresh", input.UserID)
	if err != nil || stored != hashToken(input.RefreshToken) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	user, err := h.Store.GetUser(r.Context(), input.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.SendResponse(w, http.StatusOK, map[string]string{"token": tokenString}, "Token refreshed", nil)
}

func generateAccessToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		Name:   user.Name,
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
