package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elevennote/elevennote/internal/models"
	"github.com/elevennote/elevennote/internal/services"
	"github.com/elevennote/elevennote/internal/utils"
)

// AuthHandler serves registration and token issuance. Registration exists so
// the issuer has accounts to verify; everything note-related lives behind the
// auth middleware instead.
type AuthHandler struct {
	db     *gorm.DB
	issuer *services.TokenIssuer
}

func NewAuthHandler(db *gorm.DB, issuer *services.TokenIssuer) *AuthHandler {
	return &AuthHandler{db: db, issuer: issuer}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with a unique username and email
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body handlers.RegisterInput true "New user"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/sign-up [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Email == "" || input.Username == "" || input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Check if username already exists
	var existingUser models.User
	if err := h.db.Where("LOWER(username) = LOWER(?)", input.Username).First(&existingUser).Error; err == nil {
		utils.JSONError(w, http.StatusBadRequest, "Username is already taken")
		return
	}

	// Check if email already exists
	err := h.db.Where("email = ?", input.Email).First(&existingUser).Error

	switch {
	case err == nil: // email exists
		utils.JSONError(w, http.StatusBadRequest, "User already exists with this email")
		return

	case errors.Is(err, gorm.ErrRecordNotFound): // new user, create account
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			utils.JSONError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		newUser := models.User{
			Username:  input.Username,
			Email:     input.Email,
			Password:  string(hashedPassword),
			FirstName: input.FirstName,
			LastName:  input.LastName,
		}

		if createErr := h.db.Create(&newUser).Error; createErr != nil {
			utils.JSONError(w, http.StatusInternalServerError, "Database insert failed")
			return
		}

	default: // some other DB error
		utils.JSONError(w, http.StatusInternalServerError, "Database query failed")
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
	})
}

// RegisterInput is the sign-up request body.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TokenInput is the login request body.
type TokenInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token godoc
// @Summary Exchange credentials for a bearer token
// @Description Verify username and password and mint a signed token valid for 14 days
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body handlers.TokenInput true "Credentials"
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/auth/token [post]
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var input TokenInput

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Username == "" || input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	token, err := h.issuer.IssueToken(r.Context(), input.Username, input.Password)
	switch {
	case err == nil:
		// token issued
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	default:
		utils.JSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Token issued",
		Data:    token,
	})
}
