package router

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/inslanka/shop-api/pkg/auth"
	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
	"github.com/inslanka/shop-api/pkg/mongo"
	"github.com/inslanka/shop-api/pkg/redis"
)

const loginAttemptsPerMinute = 10

func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	user := &models.User{
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleCustomer,
		IsActive:  true,
	}

	created, err := mongo.CreateUser(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, mongo.ErrEmailTaken) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "An account with this email already exists", Code: "duplicate"},
			}))
			return
		}
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	access, refresh, err := auth.IssueTokenPair(created)
	if err != nil {
		log.Printf("Error issuing tokens: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create session", nil))
		return
	}

	auth.SetAuthCookies(c, access, refresh)
	mergeGuestCart(c, created.ID)

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]interface{}{
		"user":         created,
		"access_token": access,
	}))
}

func Login(c *gin.Context) {
	if redis.LoginAttemptExceeded(c.Request.Context(), c.ClientIP(), loginAttemptsPerMinute) {
		c.JSON(http.StatusTooManyRequests, global.ErrorResponse("Too many login attempts, try again shortly", nil))
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	user, err := mongo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same response for unknown email and bad password
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid email or password", nil))
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Account is disabled", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid email or password", nil))
		return
	}

	access, refresh, err := auth.IssueTokenPair(user)
	if err != nil {
		log.Printf("Error issuing tokens: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create session", nil))
		return
	}

	auth.SetAuthCookies(c, access, refresh)
	mergeGuestCart(c, user.ID)

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"user":         user,
		"access_token": access,
	}))
}

// mergeGuestCart folds the caller's guest session cart into their user
// cart after login. Best effort: a failed merge never fails the login.
func mergeGuestCart(c *gin.Context, userID bson.ObjectID) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		sessionID, _ = c.Cookie(guestSessionCookie)
	}
	if sessionID == "" {
		return
	}

	ctx := c.Request.Context()
	cart, err := redis.GetSessionCart(ctx, sessionID)
	if err != nil || len(cart.Items) == 0 {
		return
	}

	for sku, item := range cart.Items {
		if _, err := mongo.AddCartItem(ctx, userID, sku, item.Quantity); err != nil {
			log.Printf("Warning: failed to merge guest cart item %s: %v", sku, err)
		}
	}
	if err := redis.ClearSessionCart(ctx, sessionID); err != nil {
		log.Printf("Warning: failed to clear guest cart: %v", err)
	}
	c.SetCookie(guestSessionCookie, "", -1, "/", "", false, true)
}

// RefreshSession exchanges a valid refresh token for a new token pair.
// The old refresh token is blacklisted so it cannot be replayed.
func RefreshSession(c *gin.Context) {
	raw, err := c.Cookie(auth.RefreshCookieName)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Refresh token missing", nil))
		return
	}

	claims, err := auth.ParseToken(raw, auth.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired refresh token", nil))
		return
	}

	if redis.IsRefreshTokenBlacklisted(c.Request.Context(), claims.ID) {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Refresh token has been revoked", nil))
		return
	}

	user, err := lookupClaimsUser(c, claims)
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Account no longer available", nil))
		return
	}

	access, refresh, err := auth.IssueTokenPair(user)
	if err != nil {
		log.Printf("Error issuing tokens: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to refresh session", nil))
		return
	}

	if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
		if err := redis.BlacklistRefreshToken(c.Request.Context(), claims.ID, ttl); err != nil {
			log.Printf("Warning: failed to blacklist refresh token: %v", err)
		}
	}

	auth.SetAuthCookies(c, access, refresh)
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"access_token": access,
	}))
}

func Logout(c *gin.Context) {
	if raw, err := c.Cookie(auth.RefreshCookieName); err == nil && raw != "" {
		if claims, err := auth.ParseToken(raw, auth.TokenTypeRefresh); err == nil {
			if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
				if err := redis.BlacklistRefreshToken(c.Request.Context(), claims.ID, ttl); err != nil {
					log.Printf("Warning: failed to blacklist refresh token: %v", err)
				}
			}
		}
	}

	auth.ClearAuthCookies(c)
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Logged out"}))
}

func GetProfile(c *gin.Context) {
	user, err := mongo.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Account not found", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	user, err := mongo.UpdateUserProfile(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		if errors.Is(err, mongo.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Account not found", nil))
			return
		}
		log.Printf("Error updating profile: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update profile", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func lookupClaimsUser(c *gin.Context, claims *auth.Claims) (*models.User, error) {
	userID, err := bsonObjectID(claims.UserID)
	if err != nil {
		return nil, err
	}
	user, err := mongo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("account disabled")
	}
	return user, nil
}
