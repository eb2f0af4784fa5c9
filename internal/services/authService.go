package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/repo"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

// AuthService registers users and issues JWTs carrying the user id and role
// that the ownership checks downstream rely on.
type AuthService struct {
	users     UserStore
	jwtSecret []byte
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(jwtSecret)}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT generates a JWT token with user ID and role
func (s *AuthService) GenerateJWT(userID string, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 4).Unix(), // Token expires in 4 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Register creates a new user. Only the user and publisher roles can be
// self-assigned; admins are seeded out of band.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (models.User, error) {
	if role != models.RolePublisher {
		role = models.RoleUser
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := models.Validate(&user); err != nil {
		return models.User{}, err
	}

	if err := s.users.Insert(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return models.User{}, ErrEmailInUse
		}
		return models.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns a JWT with role info.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.Password) {
		return "", "", ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}
