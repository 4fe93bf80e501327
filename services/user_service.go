package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/errs"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rpupo63/album-review-backend/security"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Registration is what a visitor submits to open an account.
type Registration struct {
	Email    string `json:"email" validate:"required,email,max=180"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UserService struct {
	users  *database.UserRepo
	mailer Mailer
	logger zerolog.Logger
}

func NewUserService(db database.Database, mailer Mailer) *UserService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &UserService{
		users:  db.UserRepo(),
		mailer: mailer,
		logger: log.With().Str("service", "user").Logger(),
	}
}

func (s *UserService) GetPaginatedList(ctx context.Context, page int) (database.Page[models.User], error) {
	return database.Paginate[models.User](s.users.QueryAll(ctx), page, database.PaginatorItemsPerPage)
}

func (s *UserService) FindBySlug(ctx context.Context, slug string) (*models.User, error) {
	return s.users.FindBySlug(ctx, slug)
}

func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Register creates a user with the base role and sends a welcome email. A
// failed email does not fail the registration.
func (s *UserService) Register(ctx context.Context, reg Registration) (*models.User, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Username = strings.TrimSpace(reg.Username)
	if err := models.Validate(&reg); err != nil {
		return nil, errs.FromValidation(err)
	}

	user, err := s.newUser(reg, models.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("<p>Hello %s,</p><p>your account is ready. Happy listening!</p>", html.EscapeString(user.Username))
	if err := s.mailer.Send(ctx, "Welcome to the album reviews", body, []string{user.Email}); err != nil {
		s.logger.Warn().Err(err).Str("user", user.Slug).Msg("could not send welcome email")
	}
	return user, nil
}

// CreateAdmin creates a user holding ROLE_ADMIN.
func (s *UserService) CreateAdmin(ctx context.Context, reg Registration) (*models.User, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Username = strings.TrimSpace(reg.Username)
	if err := models.Validate(&reg); err != nil {
		return nil, errs.FromValidation(err)
	}
	user, err := s.newUser(reg, models.RoleUser, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user owning email when password matches. Hashes
// made with an outdated cost are upgraded on the way.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewInvalidCredentialsError()
	}
	if err != nil {
		return nil, err
	}
	if !security.CheckPassword(user.Password, password) {
		return nil, errs.NewInvalidCredentialsError()
	}

	if security.NeedsRehash(user.Password) {
		if hash, err := security.HashPassword(password); err == nil {
			if err := s.users.UpgradePassword(ctx, user, hash); err != nil {
				s.logger.Warn().Err(err).Str("user", user.Slug).Msg("could not upgrade password hash")
			}
		}
	}
	return user, nil
}

// ChangePassword replaces the password of user after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	if !security.CheckPassword(user.Password, oldPassword) {
		return errs.NewWrongPasswordError()
	}
	if len(newPassword) < security.MinPasswordLength {
		return errs.NewInvalidFieldError("newPassword", fmt.Sprintf("must be at least %d characters", security.MinPasswordLength))
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpgradePassword(ctx, user, hash)
}

// ToggleBlocked flips the blocked flag of user and saves it.
func (s *UserService) ToggleBlocked(ctx context.Context, user *models.User) error {
	user.Blocked = !user.Blocked
	if err := s.users.Save(ctx, user); err != nil {
		user.Blocked = !user.Blocked
		return err
	}
	s.logger.Info().Str("user", user.Slug).Bool("blocked", user.Blocked).Msg("user block status changed")
	return nil
}

func (s *UserService) Save(ctx context.Context, user *models.User) error {
	return s.users.Save(ctx, user)
}

// Delete removes user. Accounts are never deletable through the API, see CanBeDeleted.
func (s *UserService) Delete(ctx context.Context, user *models.User) error {
	return s.users.Delete(ctx, user)
}

// CanBeDeleted is always false: users own albums and comments.
func (s *UserService) CanBeDeleted(ctx context.Context, user *models.User) bool {
	return false
}

func (s *UserService) newUser(reg Registration, roles ...string) (*models.User, error) {
	hash, err := security.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Email:    reg.Email,
		Username: reg.Username,
		Password: hash,
		Roles:    datatypes.JSONSlice[string](roles),
	}, nil
}
