package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

type AuthConfig struct {
	OTPLength int
	OTPTTL    time.Duration
}

// Contact identifies a customer by email or phone number.
type Contact struct {
	Email       string
	PhoneNumber string
}

// Username picks the login identifier: the email when given, else the phone.
func (c Contact) Username() (string, models.AuthMethod, error) {
	if email := utils.NormalizeEmail(c.Email); email != "" {
		return email, models.AuthMethodEmail, nil
	}
	if phone := strings.TrimSpace(c.PhoneNumber); phone != "" {
		if !utils.IsValidPhoneNumber(phone) {
			return "", "", models.ErrInvalidPhoneNumber
		}
		return phone, models.AuthMethodPhone, nil
	}
	return "", "", fmt.Errorf("email or phone number is required: %w", models.ErrValidation)
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users ports.UserRepo
	codes ports.VerificationCodeRepo
	guard ports.CodeGuard
	sms   ports.SMSSender
	email ports.EmailSender
	jwt   *utils.JWTManager
	cfg   AuthConfig
	now   func() time.Time
	log   *zap.Logger
}

// NewAuthService builds the OTP flow. guard may be nil.
func NewAuthService(
	users ports.UserRepo,
	codes ports.VerificationCodeRepo,
	guard ports.CodeGuard,
	sms ports.SMSSender,
	email ports.EmailSender,
	jwt *utils.JWTManager,
	cfg AuthConfig,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users: users,
		codes: codes,
		guard: guard,
		sms:   sms,
		email: email,
		jwt:   jwt,
		cfg:   cfg,
		now:   time.Now,
		log:   log.Named("auth"),
	}
}

// SendOTP finds or registers the customer behind c and sends a fresh code.
// Unverified users get a register code, verified ones a login code.
func (s *AuthService) SendOTP(ctx context.Context, c Contact) (*models.User, models.CodeType, error) {
	username, method, err := c.Username()
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		user, err = s.registerCustomer(ctx, username, method)
		if err != nil {
			return nil, "", err
		}
	case err != nil:
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", models.ErrUserInactive
	}

	typ := codeTypeFor(user)
	if err := s.sendCode(ctx, user, typ); err != nil {
		return nil, "", err
	}
	return user, typ, nil
}

func codeTypeFor(u *models.User) models.CodeType {
	if u.IsVerified {
		return models.CodeTypeLogin
	}
	return models.CodeTypeRegister
}

func guardKey(userID uint, typ models.CodeType) string {
	return fmt.Sprintf("%d:%s", userID, typ)
}

func (s *AuthService) registerCustomer(ctx context.Context, username string, method models.AuthMethod) (*models.User, error) {
	u := &models.User{
		Username:   username,
		UserType:   models.UserTypeCustomer,
		AuthMethod: method,
		IsActive:   true,
		IsVerified: models.VerifiedOnCreate(models.UserTypeCustomer),
	}
	if method == models.AuthMethodEmail {
		u.Email = &username
	} else {
		u.PhoneNumber = &username
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("customer registered", zap.Uint("user_id", u.ID), zap.String("auth_method", string(method)))
	return u, nil
}

func (s *AuthService) sendCode(ctx context.Context, user *models.User, typ models.CodeType) error {
	now := s.now().UTC()

	if s.guard != nil {
		ok, err := s.guard.Acquire(ctx, guardKey(user.ID, typ), s.cfg.OTPTTL)
		switch {
		case err != nil:
			// The stored codes still enforce one live code per type.
			s.log.Warn("otp guard unavailable", zap.Error(err))
		case !ok:
			return models.ErrCodeAlreadySent
		}
	}

	err := s.issueCode(ctx, user, typ, now)
	if err != nil && s.guard != nil && !errors.Is(err, models.ErrCodeAlreadySent) {
		if relErr := s.guard.Release(ctx, guardKey(user.ID, typ)); relErr != nil {
			s.log.Warn("release otp guard", zap.Error(relErr))
		}
	}
	return err
}

func (s *AuthService) issueCode(ctx context.Context, user *models.User, typ models.CodeType, now time.Time) error {
	active, err := s.codes.HasActive(ctx, user.ID, typ, now)
	if err != nil {
		return err
	}
	if active {
		return models.ErrCodeAlreadySent
	}
	if err := s.codes.DeleteAll(ctx, user.ID, typ); err != nil {
		return err
	}

	code, err := utils.GenerateOTP(s.cfg.OTPLength)
	if err != nil {
		return err
	}
	vc := &models.VerificationCode{
		UserID:    user.ID,
		Code:      code,
		CodeType:  typ,
		ExpiresAt: now.Add(s.cfg.OTPTTL),
	}
	if err := s.codes.Create(ctx, vc); err != nil {
		return err
	}

	switch user.AuthMethod {
	case models.AuthMethodEmail:
		if user.Email == nil {
			return fmt.Errorf("user has no email: %w", models.ErrValidation)
		}
		err = s.email.SendVerificationCode(ctx, *user.Email, code)
	default:
		if user.PhoneNumber == nil {
			return fmt.Errorf("user has no phone number: %w", models.ErrValidation)
		}
		err = s.sms.SendSMS(ctx, *user.PhoneNumber, utils.VerificationMessage(code))
	}
	if err != nil {
		return fmt.Errorf("deliver code: %w", err)
	}

	s.log.Info("verification code sent", zap.Uint("user_id", user.ID), zap.String("code_type", string(typ)))
	return nil
}

// VerifyOTP checks code, marks the user verified and returns an access token.
func (s *AuthService) VerifyOTP(ctx context.Context, c Contact, code string) (*AuthResult, error) {
	username, _, err := c.Username()
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrUserInactive
	}

	typ := codeTypeFor(user)
	vc, err := s.codes.Find(ctx, user.ID, strings.TrimSpace(code), typ)
	if err != nil {
		return nil, err
	}
	if vc.IsExpired(s.now().UTC()) {
		return nil, models.ErrCodeExpired
	}
	if err := s.codes.DeleteAll(ctx, user.ID, typ); err != nil {
		return nil, err
	}
	if s.guard != nil {
		if err := s.guard.Release(ctx, guardKey(user.ID, typ)); err != nil {
			s.log.Warn("release otp guard", zap.Error(err))
		}
	}

	if !user.IsVerified {
		if err := s.users.MarkVerified(ctx, user.ID); err != nil {
			return nil, err
		}
		user.IsVerified = true
	}

	return s.issueToken(user)
}

// Login is the password login for staff accounts. Customers use OTP.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := user.CheckPassword(password); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, models.ErrUserInactive
	}
	if !user.IsStaff() {
		return nil, fmt.Errorf("password login is for staff only: %w", models.ErrForbidden)
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves an access token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrUserInactive
	}
	return user, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, fullName string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FullName = strings.TrimSpace(fullName)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type StaffInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Phone    string
	UserType models.UserType
}

// CreateStaffUser creates a field owner or admin with a password.
func (s *AuthService) CreateStaffUser(ctx context.Context, in StaffInput) (*models.User, error) {
	switch in.UserType {
	case models.UserTypeFieldOwner, models.UserTypeAdmin, models.UserTypeSuperAdmin:
	default:
		return nil, fmt.Errorf("user type %q is not a staff type: %w", in.UserType, models.ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", models.ErrValidation)
	}
	if in.Phone != "" && !utils.IsValidPhoneNumber(in.Phone) {
		return nil, models.ErrInvalidPhoneNumber
	}

	u := &models.User{
		Username:   in.Username,
		FullName:   in.FullName,
		UserType:   in.UserType,
		AuthMethod: models.AuthMethodPhone,
		Password:   in.Password,
		IsActive:   true,
		IsVerified: models.VerifiedOnCreate(in.UserType),
	}
	if email := utils.NormalizeEmail(in.Email); email != "" {
		u.Email = &email
		u.AuthMethod = models.AuthMethodEmail
	}
	if in.Phone != "" {
		u.PhoneNumber = &in.Phone
	}
	if u.Username == "" {
		switch {
		case u.AuthMethod == models.AuthMethodEmail:
			u.Username = *u.Email
		case u.PhoneNumber != nil:
			u.Username = *u.PhoneNumber
		default:
			u.Username = uuid.NewString()
		}
	}

	if err := u.HashPassword(); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
