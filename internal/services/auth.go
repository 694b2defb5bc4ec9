package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/models"
	"github.com/peopledesk/peopledesk/internal/utils"
	"github.com/peopledesk/peopledesk/pkg/logger"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	ExpireAt time.Time    `json:"expire_at"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`

	// Employee profile, required when role is employee.
	CompanyID    uint       `json:"company_id"`
	DepartmentID uint       `json:"department_id"`
	Name         string     `json:"name"`
	Mobile       string     `json:"mobile"`
	Address      string     `json:"address"`
	Position     string     `json:"position"`
	HiredOn      *time.Time `json:"hired_on"`
}

type RegisterResponse struct {
	User     *models.User     `json:"user"`
	Employee *models.Employee `json:"employee,omitempty"`
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid username or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, errors.New("user is disabled")
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, errors.New("invalid username or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	// Recording the login time is best effort; a failed write must not
	// reject valid credentials.
	now := time.Now()
	user.LastLogin = &now
	if err := s.db.Save(&user).Error; err != nil {
		logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}

	return &LoginResponse{
		Token:    token,
		User:     &user,
		ExpireAt: now.Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

// Register creates a user account. When the role is employee, the employee
// directory profile is created in the same transaction by an explicit call;
// there is no implicit hook between the two.
func (s *AuthService) Register(req *RegisterRequest) (*RegisterResponse, error) {
	if !models.ValidRole(req.Role) {
		return nil, errors.New("invalid role: " + req.Role)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	resp := &RegisterResponse{}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username: req.Username,
			Email:    req.Email,
			Password: hashed,
			Role:     req.Role,
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		resp.User = &user

		if req.Role != models.RoleEmployee {
			return nil
		}

		if req.CompanyID == 0 || req.DepartmentID == 0 {
			return &MissingFieldError{Field: "company_id/department_id"}
		}
		if err := (&EmployeeService{db: tx}).checkOrgRefs(tx, req.CompanyID, req.DepartmentID); err != nil {
			return err
		}

		name := req.Name
		if name == "" {
			name = req.Username
		}
		employee := models.Employee{
			UserID:       user.ID,
			CompanyID:    req.CompanyID,
			DepartmentID: req.DepartmentID,
			Name:         name,
			Email:        req.Email,
			Mobile:       req.Mobile,
			Address:      req.Address,
			Position:     req.Position,
			HiredOn:      req.HiredOn,
		}
		employee.Slug = uniqueEmployeeSlug(tx, req.Email)
		if err := tx.Create(&employee).Error; err != nil {
			return err
		}
		resp.Employee = &employee
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user", Ref: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, err
	}
	return &user, nil
}

// PrincipalForUser assembles the acting principal, resolving the optional
// employee profile with an explicit lookup.
func (s *AuthService) PrincipalForUser(userID uint, role string) Principal {
	p := Principal{UserID: userID, Role: role}
	var employee models.Employee
	if err := s.db.Select("id").Where("user_id = ?", userID).First(&employee).Error; err == nil {
		id := employee.ID
		p.EmployeeID = &id
	}
	return p
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func (s *AuthService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return errors.New("incorrect old password")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.db.Save(&user).Error
}

// CreateAdminIfNotExists creates the default admin user on first start.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword("admin")
	if err != nil {
		return err
	}

	admin := models.User{
		Username: "admin",
		Email:    "admin@peopledesk.local",
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	return s.db.Create(&admin).Error
}
