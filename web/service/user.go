package service

import (
	"strings"

	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/util/crypto"
)

type UserService struct{}

// ProfilePatch lists the profile fields a user may send. A nil field keeps
// the stored value, a non-nil one replaces it (an empty string clears it).
type ProfilePatch struct {
	FullName        *string `json:"fullName"`
	Address         *string `json:"address"`
	Phone           *string `json:"phone"`
	DOB             *string `json:"dob"`
	Education       *string `json:"education"`
	Degree          *string `json:"degree"`
	YearCompleted   *string `json:"yearCompleted"`
	Projects        *string `json:"projects"`
	Skills          *string `json:"skills"`
	Certifications  *string `json:"certifications"`
	PositionApplied *string `json:"positionApplied"`
}

// ApplyTo merges the patch into p field by field.
func (pp *ProfilePatch) ApplyTo(p *model.Profile) {
	if pp == nil {
		return
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.FullName, pp.FullName)
	set(&p.Address, pp.Address)
	set(&p.Phone, pp.Phone)
	set(&p.DOB, pp.DOB)
	set(&p.Education, pp.Education)
	set(&p.Degree, pp.Degree)
	set(&p.YearCompleted, pp.YearCompleted)
	set(&p.Projects, pp.Projects)
	set(&p.Skills, pp.Skills)
	set(&p.Certifications, pp.Certifications)
	set(&p.PositionApplied, pp.PositionApplied)
}

// UserPatch is the body of a profile update. Blank name, email or password
// values are ignored.
type UserPatch struct {
	Name     *string       `json:"name"`
	Email    *string       `json:"email"`
	Password *string       `json:"password"`
	Profile  *ProfilePatch `json:"profile"`
}

func (s *UserService) GetUser(id string) (*model.User, error) {
	var user model.User
	if err := database.GetDB().Where("id = ?", id).First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUsers() ([]model.User, error) {
	users := make([]model.User, 0)
	err := database.GetDB().Order("created_at DESC").Find(&users).Error
	return users, err
}

func (s *UserService) UpdateUser(id string, patch UserPatch) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			user.Name = name
		}
	}
	if patch.Email != nil {
		if email := normalizeEmail(*patch.Email); email != "" {
			if err := validateEmail(email); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if patch.Password != nil && *patch.Password != "" {
		if err := validatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := crypto.HashPasswordAsBcrypt(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	patch.Profile.ApplyTo(&user.Profile)

	if err := database.GetDB().Save(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account only. Jobs and applications that reference
// it stay and render the reference as null.
func (s *UserService) DeleteUser(id string) error {
	res := database.GetDB().Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	logger.Infof("user %s deleted their account", id)
	return nil
}

// CreateAdmin registers an administrator directly. Used by the CLI to
// bootstrap a deployment.
func (s *UserService) CreateAdmin(name, email, password string) (*model.User, error) {
	return createUser(name, email, password, model.RoleAdmin)
}

// SetRole changes the role of the user registered under email.
func (s *UserService) SetRole(email string, role model.Role) error {
	if !role.Valid() {
		return NewValidationError("unknown role %q", role)
	}
	res := database.GetDB().Model(&model.User{}).Where("email = ?", normalizeEmail(email)).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
