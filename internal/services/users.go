package services

import (
	"fmt"
	"strings"

	"github.com/localnerve/rentdb/internal/models"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Languages the dashboard is translated into; the first is the default
var supportedLanguages = []language.Tag{
	language.French,
	language.Arabic,
	language.English,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var (
	userRoles    = []string{models.RoleAdmin, models.RoleOperator}
	userStatuses = []string{models.UserActive, models.UserInactive}
)

// UserInput carries create and update fields; nil means "not provided"
type UserInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Language *string `json:"language"`
}

func (in *UserInput) validate() error {
	if in.Role != nil {
		if err := oneOf("role", str(in.Role), true, userRoles...); err != nil {
			return err
		}
	}
	if in.Status != nil {
		if err := oneOf("status", str(in.Status), true, userStatuses...); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeLanguage maps a language tag such as "fr-FR" onto a supported base language
func NormalizeLanguage(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		base, _ := supportedLanguages[0].Base()
		return base.String(), nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", validationError("unknown language %q", s)
	}

	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return "", validationError("unsupported language %q", s)
	}

	base, _ := supportedLanguages[index].Base()
	return base.String(), nil
}

// ListUsers returns all users in insertion order
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("id ASC").Find(&users).Error
	return users, err
}

// GetUser loads one user
func GetUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, classify(err, "user", id)
	}
	return &user, nil
}

// CreateUser hashes the password and inserts the user
func CreateUser(db *gorm.DB, creds *Credentials, actor *Claims, in UserInput) (*models.User, error) {
	username := str(in.Username)
	password := str(in.Password)
	if username == "" || password == "" {
		return nil, validationError("username and password are required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	lang, err := NormalizeLanguage(str(in.Language))
	if err != nil {
		return nil, err
	}

	digest, err := creds.Hash(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Password: digest,
		Role:     orDefault(in.Role, models.RoleOperator),
		Status:   orDefault(in.Status, models.UserActive),
		Language: lang,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return classify(err, "user", username)
		}
		return recordOperation(tx, actor, "user.create", map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		})
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUser applies the provided fields. A non-admin may only edit their own username, password
// and language; sending a different role or status is forbidden.
func UpdateUser(db *gorm.DB, creds *Credentials, actor *Claims, id uint, in UserInput) (*MutationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	result := &MutationResult{ID: id}

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return classify(err, "user", id)
		}

		if !actor.IsAdmin() {
			if actor.UserID != id {
				return fmt.Errorf("user %d may not edit user %d: %w", actor.UserID, id, ErrForbidden)
			}
			if (in.Role != nil && *in.Role != user.Role) || (in.Status != nil && *in.Status != user.Status) {
				return fmt.Errorf("only administrators may change role or status: %w", ErrForbidden)
			}
		}

		updates := map[string]interface{}{}
		if v := str(in.Username); v != "" && v != user.Username {
			updates["username"] = v
		}
		if v := str(in.Password); v != "" {
			digest, err := creds.Hash(v)
			if err != nil {
				return err
			}
			updates["password"] = digest
		}
		if v := str(in.Role); v != "" && v != user.Role {
			updates["role"] = v
		}
		if v := str(in.Status); v != "" && v != user.Status {
			updates["status"] = v
		}
		if in.Language != nil {
			lang, err := NormalizeLanguage(*in.Language)
			if err != nil {
				return err
			}
			if lang != user.Language {
				updates["language"] = lang
			}
		}

		// Demoting or disabling an active admin must leave another one behind
		if user.IsAdmin() && user.IsActive() {
			role, _ := updates["role"].(string)
			status, _ := updates["status"].(string)
			if (role != "" && role != models.RoleAdmin) || (status != "" && status != models.UserActive) {
				if err := requireOtherActiveAdmin(tx, id); err != nil {
					return err
				}
			}
		}

		if len(updates) == 0 {
			return nil
		}

		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return classify(res.Error, "user", str(in.Username))
		}
		if res.RowsAffected == 0 {
			return notFound("user", id)
		}
		result.AffectedRows = res.RowsAffected

		fields := make([]string, 0, len(updates))
		for k := range updates {
			fields = append(fields, k)
		}
		return recordOperation(tx, actor, "user.update", map[string]interface{}{
			"id":     id,
			"fields": fields,
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteUser removes a user that no payment references.
// The caller's own account and the last active admin are protected.
func DeleteUser(db *gorm.DB, actor *Claims, id uint) (*MutationResult, error) {
	if actor != nil && actor.UserID == id {
		return nil, fmt.Errorf("cannot delete the signed-in account: %w", ErrInUse)
	}

	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return classify(err, "user", id)
		}

		if user.IsAdmin() && user.IsActive() {
			if err := requireOtherActiveAdmin(tx, id); err != nil {
				return err
			}
		}
		if err := refuseIfReferenced(tx, "user", []uint{id}, userDependents); err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("user", id)
		}
		result.AffectedRows = res.RowsAffected

		return recordOperation(tx, actor, "user.delete", map[string]interface{}{
			"id":       id,
			"username": user.Username,
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SetPassword replaces a user's password by username, for the admin CLI
func SetPassword(db *gorm.DB, creds *Credentials, username, password string) error {
	if strings.TrimSpace(password) == "" {
		return validationError("password is required")
	}
	digest, err := creds.Hash(password)
	if err != nil {
		return err
	}

	res := db.Model(&models.User{}).Where("username = ?", username).Update("password", digest)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("user", username)
	}
	return nil
}

func requireOtherActiveAdmin(tx *gorm.DB, excludeID uint) error {
	n, err := countWhere(tx, &models.User{}, "role = ? AND status = ? AND id <> ?",
		models.RoleAdmin, models.UserActive, excludeID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("the last active administrator cannot be removed or demoted: %w", ErrInUse)
	}
	return nil
}
