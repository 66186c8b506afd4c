package database

import (
	"github.com/questboard/server/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsersWithAvailability returns every user ordered by name, each with
// only the availability rows falling on the given dates preloaded.
func (d *Database) ListUsersWithAvailability(dates []string) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Preload("Availabilities", "date IN ?", dates).
		Order("name asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
