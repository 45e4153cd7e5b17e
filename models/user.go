package models

import (
	"errors"

	"yatube/db"
	"yatube/utils"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Username  string `gorm:"type:varchar(150);index:uniq_username,unique"`
	Name      string `gorm:"type:varchar(100)"`
	Password  string `gorm:"type:varchar(128)"`
	PassSalt  string `gorm:"type:varchar(200)"`
}

const saltSize = 60

var ErrLoginFailed = errors.New("wrong username or password")

func UserCreate(username, name, plainTextPassword string) (u User, err error) {
	u.Username = username
	u.Name = name
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
	return u, db.Instance.Create(&u).Error
}

func UserLogin(username, plainTextPassword string) (u User, err error) {
	if err = db.Instance.First(&u, "username = ?", username).Error; err != nil {
		return User{}, ErrLoginFailed
	}
	if u.Password != utils.Sha512String(plainTextPassword+u.PassSalt) {
		return User{}, ErrLoginFailed
	}
	return u, nil
}

func UserByUsername(username string) (u User, err error) {
	err = db.Instance.First(&u, "username = ?", username).Error
	return
}
