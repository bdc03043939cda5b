package model

type User struct {
	ID           string `json:"user_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Ctime        int64  `json:"ctime"`
}
