package user

import "time"

type User struct {
	ID        string
	Name      string
	Email     string
	Password  string // хэш
	CreatedAt time.Time
}

// Profile - публичные данные пользователя
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}

type SignupRequest struct {
	Name     string `json:"name" minLength:"1"`
	Email    string `json:"email" format:"email"`
	Password string `json:"password" minLength:"1"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse - ответ на регистрацию и вход
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
