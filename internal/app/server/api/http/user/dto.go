package user

import "payanam/internal/domain/user"

type signupInput struct {
	Body user.SignupRequest
}

type loginInput struct {
	Body user.LoginRequest
}

type authOutput struct {
	Body user.AuthResponse
}
