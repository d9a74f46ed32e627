package user

import (
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type UserContainer struct {
	Handler *Handler
	Repo    UserRepository
	Service UserService
}

func NewUserContainer(db *gorm.DB, oauthConfig *oauth2.Config, ttl TokenTTL) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, oauthConfig, ttl)
	handler := NewHandler(service)

	return &UserContainer{
		Handler: handler,
		Repo:    repo,
		Service: service,
	}
}
