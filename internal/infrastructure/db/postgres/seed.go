package postgres

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

// SeedUsers inserts a dev admin and a dev shopper. Dev environments only.
func SeedUsers(ctx context.Context, repo SeederRepo, hasher SeederHasher) {
	type seedUser struct {
		Username string
		Email    string
		Pass     string
		Admin    bool
	}

	seeds := []seedUser{
		{Username: "admin", Email: "admin@example.com", Pass: "AdminPassword123!", Admin: true},
		{Username: "shopper", Email: "shopper@example.com", Pass: "ShopperPassword123!", Admin: false},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			log.Printf("[seed] hash failed (%s): %v", s.Email, err)
			continue
		}

		u := domain.User{
			ID:           uuid.NewString(),
			Username:     s.Username,
			Email:        s.Email,
			PasswordHash: hash,
			IsAdmin:      s.Admin,
		}

		if _, err := repo.Create(ctx, u); err != nil {
			// ignore duplicates (restart safe)
			continue
		}
	}

	log.Println("[seed] postgres users seeded")
}
