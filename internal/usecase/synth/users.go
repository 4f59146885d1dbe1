package synth

import (
	"context"

	"fakedata/internal/domain/dataset"
)

const userStatusFallback = "Online shopper"

func (b *Builder) Users(ctx context.Context, n int) []dataset.User {
	users := make([]dataset.User, 0, max(n, 0))
	for i := 0; i < n; i++ {
		username := b.fields.Username()
		users = append(users, dataset.User{
			UserID:           b.fields.ID(),
			Username:         username,
			Email:            b.fields.Email(),
			Country:          b.fields.Country(),
			RegistrationDate: b.fields.TimeThisDecade(),
			Status: b.enrich(ctx,
				"Write a short profile status for a user named "+username,
				defaultMaxOutputTokens,
				userStatusFallback,
			),
			IsPremium:     b.fields.Bool(),
			DateOfBirth:   b.fields.DateOfBirth(dataset.CustomerAge.Lo, dataset.CustomerAge.Hi),
			DeviceType:    b.fields.Choice(dataset.DeviceTypes),
			LastLoginTime: b.fields.TimeThisYear(),
		})
	}
	return users
}
