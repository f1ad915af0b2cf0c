package user

import (
	domain "docmanager-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:           model.ID,
		Username:     model.Username,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		Role:         domain.Role(model.Role),

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}

func fromDBSummaries(models Summaries) domain.Summaries {
	ss := make(domain.Summaries, len(models))
	for idx, s := range models {
		ss[idx] = &domain.Summary{
			User:          *fromDBModel(&s.User),
			DocumentCount: s.DocumentCount,
		}
	}

	return ss
}
