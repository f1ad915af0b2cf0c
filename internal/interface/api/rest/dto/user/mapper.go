package user

import (
	"docmanager-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:       uDomain.ID,
		Username: uDomain.Username,
		Name:     uDomain.Name,
		Role:     string(uDomain.Role),
	}
	if !uDomain.CreatedAt.IsZero() {
		createdAt := uDomain.CreatedAt
		u.CreatedAt = &createdAt
	}
	if !uDomain.UpdatedAt.IsZero() {
		updatedAt := uDomain.UpdatedAt
		u.UpdatedAt = &updatedAt
	}

	return u
}

func ToResponseWithDocCounts(ssDomain user.Summaries) WithDocCounts {
	us := make(WithDocCounts, len(ssDomain))
	for idx, s := range ssDomain {
		us[idx] = WithDocCount{
			User:          ToResponseUser(s.User),
			DocumentCount: s.DocumentCount,
		}
	}

	return us
}
