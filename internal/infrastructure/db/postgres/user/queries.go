package user

const (
	SelectUserByID = `
		SELECT id, username, name, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	SelectUserByUsername = `
		SELECT id, username, name, password_hash, role, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	SelectUserSummaries = `
		SELECT u.id, u.username, u.name, u.role, u.created_at, u.updated_at, COUNT(d.id)
		FROM users u
		LEFT JOIN documents d ON d.uploaded_by = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC
	`
	InsertUser = `
		INSERT INTO users (username, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING
		  id, username, name, password_hash, role, created_at, updated_at
	`
	UpdatePasswordByID = `
		UPDATE users
		SET password_hash = $1,
		    updated_at = now()
		WHERE id = $2
		RETURNING
		  id, username, name, password_hash, role, created_at, updated_at
	`
)
