package models

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// LoginRequest is the body of POST /login. A request that fails validation
// is answered like a wrong password.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TaskCreate is the body of POST /tasks/add.
// Omitted optional fields fall back to their defaults.
type TaskCreate struct {
	Title       string  `json:"title" validate:"required,notblank"`
	Description *string `json:"description,omitempty"`
	Status      *bool   `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,notblank,max=32"`
}

// TaskUpdate is the body of PUT /tasks/update/{id}.
// Only non-nil fields will be updated (partial update support).
type TaskUpdate struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,notblank"`
	Description *string `json:"description,omitempty"`
	Status      *bool   `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,notblank,max=32"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil
}
