package domain

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderLocal  Provider = "local"
)

// AuthPayload is the claim set carried inside issued tokens. UserID is the
// opaque caller identity recorded on persisted submissions.
type AuthPayload struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type LoginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
	Token    string `json:"accessToken"`
}
