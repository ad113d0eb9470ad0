package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/algojudge.net/internal/config"
	"gitlab.com/algojudge.net/internal/core/services/auth"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/handlers/response"
	"gitlab.com/algojudge.net/internal/static/errs"
)

type ServiceDependencies struct {
	GGAuthService    auth.IAuthService
	LocalAuthService auth.IAuthService
	Registrar        auth.IRegistrar
}

// GoogleUser struct to decode Google API response
type GoogleUser struct {
	ID    string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Handler struct {
	providerHandler map[domain.Provider]auth.IAuthService
	registrar       auth.IRegistrar
	oauthConfig     *oauth2.Config
}

func NewHandler(ggConfig *config.GGAuthConfig) *Handler {
	return &Handler{
		providerHandler: make(map[domain.Provider]auth.IAuthService),
		oauthConfig: &oauth2.Config{
			ClientID:     ggConfig.ClientID,
			ClientSecret: ggConfig.ClientSecret,
			RedirectURL:  ggConfig.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, svcDep *ServiceDependencies) {
	h.providerHandler[domain.ProviderGoogle] = svcDep.GGAuthService
	h.providerHandler[domain.ProviderLocal] = svcDep.LocalAuthService
	h.registrar = svcDep.Registrar
	router.HandleFunc("/auth/signup", h.SignUp).Methods("POST")
	router.HandleFunc("/auth/signin", h.SignIn).Methods("POST")
	router.HandleFunc("/auth/google", h.GoogleLoginHandler)
	router.HandleFunc("/auth/callback", h.GoogleCallbackHandler).Methods("GET")
}

// SignUpRequest represents a local account creation request
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// SignInRequest represents a local login request
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp creates a local account and signs it in
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	var email *string
	if req.Email != "" {
		email = &req.Email
	}

	user, err := h.registrar.Register(r.Context(), req.Username, req.Password, email)
	if err != nil {
		if errors.Is(err, errs.UserNameTaken) {
			h.writeError(w, err.Error(), http.StatusConflict)
			return
		}
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	loginResponse, err := h.providerHandler[domain.ProviderLocal].Login(r.Context(), &domain.Users{
		UserName:     user.UserName,
		PasswordHash: &req.Password,
	})
	if err != nil {
		h.writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusCreated)
	response.WriteSuccess(w, loginResponse)
}

// SignIn authenticates a local account
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	loginResponse, err := h.providerHandler[domain.ProviderLocal].Login(r.Context(), &domain.Users{
		UserName:     req.Username,
		PasswordHash: &req.Password,
	})
	if err != nil {
		h.writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	response.WriteSuccess(w, loginResponse)
}

// GoogleLoginHandler redirects user to Google OAuth2 login
func (h *Handler) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("randomstate")
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler handles Google OAuth2 callback
func (h *Handler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	// Get authorization code from URL
	code := r.URL.Query().Get("code")
	if code == "" {
		h.writeError(w, "No code in URL", http.StatusBadRequest)
		return
	}
	// Exchange code for access token
	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		h.writeError(w, "Failed to get token", http.StatusInternalServerError)
		return
	}
	// Fetch user info from Google API
	client := h.oauthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		h.writeError(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()
	// Decode Google user info
	var googleUser GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		h.writeError(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}
	// Return JWT to client
	loginResponse, err := h.providerHandler[domain.ProviderGoogle].Login(ctx, &domain.Users{
		GoogleID:     &googleUser.ID,
		Email:        &googleUser.Email,
		AuthProvider: string(domain.ProviderGoogle),
	})
	if err != nil {
		h.writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	response.WriteSuccess(w, loginResponse)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	response.WriteError(w, response.ErrorMessage{
		Message:    message,
		StatusCode: code,
	})
}
