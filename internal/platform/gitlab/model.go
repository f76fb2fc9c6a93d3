package gitlab

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	BaseURL   string        `env:"GITLAB_BASE_URL" env-default:"https://gitlab.com"`
	Token     string        `env:"GITLAB_TOKEN" env-required:"true"`
	Timeout   time.Duration `env:"GITLAB_TIMEOUT" env-default:"10s"`
	PerPage   int           `env:"GITLAB_PER_PAGE" env-default:"100"`
	RateLimit float64       `env:"GITLAB_RATE_LIMIT" env-default:"10"`
	RateBurst int           `env:"GITLAB_RATE_BURST" env-default:"5"`
}

// HTTPClient is the part of http.Client the adapter needs. Tests substitute
// their own implementation.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL    string
	token      string
	perPage    int
	timeout    time.Duration
	httpClient HTTPClient
	limiter    *rate.Limiter
	logger     *zap.Logger
}

type gitlabUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type gitlabGroup struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	FullPath string `json:"full_path"`
}

type gitlabProject struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
}

type gitlabMember struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	AccessLevel int    `json:"access_level"`
}

type gitlabItem struct {
	ID        int          `json:"id"`
	Title     string       `json:"title"`
	State     string       `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	WebURL    string       `json:"web_url"`
	Author    gitlabAuthor `json:"author"`
}

type gitlabAuthor struct {
	Username string `json:"username"`
}

type addMemberRequest struct {
	UserID      int `json:"user_id"`
	AccessLevel int `json:"access_level"`
}

type updateMemberRequest struct {
	AccessLevel int `json:"access_level"`
}
