package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gitlab-gateway/internal/domain"
)

func New(config *Config, httpClient HTTPClient, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		token:      config.Token,
		perPage:    config.PerPage,
		timeout:    config.Timeout,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		logger:     logger,
	}
}

func (c *Client) FindUser(ctx context.Context, username string) (*domain.User, error) {
	query := url.Values{}
	query.Set("username", username)

	var users []gitlabUser
	_, err := c.do(ctx, http.MethodGet, "/api/v4/users", query, nil, &users)
	if err != nil {
		c.logger.Error("failed to look up user", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	for _, u := range users {
		if u.Username == username {
			c.logger.Info("resolved user", zap.String("username", username), zap.Int("user_id", u.ID))
			return &domain.User{ID: u.ID, Username: u.Username, Name: u.Name}, nil
		}
	}

	c.logger.Warn(domain.ErrUserNotFound.Error(), zap.String("username", username))
	return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
}

func (c *Client) ResolveGroup(ctx context.Context, path string) (*domain.Target, error) {
	query := url.Values{}
	query.Set("with_projects", "false")

	var group gitlabGroup
	_, err := c.do(ctx, http.MethodGet, "/api/v4/groups/"+escapePath(path), query, nil, &group)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: group %s", domain.ErrTargetNotFound, path)
		}

		c.logger.Error("failed to resolve group", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	c.logger.Info("resolved group", zap.String("path", path), zap.Int("group_id", group.ID))
	return &domain.Target{
		ID:   group.ID,
		Kind: domain.TargetGroup,
		Path: group.FullPath,
		Name: group.Name,
	}, nil
}

func (c *Client) ResolveProject(ctx context.Context, path string) (*domain.Target, error) {
	var project gitlabProject
	_, err := c.do(ctx, http.MethodGet, "/api/v4/projects/"+escapePath(path), nil, nil, &project)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: project %s", domain.ErrTargetNotFound, path)
		}

		c.logger.Error("failed to resolve project", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	c.logger.Info("resolved project", zap.String("path", path), zap.Int("project_id", project.ID))
	return &domain.Target{
		ID:   project.ID,
		Kind: domain.TargetProject,
		Path: project.PathWithNamespace,
		Name: project.Name,
	}, nil
}

func (c *Client) GetMember(ctx context.Context, target *domain.Target, userID int) (*domain.Member, error) {
	path := fmt.Sprintf("%s/%d", membersPath(target), userID)

	var member gitlabMember
	_, err := c.do(ctx, http.MethodGet, path, nil, nil, &member)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: user %d on %s %s", domain.ErrMemberNotFound, userID, target.Kind, target.Path)
		}

		c.logger.Error("failed to get member", zap.Int("user_id", userID), zap.String("target", target.Path), zap.Error(err))
		return nil, err
	}

	return &domain.Member{UserID: member.ID, AccessLevel: domain.Role(member.AccessLevel)}, nil
}

func (c *Client) AddMember(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error) {
	body := addMemberRequest{UserID: userID, AccessLevel: int(level)}

	var member gitlabMember
	_, err := c.do(ctx, http.MethodPost, membersPath(target), nil, body, &member)
	if err != nil {
		c.logger.Error("failed to add member",
			zap.Int("user_id", userID),
			zap.String("target", target.Path),
			zap.String("role", level.String()),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Info("added member",
		zap.Int("user_id", userID),
		zap.String("target", target.Path),
		zap.String("role", level.String()),
	)
	return &domain.Member{UserID: member.ID, AccessLevel: domain.Role(member.AccessLevel)}, nil
}

func (c *Client) UpdateMember(ctx context.Context, target *domain.Target, userID int, level domain.Role) (*domain.Member, error) {
	path := fmt.Sprintf("%s/%d", membersPath(target), userID)
	body := updateMemberRequest{AccessLevel: int(level)}

	var member gitlabMember
	_, err := c.do(ctx, http.MethodPut, path, nil, body, &member)
	if err != nil {
		c.logger.Error("failed to update member",
			zap.Int("user_id", userID),
			zap.String("target", target.Path),
			zap.String("role", level.String()),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Info("updated member",
		zap.Int("user_id", userID),
		zap.String("target", target.Path),
		zap.String("role", level.String()),
	)
	return &domain.Member{UserID: member.ID, AccessLevel: domain.Role(member.AccessLevel)}, nil
}

// do performs one request against the GitLab API. Failures with an HTTP
// status come back as *domain.UpstreamError carrying that status, so callers
// can translate a 404 into their own not-found sentinel. The returned header
// is nil on error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (http.Header, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, domain.WrapUpstreamError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapUpstreamError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		upstreamErr := domain.NewUpstreamError(resp.StatusCode, strings.TrimSpace(string(data)))
		if resp.StatusCode == http.StatusTooManyRequests {
			upstreamErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		}

		return nil, upstreamErr
	}

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return nil, domain.WrapUpstreamError(fmt.Errorf("failed to decode response: %w", err))
		}
	}

	return resp.Header, nil
}

func isStatus(err error, statusCode int) bool {
	var upstreamErr *domain.UpstreamError

	return errors.As(err, &upstreamErr) && upstreamErr.StatusCode == statusCode
}

func membersPath(target *domain.Target) string {
	return fmt.Sprintf("/api/v4/%ss/%d/members", target.Kind, target.ID)
}

// escapePath encodes a namespaced path as a single URL segment, as the
// GitLab API requires for /projects/:id and /groups/:id lookups.
func escapePath(path string) string {
	return url.PathEscape(path)
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
