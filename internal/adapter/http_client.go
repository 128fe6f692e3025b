package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	// hasher signs request bodies with the HashSHA256 header; nil disables
	// signing.
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// adapterCfg.HTTPAddress may omit the scheme, "http" is assumed. A non-empty
// hashKey enables request body signing.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, hashKey string, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}
	if hashKey != "" {
		a.hasher = utils.NewHasher(hashKey)
	}

	a.client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		a.logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("api call")
		return nil
	})

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Status(ctx context.Context) (models.StatusResponse, error) {
	var status models.StatusResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/")
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusResponse{}, err
	}

	return status, nil
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.UserResponse, error) {
	var user models.UserResponse

	request, err := h.signed(h.client.R().SetContext(ctx), req)
	if err != nil {
		return models.UserResponse{}, err
	}

	resp, err := request.SetResult(&user).Post("/register")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

// Login stores the access token from the response body. The Authorization
// response header is used when the body carries none.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error) {
	var token models.TokenResponse

	request, err := h.signed(h.client.R().SetContext(ctx), req)
	if err != nil {
		return models.TokenResponse{}, err
	}

	resp, err := request.SetResult(&token).Post("/login")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}

	if token.AccessToken == "" {
		token.AccessToken, err = utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return models.TokenResponse{}, fmt.Errorf("login parse bearer token: %w", err)
		}
		token.TokenType = models.TokenTypeBearer
	}

	h.SetToken(token.AccessToken)
	return token, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	var user models.UserResponse

	request, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserResponse{}, err
	}

	resp, err := request.SetResult(&user).Get("/users/me")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) AddTask(ctx context.Context, req models.TaskCreate) (models.Task, error) {
	var task models.Task

	request, err := h.authedRequest(ctx)
	if err != nil {
		return models.Task{}, err
	}
	if request, err = h.signed(request, req); err != nil {
		return models.Task{}, err
	}

	resp, err := request.SetResult(&task).Post("/tasks/add")
	if err != nil {
		return models.Task{}, fmt.Errorf("add task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (h *httpServerAdapter) ListTasks(ctx context.Context) ([]models.Task, error) {
	request, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := request.Get("/tasks")
	if err != nil {
		return nil, fmt.Errorf("list tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	tasks := []models.Task{}
	if err = json.Unmarshal(resp.Body(), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks response: %w", err)
	}

	return tasks, nil
}

func (h *httpServerAdapter) GetTask(ctx context.Context, taskID int64) (models.Task, error) {
	var task models.Task

	request, err := h.authedRequest(ctx)
	if err != nil {
		return models.Task{}, err
	}

	resp, err := request.
		SetPathParam("id", strconv.FormatInt(taskID, 10)).
		SetResult(&task).
		Get("/tasks/{id}")
	if err != nil {
		return models.Task{}, fmt.Errorf("get task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (h *httpServerAdapter) UpdateTask(ctx context.Context, taskID int64, update models.TaskUpdate) (models.Task, error) {
	var task models.Task

	request, err := h.authedRequest(ctx)
	if err != nil {
		return models.Task{}, err
	}
	if request, err = h.signed(request, update); err != nil {
		return models.Task{}, err
	}

	resp, err := request.
		SetPathParam("id", strconv.FormatInt(taskID, 10)).
		SetResult(&task).
		Put("/tasks/update/{id}")
	if err != nil {
		return models.Task{}, fmt.Errorf("update task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (h *httpServerAdapter) DeleteTask(ctx context.Context, taskID int64) error {
	request, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := request.
		SetPathParam("id", strconv.FormatInt(taskID, 10)).
		Delete("/tasks/delete/{id}")
	if err != nil {
		return fmt.Errorf("delete task request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

// signed sets body as the JSON payload of req and, when a hash key is
// configured, signs it with the HashSHA256 header.
func (h *httpServerAdapter) signed(req *resty.Request, body any) (*resty.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	if h.hasher != nil {
		req.SetHeader(utils.HashHeader, h.hasher.HexSum(payload))
	}
	return req.SetBody(payload), nil
}
