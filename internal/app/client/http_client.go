package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"payanam/internal/app/client/config"
	"payanam/internal/domain/trip"
	"payanam/internal/domain/user"
)

const defaultRequestTimeout = 30 * time.Second

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

var _ RemoteTripStore = (*httpClient)(nil)

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	baseURL, err := buildBaseURL(cfg.ServerAddress, cfg.EnableTLS)
	if err != nil {
		return nil, err
	}

	return &httpClient{
		client:    client,
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   baseURL,
		userAgent: "Payanam-Client/1.0",
	}, nil
}

// buildBaseURL принимает как host:port, так и полный URL
func buildBaseURL(address string, enableTLS bool) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("адрес сервера не задан")
	}

	if !strings.Contains(address, "://") {
		scheme := "http://"
		if enableTLS {
			scheme = "https://"
		}
		address = scheme + address
	}

	u, err := url.Parse(address)
	if err != nil || u.Host == "" || u.Hostname() == "" {
		return "", fmt.Errorf("некорректный адрес сервера %q", address)
	}
	return strings.TrimRight(address, "/"), nil
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/health", "", nil)
	if err != nil {
		return &RemoteCallError{Op: "health", Err: err}
	}
	return h.parseResponse("health", resp, nil)
}

func (h *httpClient) Register(ctx context.Context, req user.SignupRequest) (user.AuthResponse, error) {
	return h.auth(ctx, "signup", "/api/auth/signup", req)
}

func (h *httpClient) Login(ctx context.Context, req user.LoginRequest) (user.AuthResponse, error) {
	return h.auth(ctx, "login", "/api/auth/login", req)
}

func (h *httpClient) auth(ctx context.Context, op, path string, body any) (user.AuthResponse, error) {
	var out user.AuthResponse

	resp, err := h.doRequest(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return out, &RemoteCallError{Op: op, Err: err}
	}
	if err := h.parseResponse(op, resp, &out); err != nil {
		return out, err
	}
	if out.Token == "" {
		return out, &RemoteCallError{Op: op, Status: resp.StatusCode, Err: errors.New("в ответе нет токена")}
	}
	return out, nil
}

// ListTrips возвращает поездки владельца токена, новые первыми
func (h *httpClient) ListTrips(ctx context.Context, token string) ([]trip.Trip, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/trips", token, nil)
	if err != nil {
		return nil, &RemoteCallError{Op: "list trips", Err: err}
	}

	trips := []trip.Trip{}
	if err := h.parseResponse("list trips", resp, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (h *httpClient) CreateTrip(ctx context.Context, token string, d trip.Draft) (trip.Trip, error) {
	var created trip.Trip

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/trips", token, d)
	if err != nil {
		return created, &RemoteCallError{Op: "create trip", Err: err}
	}
	if err := h.parseResponse("create trip", resp, &created); err != nil {
		return trip.Trip{}, err
	}
	return created, nil
}

func (h *httpClient) UpdateTrip(ctx context.Context, token, id string, p trip.Patch) (trip.Trip, error) {
	var updated trip.Trip

	resp, err := h.doRequest(ctx, http.MethodPut, "/api/trips/"+url.PathEscape(id), token, p)
	if err != nil {
		return updated, &RemoteCallError{Op: "update trip", Err: err}
	}
	if err := h.parseResponse("update trip", resp, &updated); err != nil {
		return trip.Trip{}, err
	}
	return updated, nil
}

func (h *httpClient) DeleteTrip(ctx context.Context, token, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/trips/"+url.PathEscape(id), token, nil)
	if err != nil {
		return &RemoteCallError{Op: "delete trip", Err: err}
	}
	return h.parseResponse("delete trip", resp, nil)
}

func (h *httpClient) doRequest(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

// errorBody покрывает problem+json ответы сервера и простые {"message": ...}
type errorBody struct {
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Errors  []struct {
		Message  string `json:"message"`
		Location string `json:"location"`
	} `json:"errors"`
}

func (b errorBody) text() string {
	var parts []string
	for _, s := range []string{b.Detail, b.Message, b.Error} {
		if s != "" {
			parts = append(parts, s)
			break
		}
	}
	if len(parts) == 0 && b.Title != "" {
		parts = append(parts, b.Title)
	}
	for _, e := range b.Errors {
		if e.Location != "" {
			parts = append(parts, e.Location+": "+e.Message)
		} else if e.Message != "" {
			parts = append(parts, e.Message)
		}
	}
	return strings.Join(parts, "; ")
}

func (h *httpClient) parseResponse(op string, resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteCallError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("ошибка чтения ответа: %w", err)}
	}

	h.log.Debug("Получен ответ",
		"op", op,
		"status", resp.StatusCode,
		"size", len(body),
	)

	if resp.StatusCode >= 400 {
		return &RemoteCallError{Op: op, Status: resp.StatusCode, Err: statusError(resp.StatusCode, body)}
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return &RemoteCallError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("ошибка парсинга ответа: %w", err)}
		}
	}

	return nil
}

func statusError(status int, body []byte) error {
	var eb errorBody
	msg := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		msg = eb.text()
	}

	var sentinel error
	switch status {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	}

	switch {
	case sentinel != nil && msg != "":
		return fmt.Errorf("%w: %s", sentinel, msg)
	case sentinel != nil:
		return sentinel
	case msg != "":
		return errors.New(msg)
	default:
		return errors.New(http.StatusText(status))
	}
}
