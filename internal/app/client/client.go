package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"payanam/internal/app/client/config"
	"payanam/internal/domain/currency"
	"payanam/internal/domain/trip"
	"payanam/internal/domain/user"
)

// AuthClient - публичные операции сервера, не требующие токена
type AuthClient interface {
	HealthCheck(ctx context.Context) error
	Register(ctx context.Context, req user.SignupRequest) (user.AuthResponse, error)
	Login(ctx context.Context, req user.LoginRequest) (user.AuthResponse, error)
}

type App struct {
	config    *config.Config
	log       *slog.Logger
	auth      AuthClient
	cache     TripCache
	sync      *SyncController
	converter *currency.Converter
	state     *AppState
	creds     *Credentials
	mu        gosync.RWMutex
}

// AppState хранит состояние между запусками CLI
type AppState struct {
	CurrentTripID string    `json:"currentTripId,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	LastSync      time.Time `json:"lastSync,omitempty"`
}

// Credentials - содержимое token.json
type Credentials struct {
	OwnerID string       `json:"ownerId"`
	Token   string       `json:"token"`
	User    user.Profile `json:"user"`
}

func (c *Credentials) owner() Owner {
	if c == nil {
		return Owner{}
	}
	return Owner{ID: c.OwnerID, Token: c.Token}
}

// CreateTripRequest - черновик поездки с бюджетом в валюте отображения
type CreateTripRequest struct {
	Draft          trip.Draft
	BudgetCurrency currency.Code
	Scaffold       bool
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	var cache TripCache
	sqliteStorage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		cache = NewMemoryStorage()
	} else {
		cache = sqliteStorage
	}

	return NewApp(cfg, log, httpCl, httpCl, cache)
}

// NewApp собирает клиент из готовых зависимостей
func NewApp(cfg *config.Config, log *slog.Logger, auth AuthClient, store RemoteTripStore, cache TripCache) (*App, error) {
	converter, err := newConverter(cfg.Rates)
	if err != nil {
		return nil, err
	}

	state, err := loadAppState(cfg.StatePath)
	if err != nil {
		log.Warn("Не удалось загрузить состояние приложения", "error", err)
		state = &AppState{}
	}
	if state.Currency == "" {
		state.Currency = cfg.Currency
	}

	creds, err := loadCredentials(cfg.TokenPath)
	if err != nil {
		log.Warn("Не удалось прочитать токен", "error", err)
	}

	return &App{
		config:    cfg,
		log:       log,
		auth:      auth,
		cache:     cache,
		sync:      NewSyncController(store, cache, log, SyncConfig{ReconcileOnSuccess: cfg.ReconcileOnSuccess}),
		converter: converter,
		state:     state,
		creds:     creds,
	}, nil
}

func newConverter(rates map[string]float64) (*currency.Converter, error) {
	if len(rates) == 0 {
		return currency.Default(), nil
	}
	overrides := make(map[currency.Code]float64, len(rates))
	for code, rate := range rates {
		overrides[currency.ParseCode(code)] = rate
	}
	c, err := currency.Default().WithRates(overrides)
	if err != nil {
		return nil, fmt.Errorf("ошибка настройки курсов валют: %w", err)
	}
	return c, nil
}

func loadAppState(path string) (*AppState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &AppState{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// saveAppState вызывается под a.mu
func (a *App) saveAppState() error {
	data, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.config.StatePath, data, 0600)
}

func loadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения токена: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("поврежден файл токена: %w", err)
	}
	if creds.OwnerID == "" || creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

func (a *App) saveCredentials(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.config.TokenPath, data, 0600); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	return nil
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection(ctx context.Context) error {
	return a.auth.HealthCheck(ctx)
}

// IsAuthenticated проверяет, есть ли сохраненный токен
func (a *App) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.creds != nil
}

// Profile возвращает данные вошедшего пользователя
func (a *App) Profile() (user.Profile, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.creds == nil {
		return user.Profile{}, false
	}
	return a.creds.User, true
}

// Register регистрирует пользователя и сразу выполняет вход
func (a *App) Register(ctx context.Context, req user.SignupRequest) (user.Profile, error) {
	resp, err := a.auth.Register(ctx, req)
	if err != nil {
		return user.Profile{}, err
	}

	if err := a.startSession(resp); err != nil {
		return user.Profile{}, err
	}
	a.log.Info("Пользователь успешно зарегистрирован", "email", resp.User.Email)
	return resp.User, nil
}

// Login выполняет вход пользователя
func (a *App) Login(ctx context.Context, req user.LoginRequest) (user.Profile, error) {
	resp, err := a.auth.Login(ctx, req)
	if err != nil {
		return user.Profile{}, err
	}

	if err := a.startSession(resp); err != nil {
		return user.Profile{}, err
	}
	a.log.Info("Вход выполнен успешно", "email", resp.User.Email)
	return resp.User, nil
}

func (a *App) startSession(resp user.AuthResponse) error {
	creds := &Credentials{OwnerID: resp.User.ID, Token: resp.Token, User: resp.User}
	if err := a.saveCredentials(creds); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Выбор поездки принадлежал прошлому владельцу
	if a.creds == nil || a.creds.OwnerID != creds.OwnerID {
		a.state.CurrentTripID = ""
		a.sync.Reset()
	}
	a.creds = creds
	if err := a.saveAppState(); err != nil {
		a.log.Warn("Не удалось сохранить состояние", "error", err)
	}
	return nil
}

// Logout удаляет токен и сбрасывает локальное состояние контроллера
func (a *App) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.Remove(a.config.TokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}

	a.creds = nil
	a.state.CurrentTripID = ""
	a.sync.Reset()

	if err := a.saveAppState(); err != nil {
		return fmt.Errorf("ошибка сохранения состояния: %w", err)
	}
	return nil
}

func (a *App) owner() (Owner, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.creds == nil {
		return Owner{}, ErrNoSession
	}
	return a.creds.owner(), nil
}

// Sync загружает поездки владельца и восстанавливает сохраненный выбор
func (a *App) Sync(ctx context.Context) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}

	if err := a.sync.LoadAll(ctx, owner); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.CurrentTripID != "" {
		if _, ok := a.sync.Select(a.state.CurrentTripID); !ok {
			a.log.Debug("Сохраненная поездка больше не существует", "trip_id", a.state.CurrentTripID)
			a.state.CurrentTripID = ""
		}
	}
	a.state.LastSync = time.Now().UTC()
	if err := a.saveAppState(); err != nil {
		a.log.Warn("Не удалось сохранить состояние", "error", err)
	}
	return nil
}

// Trips возвращает поездки из памяти контроллера
func (a *App) Trips() []trip.Trip {
	return a.sync.Trips()
}

// Trip возвращает поездку по идентификатору
func (a *App) Trip(id string) (trip.Trip, bool) {
	return a.sync.Trip(id)
}

// OfflineTrips читает последний сохраненный снимок без обращения к серверу
func (a *App) OfflineTrips() ([]trip.Trip, error) {
	owner, err := a.owner()
	if err != nil {
		return nil, err
	}
	return a.cache.ListTrips(owner.ID)
}

// Select делает поездку текущей и запоминает выбор
func (a *App) Select(id string) (trip.Trip, error) {
	t, ok := a.sync.Select(id)
	if !ok {
		return trip.Trip{}, ErrNotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.CurrentTripID = t.ID
	if err := a.saveAppState(); err != nil {
		return t, fmt.Errorf("ошибка сохранения состояния: %w", err)
	}
	return t, nil
}

// Current возвращает выбранную поездку
func (a *App) Current() (trip.Trip, bool) {
	return a.sync.Current()
}

// CreateTrip переводит бюджет в базовую валюту и создает поездку на сервере
func (a *App) CreateTrip(ctx context.Context, req CreateTripRequest) (trip.Trip, error) {
	d := req.Draft

	if d.Budget != 0 {
		from := req.BudgetCurrency
		if from == "" {
			from = a.Currency()
		}
		base, err := a.converter.ToBase(d.Budget, from)
		if err != nil {
			return trip.Trip{}, err
		}
		d.Budget = base
	}

	if req.Scaffold && len(d.Itinerary) == 0 {
		it, err := trip.ScaffoldItinerary(d.StartDate, d.EndDate)
		if err != nil {
			return trip.Trip{}, err
		}
		d.Itinerary = it
	}

	return a.sync.Create(ctx, d)
}

func (a *App) UpdateTrip(ctx context.Context, id string, p trip.Patch) (Mutation, error) {
	return a.sync.Update(ctx, id, p)
}

func (a *App) DeleteTrip(ctx context.Context, id string) (Mutation, error) {
	m, err := a.sync.Delete(ctx, id)
	if err != nil {
		return m, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.CurrentTripID == id && m.Status == MutationConfirmed {
		a.state.CurrentTripID = ""
		if err := a.saveAppState(); err != nil {
			a.log.Warn("Не удалось сохранить состояние", "error", err)
		}
	}
	return m, nil
}

func (a *App) AddActivity(ctx context.Context, tripID, date string, act trip.Activity) (Mutation, error) {
	return a.sync.InsertActivity(ctx, tripID, date, act)
}

func (a *App) RemoveActivity(ctx context.Context, tripID, date, activityID string) (Mutation, error) {
	return a.sync.RemoveActivity(ctx, tripID, date, activityID)
}

// Currency возвращает валюту отображения
func (a *App) Currency() currency.Code {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return currency.ParseCode(a.state.Currency)
}

// SetCurrency меняет валюту отображения и запоминает ее
func (a *App) SetCurrency(code currency.Code) error {
	if !a.converter.Supports(code) {
		return fmt.Errorf("%w: %s", currency.ErrUnknownCurrency, code)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Currency = string(code)
	return a.saveAppState()
}

// UseCurrency меняет валюту отображения только для текущего запуска
func (a *App) UseCurrency(code currency.Code) error {
	if !a.converter.Supports(code) {
		return fmt.Errorf("%w: %s", currency.ErrUnknownCurrency, code)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Currency = string(code)
	return nil
}

// ToBase переводит сумму из валюты отображения в базовую
func (a *App) ToBase(amount float64) (float64, error) {
	return a.converter.ToBase(amount, a.Currency())
}

// FormatAmount форматирует сумму в базовой валюте в валюте отображения
func (a *App) FormatAmount(amountInBase float64) string {
	s, err := a.converter.Format(amountInBase, a.Currency())
	if err != nil {
		s, _ = a.converter.Format(amountInBase, currency.Base)
	}
	return s
}

// Stats возвращает счетчики синхронизации
func (a *App) Stats() SyncStats {
	return a.sync.Stats()
}

func (a *App) Close() error {
	return a.cache.Close()
}
