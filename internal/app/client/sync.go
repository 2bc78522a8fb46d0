package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"payanam/internal/domain/trip"
)

// RemoteTripStore - серверное хранилище поездок, источник истины для контроллера
type RemoteTripStore interface {
	ListTrips(ctx context.Context, token string) ([]trip.Trip, error)
	CreateTrip(ctx context.Context, token string, d trip.Draft) (trip.Trip, error)
	UpdateTrip(ctx context.Context, token, id string, p trip.Patch) (trip.Trip, error)
	DeleteTrip(ctx context.Context, token, id string) error
}

// Owner - пользователь, чьи поездки держит контроллер
type Owner struct {
	ID    string `json:"ownerId"`
	Token string `json:"-"`
}

// IsZero сообщает, что владельца нет (пользователь вышел)
func (o Owner) IsZero() bool {
	return o.ID == "" && o.Token == ""
}

// State - состояние загрузки коллекции
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// MutationStatus - итог оптимистичного изменения
type MutationStatus string

const (
	// MutationApplied - изменение применено локально и ждёт ответа сервера
	MutationApplied    MutationStatus = "applied"
	MutationConfirmed  MutationStatus = "confirmed"
	MutationRolledBack MutationStatus = "rolled_back"
	// MutationSkipped - изменение ничего не меняло, сервер не вызывался
	MutationSkipped MutationStatus = "skipped"
)

// Mutation - результат изменения. Cause заполнено при откате.
type Mutation struct {
	TripID string
	Status MutationStatus
	Cause  error
}

// SyncConfig конфигурация синхронизации
type SyncConfig struct {
	// ReconcileOnSuccess заменяет локальную копию поездки ответом сервера
	// после подтвержденного изменения
	ReconcileOnSuccess bool `json:"reconcile_on_success"`
}

// SyncStats статистика синхронизации
type SyncStats struct {
	TotalLoads      int       `json:"total_loads"`
	TotalFailed     int       `json:"total_failed_loads"`
	TotalConfirmed  int       `json:"total_confirmed"`
	TotalRolledBack int       `json:"total_rolled_back"`
	TotalSkipped    int       `json:"total_skipped"`
	TotalReconciles int       `json:"total_reconciles"`
	LastSuccessful  time.Time `json:"last_successful"`
	LastFailed      time.Time `json:"last_failed"`
}

// SyncController держит рабочую копию поездок текущего пользователя.
// Изменения применяются локально сразу, затем отправляются на сервер;
// при сбое рабочая копия заменяется свежей загрузкой с сервера.
//
// Блокировка не удерживается во время обращений к серверу. Ответы на
// запросы, отправленные до смены владельца или до более новой загрузки,
// отбрасываются.
type SyncController struct {
	store  RemoteTripStore
	cache  TripCache
	log    *slog.Logger
	config SyncConfig
	now    func() time.Time

	mu         sync.RWMutex
	owner      Owner
	epoch      uint64
	loadSeq    uint64
	state      State
	trips      []trip.Trip
	selectedID string
	inflight   int
	stats      SyncStats
}

// NewSyncController создает контроллер. cache может быть nil.
func NewSyncController(store RemoteTripStore, cache TripCache, log *slog.Logger, cfg SyncConfig) *SyncController {
	return &SyncController{
		store:  store,
		cache:  cache,
		log:    log,
		config: cfg,
		now:    time.Now,
	}
}

// LoadAll загружает поездки владельца с сервера. Смена владельца сбрасывает
// коллекцию и выбор; нулевой владелец оставляет контроллер пустым.
func (c *SyncController) LoadAll(ctx context.Context, owner Owner) error {
	c.mu.Lock()
	if owner != c.owner {
		c.owner = owner
		c.epoch++
		c.trips = nil
		c.selectedID = ""
		c.state = StateIdle
	}
	if owner.IsZero() {
		// отменяем загрузки, начатые для прежнего владельца
		c.loadSeq++
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.load(ctx)
}

// Reset забывает владельца и все его данные
func (c *SyncController) Reset() {
	_ = c.LoadAll(context.Background(), Owner{})
}

func (c *SyncController) load(ctx context.Context) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	owner := c.owner
	c.state = StateLoading
	c.mu.Unlock()

	c.log.Debug("Загрузка поездок", "owner", owner.ID)

	trips, err := c.store.ListTrips(ctx, owner.Token)

	c.mu.Lock()
	if seq != c.loadSeq {
		c.mu.Unlock()
		c.log.Debug("Результат устаревшей загрузки отброшен", "owner", owner.ID)
		return nil
	}
	if err != nil {
		c.state = StateIdle
		c.stats.TotalFailed++
		c.stats.LastFailed = c.now()
		c.mu.Unlock()
		c.log.Error("Ошибка загрузки поездок", "owner", owner.ID, "error", err)
		return fmt.Errorf("load trips: %w", err)
	}

	c.trips = cloneTrips(trips)
	c.state = StateReady
	c.stats.TotalLoads++
	c.stats.LastSuccessful = c.now()
	snapshot := cloneTrips(c.trips)
	c.mu.Unlock()

	c.log.Info("Поездки загружены", "owner", owner.ID, "count", len(snapshot))
	c.saveSnapshot(owner.ID, snapshot)
	return nil
}

// reconcile отбрасывает рабочую копию и загружает её заново для текущего владельца
func (c *SyncController) reconcile(ctx context.Context) error {
	c.mu.Lock()
	c.trips = nil
	c.stats.TotalReconciles++
	owner := c.owner
	c.mu.Unlock()

	if owner.IsZero() {
		return nil
	}
	return c.load(ctx)
}

// Select делает поездку текущей. Неизвестный id снимает выбор.
func (c *SyncController) Select(id string) (trip.Trip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		c.selectedID = id
		return c.trips[i].Clone(), true
	}
	c.selectedID = ""
	return trip.Trip{}, false
}

// Current возвращает текущую поездку. После перезагрузки выбор указывает
// на поездку с тем же id либо отсутствует.
func (c *SyncController) Current() (trip.Trip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.selectedID == "" {
		return trip.Trip{}, false
	}
	if i := c.indexOf(c.selectedID); i >= 0 {
		return c.trips[i].Clone(), true
	}
	return trip.Trip{}, false
}

// Trips возвращает копию коллекции, новые поездки первыми
func (c *SyncController) Trips() []trip.Trip {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTrips(c.trips)
}

// Trip возвращает поездку по id
func (c *SyncController) Trip(id string) (trip.Trip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.trips[i].Clone(), true
	}
	return trip.Trip{}, false
}

func (c *SyncController) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Loading сообщает, что загрузка коллекции еще идет
func (c *SyncController) Loading() bool {
	return c.State() == StateLoading
}

// Pending - число изменений, ожидающих ответа сервера
func (c *SyncController) Pending() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight
}

func (c *SyncController) Owner() Owner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owner
}

func (c *SyncController) Stats() SyncStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Create создает поездку на сервере и добавляет её в начало коллекции.
// Создание не оптимистично: идентификатор назначает сервер.
func (c *SyncController) Create(ctx context.Context, d trip.Draft) (trip.Trip, error) {
	if err := d.Validate(); err != nil {
		return trip.Trip{}, err
	}

	c.mu.RLock()
	owner, epoch := c.owner, c.epoch
	c.mu.RUnlock()
	if owner.IsZero() {
		return trip.Trip{}, ErrNoSession
	}

	created, err := c.store.CreateTrip(ctx, owner.Token, d.WithDefaults())
	if err != nil {
		c.log.Error("Ошибка создания поездки", "error", err)
		return trip.Trip{}, fmt.Errorf("create trip: %w", err)
	}

	c.mu.Lock()
	if epoch == c.epoch && c.indexOf(created.ID) < 0 {
		c.trips = append([]trip.Trip{created.Clone()}, c.trips...)
	}
	c.mu.Unlock()

	c.log.Info("Поездка создана", "id", created.ID, "title", created.Title)
	return created.Clone(), nil
}

// Update применяет патч к поездке
func (c *SyncController) Update(ctx context.Context, id string, p trip.Patch) (Mutation, error) {
	if p.IsEmpty() {
		return c.skip(id), nil
	}
	return c.mutate(ctx, id, func(trip.Trip) (trip.Patch, bool, error) {
		return p, true, nil
	})
}

// InsertActivity добавляет занятие в день плана. Пустой id занятия
// заменяется новым. Дубликат по (название, время, категория) пропускается.
func (c *SyncController) InsertActivity(ctx context.Context, tripID, date string, a trip.Activity) (Mutation, error) {
	if err := trip.ValidateDate(date); err != nil {
		return Mutation{TripID: tripID}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := a.Validate(); err != nil {
		return Mutation{TripID: tripID}, err
	}

	return c.mutate(ctx, tripID, func(t trip.Trip) (trip.Patch, bool, error) {
		next := trip.InsertActivity(t.Itinerary, date, a)
		if next.Equal(t.Itinerary) {
			return trip.Patch{}, false, nil
		}
		return trip.ItineraryPatch(next), true, nil
	})
}

// RemoveActivity удаляет занятие из дня плана. Опустевший день удаляется,
// если это не день начала поездки.
func (c *SyncController) RemoveActivity(ctx context.Context, tripID, date, activityID string) (Mutation, error) {
	return c.mutate(ctx, tripID, func(t trip.Trip) (trip.Patch, bool, error) {
		next := trip.RemoveActivity(t.Itinerary, t.StartDate, date, activityID)
		if next.Equal(t.Itinerary) {
			return trip.Patch{}, false, nil
		}
		return trip.ItineraryPatch(next), true, nil
	})
}

// Delete удаляет поездку локально и на сервере
func (c *SyncController) Delete(ctx context.Context, id string) (Mutation, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.stats.TotalSkipped++
		c.mu.Unlock()
		return Mutation{TripID: id, Status: MutationSkipped}, nil
	}
	c.trips = append(c.trips[:i:i], c.trips[i+1:]...)
	c.inflight++
	owner, epoch := c.owner, c.epoch
	c.mu.Unlock()

	c.log.Debug("Поездка удалена локально", "id", id)

	err := c.store.DeleteTrip(ctx, owner.Token, id)
	c.done()
	if err != nil {
		return c.rollback(ctx, id, epoch, err)
	}

	c.confirm(id, epoch, nil)
	return Mutation{TripID: id, Status: MutationConfirmed}, nil
}

// mutate вычисляет патч от текущего состояния поездки и применяет его под
// одной блокировкой, затем отправляет патч на сервер
func (c *SyncController) mutate(ctx context.Context, id string, build func(trip.Trip) (trip.Patch, bool, error)) (Mutation, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return c.skip(id), nil
	}

	patch, changed, err := build(c.trips[i])
	if err != nil {
		c.mu.Unlock()
		return Mutation{TripID: id}, err
	}
	if !changed {
		c.mu.Unlock()
		return c.skip(id), nil
	}

	updated, err := patch.Apply(c.trips[i])
	if err != nil {
		c.mu.Unlock()
		return Mutation{TripID: id}, err
	}
	c.trips[i] = updated
	c.inflight++
	owner, epoch := c.owner, c.epoch
	c.mu.Unlock()

	c.log.Debug("Изменение применено локально", "id", id, "status", MutationApplied)

	confirmed, err := c.store.UpdateTrip(ctx, owner.Token, id, patch)
	c.done()
	if err != nil {
		return c.rollback(ctx, id, epoch, err)
	}

	c.confirm(id, epoch, &confirmed)
	return Mutation{TripID: id, Status: MutationConfirmed}, nil
}

func (c *SyncController) skip(id string) Mutation {
	c.mu.Lock()
	c.stats.TotalSkipped++
	c.mu.Unlock()

	c.log.Debug("Изменение пропущено", "id", id)
	return Mutation{TripID: id, Status: MutationSkipped}
}

func (c *SyncController) done() {
	c.mu.Lock()
	c.inflight--
	c.mu.Unlock()
}

func (c *SyncController) confirm(id string, epoch uint64, confirmed *trip.Trip) {
	c.mu.Lock()
	c.stats.TotalConfirmed++
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	if c.config.ReconcileOnSuccess && confirmed != nil {
		if i := c.indexOf(id); i >= 0 && confirmed.ID == id {
			c.trips[i] = confirmed.Clone()
		}
	}
	owner := c.owner
	snapshot := cloneTrips(c.trips)
	c.mu.Unlock()

	c.log.Debug("Изменение подтверждено сервером", "id", id)
	c.saveSnapshot(owner.ID, snapshot)
}

// rollback заменяет рабочую копию данными сервера. Ошибка возвращается,
// только если не удалось и восстановление.
func (c *SyncController) rollback(ctx context.Context, id string, epoch uint64, cause error) (Mutation, error) {
	c.mu.Lock()
	c.stats.TotalRolledBack++
	c.stats.LastFailed = c.now()
	stale := epoch != c.epoch
	c.mu.Unlock()

	m := Mutation{TripID: id, Status: MutationRolledBack, Cause: cause}
	c.log.Warn("Сервер отклонил изменение, восстанавливаем данные", "id", id, "error", cause)

	if stale {
		// владелец сменился, его загрузка уже заменила коллекцию
		return m, nil
	}
	if err := c.reconcile(ctx); err != nil {
		return m, fmt.Errorf("reconcile after failed change: %w", err)
	}
	return m, nil
}

func (c *SyncController) saveSnapshot(ownerID string, trips []trip.Trip) {
	if c.cache == nil || ownerID == "" {
		return
	}
	if err := c.cache.SaveTrips(ownerID, trips); err != nil {
		c.log.Warn("Не удалось сохранить локальную копию поездок", "error", err)
	}
}

func (c *SyncController) indexOf(id string) int {
	for i := range c.trips {
		if c.trips[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneTrips(trips []trip.Trip) []trip.Trip {
	out := make([]trip.Trip, len(trips))
	for i := range trips {
		out[i] = trips[i].Clone()
	}
	return out
}
