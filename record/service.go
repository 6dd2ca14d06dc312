package record

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kasuganosora/pokebattle/game/battle"
	"github.com/kasuganosora/pokebattle/model"
)

const (
	queueSize     = 256
	batchSize     = 32
	flushInterval = 2 * time.Second
)

// Entry is one finished battle to persist.
type Entry struct {
	BattleID string
	SideA    string
	SideB    string
	Seed     int64
	Outcome  battle.Outcome
	Events   []battle.BattleEvent
	Stats    battle.Statistics
}

// Service persists battle records asynchronously in batches, so finishing a
// battle never blocks on the database.
type Service struct {
	db     *gorm.DB
	ch     chan *model.BattleRecord
	stopCh chan struct{}
	wg     sync.WaitGroup
	logger *zap.Logger
}

// New creates a record Service and starts its background writer.
func New(db *gorm.DB, logger *zap.Logger) *Service {
	svc := &Service{
		db:     db,
		ch:     make(chan *model.BattleRecord, queueSize),
		stopCh: make(chan struct{}),
		logger: logger,
	}
	svc.wg.Add(1)
	go svc.worker()
	return svc
}

// Save enqueues a finished battle for an async write. A full queue drops
// the record rather than stalling the arena.
func (svc *Service) Save(entry Entry) {
	eventsJSON, _ := json.Marshal(wireEvents(entry.Events))
	statsJSON, _ := json.Marshal(entry.Stats)
	rec := &model.BattleRecord{
		BattleID: entry.BattleID,
		SideA:    entry.SideA,
		SideB:    entry.SideB,
		Winner:   entry.Outcome.Winner,
		Draw:     entry.Outcome.Draw,
		Reason:   entry.Outcome.Reason,
		Turns:    entry.Outcome.Turns,
		Seed:     entry.Seed,
		Events:   datatypes.JSON(eventsJSON),
		Stats:    datatypes.JSON(statsJSON),
	}
	select {
	case svc.ch <- rec:
	default:
		svc.logger.Warn("record queue full, dropping battle record",
			zap.String("battle_id", entry.BattleID))
	}
}

// Recent returns the latest persisted records, newest first.
func (svc *Service) Recent(limit int) ([]model.BattleRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []model.BattleRecord
	err := svc.db.Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

// ByBattleID fetches one record.
func (svc *Service) ByBattleID(battleID string) (*model.BattleRecord, error) {
	var rec model.BattleRecord
	if err := svc.db.Where("battle_id = ?", battleID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Stop flushes remaining records and shuts down the writer. It blocks until
// the worker goroutine has finished.
func (svc *Service) Stop(_ context.Context) {
	select {
	case <-svc.stopCh:
	default:
		close(svc.stopCh)
	}
	svc.wg.Wait()
}

func (svc *Service) worker() {
	defer svc.wg.Done()
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]*model.BattleRecord, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := svc.db.Create(&batch).Error; err != nil {
			svc.logger.Error("battle record batch write failed", zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case rec := <-svc.ch:
			batch = append(batch, rec)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-svc.stopCh:
			for {
				select {
				case rec := <-svc.ch:
					batch = append(batch, rec)
				default:
					flush()
					return
				}
			}
		}
	}
}

// wireEvent tags each event with its type so the stored JSON stays
// self-describing after the Go types are gone.
type wireEvent struct {
	Type  string             `json:"type"`
	Event battle.BattleEvent `json:"event"`
}

func wireEvents(events []battle.BattleEvent) []wireEvent {
	out := make([]wireEvent, len(events))
	for i, ev := range events {
		out[i] = wireEvent{Type: ev.EventType(), Event: ev}
	}
	return out
}
