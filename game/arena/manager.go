package arena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kasuganosora/pokebattle/cache"
	"github.com/kasuganosora/pokebattle/game/ai"
	"github.com/kasuganosora/pokebattle/game/battle"
	"github.com/kasuganosora/pokebattle/record"
	"github.com/kasuganosora/pokebattle/resource"
)

var (
	ErrBattleNotFound = errors.New("arena: battle not found")
	ErrArenaFull      = errors.New("arena: too many concurrent battles")
	ErrUnknownTrainer = errors.New("arena: unknown trainer preset")
)

const leaderboardKey = "arena:leaderboard:wins"

// Battle is one live or recently finished session against an AI trainer.
type Battle struct {
	ID          string
	PlayerSide  string
	TrainerName string
	Seed        int64
	Session     *battle.Session

	npc     *ai.Policy
	npcSide int

	// FinishedAt is set when the outcome is recorded; Sweep uses it to
	// expire finished battles from the registry.
	FinishedAt time.Time
}

// Options wires a Manager.
type Options struct {
	Loader        *resource.Loader
	Presets       []ai.Preset
	PubSub        cache.PubSub
	Cache         cache.Cache
	Records       *record.Service // nil disables persistence
	Logger        *zap.Logger
	MaxTurns      int
	MaxConcurrent int
}

// Manager owns every battle in flight: it starts sessions against trainer
// presets, relays player actions, answers for the AI side, streams events
// over pub/sub, and persists outcomes.
type Manager struct {
	mu      sync.RWMutex
	battles map[string]*Battle

	loader        *resource.Loader
	presets       []ai.Preset
	pubsub        cache.PubSub
	kv            cache.Cache
	records       *record.Service
	log           *zap.Logger
	maxTurns      int
	maxConcurrent int
}

func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 200
	}
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 256
	}
	return &Manager{
		battles:       make(map[string]*Battle),
		loader:        opts.Loader,
		presets:       opts.Presets,
		pubsub:        opts.PubSub,
		kv:            opts.Cache,
		records:       opts.Records,
		log:           logger,
		maxTurns:      maxTurns,
		maxConcurrent: maxConcurrent,
	}
}

// EventChannel is the pub/sub channel a battle's events stream on.
func EventChannel(battleID string) string { return "battle:" + battleID }

// StartBattle opens a session between the player's team and a named trainer
// preset. Seed 0 picks a random seed; the chosen seed is kept for replay.
func (m *Manager) StartBattle(playerID string, team []ai.PresetMember, trainerName string, seed int64) (*Battle, error) {
	preset, ok := ai.FindPreset(m.presets, trainerName)
	if !ok {
		return nil, ErrUnknownTrainer
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	playerTeam := make([]*battle.Combatant, 0, len(team))
	for _, member := range team {
		c, err := ai.BuildCombatant(m.loader, member)
		if err != nil {
			return nil, fmt.Errorf("arena: player team: %w", err)
		}
		playerTeam = append(playerTeam, c)
	}
	playerSide, err := battle.NewSide(playerID, playerID, playerTeam)
	if err != nil {
		return nil, err
	}
	npcSide, err := preset.BuildSide("npc:"+preset.Name, m.loader)
	if err != nil {
		return nil, err
	}
	policy, err := preset.Policy(rand.New(rand.NewSource(seed)).Int63(), m.log)
	if err != nil {
		return nil, err
	}

	b := &Battle{
		PlayerSide:  playerID,
		TrainerName: preset.Name,
		Seed:        seed,
		npc:         policy,
		npcSide:     1,
	}
	session, err := battle.NewSession(battle.Config{
		Seed:     seed,
		MaxTurns: m.maxTurns,
		Logger:   m.log,
		OnEvent:  func(ev battle.BattleEvent) { m.publish(b, ev) },
	}, playerSide, npcSide)
	if err != nil {
		return nil, err
	}
	b.ID = session.ID
	b.Session = session

	m.mu.Lock()
	if m.liveCountLocked() >= m.maxConcurrent {
		m.mu.Unlock()
		return nil, ErrArenaFull
	}
	m.battles[b.ID] = b
	m.mu.Unlock()

	m.log.Info("arena battle started",
		zap.String("battle_id", b.ID),
		zap.String("player", playerID),
		zap.String("trainer", preset.Name))
	return b, nil
}

// Get looks a battle up by ID.
func (m *Manager) Get(battleID string) (*Battle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.battles[battleID]
	return b, ok
}

// BattleSummary is the list view of a battle.
type BattleSummary struct {
	ID      string          `json:"id"`
	Player  string          `json:"player"`
	Trainer string          `json:"trainer"`
	Turn    int             `json:"turn"`
	Phase   battle.Phase    `json:"phase"`
	Outcome *battle.Outcome `json:"outcome,omitempty"`
}

// List returns summaries of every tracked battle.
func (m *Manager) List() []BattleSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]BattleSummary, 0, len(m.battles))
	for _, b := range m.battles {
		out = append(out, BattleSummary{
			ID:      b.ID,
			Player:  b.PlayerSide,
			Trainer: b.TrainerName,
			Turn:    b.Session.Turn(),
			Phase:   b.Session.Phase(),
			Outcome: b.Session.Outcome(),
		})
	}
	return out
}

// SubmitAction relays the player's action and answers for the AI trainer,
// which resolves the turn. A finished battle is finalized before returning.
func (m *Manager) SubmitAction(battleID string, act battle.Action) error {
	b, ok := m.Get(battleID)
	if !ok {
		return ErrBattleNotFound
	}
	if err := b.Session.SubmitAction(b.PlayerSide, act); err != nil {
		return err
	}
	if b.Session.Phase() == battle.PhaseAwaitingActions {
		npcAct := b.npc.ChooseAction(b.Session, b.npcSide)
		if err := b.Session.SubmitAction(b.Session.SideAt(b.npcSide).ID, npcAct); err != nil {
			return err
		}
	}
	if b.Session.Phase() == battle.PhaseFinished {
		m.finalize(b)
	}
	return nil
}

// RunExhibition plays two trainer presets against each other to completion.
// The battle is tracked, streamed, and recorded like a player battle.
func (m *Manager) RunExhibition(ctx context.Context, trainerA, trainerB string, seed int64) (*Battle, *battle.Outcome, error) {
	presetA, ok := ai.FindPreset(m.presets, trainerA)
	if !ok {
		return nil, nil, ErrUnknownTrainer
	}
	presetB, ok := ai.FindPreset(m.presets, trainerB)
	if !ok {
		return nil, nil, ErrUnknownTrainer
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sideA, err := presetA.BuildSide("npc:a:"+presetA.Name, m.loader)
	if err != nil {
		return nil, nil, err
	}
	sideB, err := presetB.BuildSide("npc:b:"+presetB.Name, m.loader)
	if err != nil {
		return nil, nil, err
	}
	src := rand.New(rand.NewSource(seed))
	policyA, err := presetA.Policy(src.Int63(), m.log)
	if err != nil {
		return nil, nil, err
	}
	policyB, err := presetB.Policy(src.Int63(), m.log)
	if err != nil {
		return nil, nil, err
	}

	b := &Battle{
		PlayerSide:  sideA.ID,
		TrainerName: presetB.Name,
		Seed:        seed,
	}
	session, err := battle.NewSession(battle.Config{
		Seed:     seed,
		MaxTurns: m.maxTurns,
		Logger:   m.log,
		OnEvent:  func(ev battle.BattleEvent) { m.publish(b, ev) },
	}, sideA, sideB)
	if err != nil {
		return nil, nil, err
	}
	b.ID = session.ID
	b.Session = session

	m.mu.Lock()
	m.battles[b.ID] = b
	m.mu.Unlock()

	out, err := session.RunAuto(ctx, [2]battle.Decider{policyA, policyB})
	if err != nil {
		return nil, nil, err
	}
	m.finalize(b)
	return b, out, nil
}

// Leaderboard returns the top trainers by wins.
func (m *Manager) Leaderboard(ctx context.Context, limit int) ([]cache.ScoredMember, error) {
	if m.kv == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return m.kv.ZRevRange(ctx, leaderboardKey, 0, int64(limit-1))
}

// Remove drops a finished battle from the registry.
func (m *Manager) Remove(battleID string) {
	m.mu.Lock()
	delete(m.battles, battleID)
	m.mu.Unlock()
}

// Sweep expires battles finished longer than retention ago and returns how
// many were removed. Live battles are never touched.
func (m *Manager) Sweep(retention time.Duration) int {
	cutoff := time.Now().Add(-retention)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, b := range m.battles {
		if !b.FinishedAt.IsZero() && b.FinishedAt.Before(cutoff) {
			delete(m.battles, id)
			n++
		}
	}
	return n
}

func (m *Manager) liveCountLocked() int {
	n := 0
	for _, b := range m.battles {
		if b.Session.Phase() != battle.PhaseFinished {
			n++
		}
	}
	return n
}

func (m *Manager) finalize(b *Battle) {
	out := b.Session.Outcome()
	if out == nil {
		return
	}
	m.mu.Lock()
	b.FinishedAt = time.Now()
	m.mu.Unlock()
	ctx := context.Background()
	if m.kv != nil && out.Winner != "" {
		if err := m.kv.ZIncrBy(ctx, leaderboardKey, 1, out.Winner); err != nil {
			m.log.Warn("leaderboard update failed", zap.Error(err))
		}
	}
	if m.records != nil {
		sideA := b.Session.SideAt(0)
		sideB := b.Session.SideAt(1)
		m.records.Save(record.Entry{
			BattleID: b.ID,
			SideA:    sideA.ID,
			SideB:    sideB.ID,
			Seed:     b.Seed,
			Outcome:  *out,
			Events:   b.Session.Events(),
			Stats:    b.Session.Stats(),
		})
	}
}

// publish serializes one event onto the battle's stream channel. Failures
// are logged and dropped; the event log on the session stays authoritative.
func (m *Manager) publish(b *Battle, ev battle.BattleEvent) {
	if m.pubsub == nil {
		return
	}
	payload, err := json.Marshal(struct {
		Type  string             `json:"type"`
		Event battle.BattleEvent `json:"event"`
	}{Type: ev.EventType(), Event: ev})
	if err != nil {
		return
	}
	if err := m.pubsub.Publish(context.Background(), EventChannel(b.ID), string(payload)); err != nil {
		m.log.Warn("event publish failed",
			zap.String("battle_id", b.ID),
			zap.Error(err))
	}
}
