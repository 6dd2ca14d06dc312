package battle

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phase is the session state machine position.
type Phase string

const (
	PhaseAwaitingActions Phase = "awaiting_actions"
	PhaseResolving       Phase = "resolving"
	PhaseFinished        Phase = "finished"
)

const defaultMaxTurns = 200

// Outcome is the terminal result of a session.
type Outcome struct {
	Winner string `json:"winner,omitempty"` // side ID; empty on a draw
	Draw   bool   `json:"draw,omitempty"`
	Reason string `json:"reason"`
	Turns  int    `json:"turns"`
}

// Config carries session construction options. Zero values get defaults: a
// time-derived seed, the standard turn cap, a no-op logger.
type Config struct {
	Seed     int64
	MaxTurns int
	Logger   *zap.Logger
	// OnEvent, when set, receives every event as it is appended to the log.
	OnEvent func(BattleEvent)
}

// Session is one battle between two sides. All rolls come from a single
// seeded source, so a fixed seed and fixed actions replay identically.
// Methods are safe for concurrent use.
type Session struct {
	ID string

	mu       sync.Mutex
	log      *zap.Logger
	rng      *rand.Rand
	maxTurns int
	onEvent  func(BattleEvent)

	sides   [2]*Side
	field   Field
	phase   Phase
	turn    int
	pending [2]*Action
	events  []BattleEvent
	outcome *Outcome
	stats   Statistics
}

// NewSession validates both sides and opens the battle: the leads take the
// field and their entry effects run before the first turn.
func NewSession(cfg Config, a, b *Side) (*Session, error) {
	if a == nil || b == nil {
		return nil, ErrInvalidSide
	}
	if a.ID == b.ID {
		return nil, ErrInvalidSide
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		ID:       uuid.NewString(),
		log:      logger,
		rng:      rand.New(rand.NewSource(seed)),
		maxTurns: maxTurns,
		onEvent:  cfg.OnEvent,
		sides:    [2]*Side{a, b},
		phase:    PhaseAwaitingActions,
	}
	s.stats.SideIDs = [2]string{a.ID, b.ID}

	s.log.Info("battle session opened",
		zap.String("battle_id", s.ID),
		zap.String("side_a", a.ID),
		zap.String("side_b", b.ID),
		zap.Int64("seed", seed))

	// Leads enter; Intimidate and friends fire before turn 1.
	for i := range s.sides {
		side := s.sides[i]
		s.emit(SwitchEvent{Side: side.ID, In: side.ActiveCombatant().Name})
		s.onSwitchIn(i)
	}
	return s, nil
}

// Phase returns the current state machine position.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Turn returns the number of the last resolved turn.
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Outcome returns the terminal result, nil while the battle runs.
func (s *Session) Outcome() *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Events returns a copy of the full ordered event log.
func (s *Session) Events() []BattleEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]BattleEvent, len(s.events))
	copy(out, s.events)
	return out
}

// EventsSince returns a copy of the events from position n onward, for
// incremental polling. Out-of-range positions yield an empty slice.
func (s *Session) EventsSince(n int) []BattleEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n >= len(s.events) {
		return nil
	}
	out := make([]BattleEvent, len(s.events)-n)
	copy(out, s.events[n:])
	return out
}

// SideAt returns a side by index (0 or 1).
func (s *Session) SideAt(i int) *Side {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sides[i]
}

// FieldState returns the current global field conditions.
func (s *Session) FieldState() Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field
}

// Stats returns the running battle statistics.
func (s *Session) Stats() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Session) sideIndex(sideID string) int {
	for i, side := range s.sides {
		if side.ID == sideID {
			return i
		}
	}
	return -1
}

// SubmitAction records one side's choice for the pending turn. When both
// sides have submitted, the turn resolves before SubmitAction returns.
func (s *Session) SubmitAction(sideID string, act Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseFinished {
		return ErrSessionFinished
	}
	if s.phase != PhaseAwaitingActions {
		return ErrNotAwaitingActions
	}
	idx := s.sideIndex(sideID)
	if idx < 0 {
		return ErrInvalidSide
	}
	if s.pending[idx] != nil {
		return ErrActionAlreadySet
	}
	if err := s.validateAction(idx, act); err != nil {
		return err
	}
	s.pending[idx] = &act

	if s.pending[0] == nil || s.pending[1] == nil {
		return nil
	}
	return s.resolveTurn()
}

// resolveTurn plays out one full turn. Called with the lock held and both
// actions present.
func (s *Session) resolveTurn() error {
	s.phase = PhaseResolving
	s.turn++
	actions := [2]Action{*s.pending[0], *s.pending[1]}
	s.pending[0], s.pending[1] = nil, nil

	s.emit(TurnStartEvent{Turn: s.turn})

	// Forfeits end the battle before anything else moves.
	if actions[0].Type == ActionForfeit && actions[1].Type == ActionForfeit {
		s.emit(ForfeitEvent{Side: s.sides[0].ID})
		s.emit(ForfeitEvent{Side: s.sides[1].ID})
		s.finish("", true, "both sides forfeited")
		return nil
	}
	for i := range actions {
		if actions[i].Type == ActionForfeit {
			s.sides[i].Forfeited = true
			s.emit(ForfeitEvent{Side: s.sides[i].ID})
			s.finish(s.sides[1-i].ID, false, "opponent forfeited")
			return nil
		}
	}

	for _, i := range s.actionOrder(actions) {
		if s.phase == PhaseFinished {
			break
		}
		if err := s.executeAction(i, actions[i]); err != nil {
			s.phase = PhaseFinished
			s.log.Error("battle aborted", zap.String("battle_id", s.ID), zap.Error(err))
			return err
		}
		if s.checkVictory() {
			break
		}
	}

	if s.phase != PhaseFinished {
		s.endOfTurn()
		s.checkVictory()
	}

	if s.phase != PhaseFinished {
		s.replaceFainted()
		s.checkVictory()
	}

	s.emit(TurnEndEvent{Turn: s.turn})

	if s.phase != PhaseFinished && s.turn >= s.maxTurns {
		s.finish("", true, "turn limit reached")
	}
	if s.phase != PhaseFinished {
		s.phase = PhaseAwaitingActions
	}
	return nil
}

func (s *Session) executeAction(sideIdx int, act Action) error {
	side := s.sides[sideIdx]
	actor := side.ActiveCombatant()

	if actor.Fainted() {
		s.emit(SkippedFaintedEvent{Side: side.ID, Actor: actor.Name})
		return nil
	}

	switch act.Type {
	case ActionSwitch:
		s.performSwitch(sideIdx, act.SwitchIndex, false)
		return nil
	case ActionMove:
		if !s.preMoveCheck(sideIdx) {
			return nil
		}
		return s.executeMove(sideIdx, act.MoveIndex)
	default:
		return contractErr("turn-order", "action type %q survived ordering", act.Type)
	}
}

// checkVictory ends the battle when a side (or both) is out of combatants.
// Returns true when the battle just finished.
func (s *Session) checkVictory() bool {
	if s.phase == PhaseFinished {
		return true
	}
	aDown, bDown := s.sides[0].Defeated(), s.sides[1].Defeated()
	switch {
	case aDown && bDown:
		s.finish("", true, "both sides out of combatants")
	case aDown:
		s.finish(s.sides[1].ID, false, "opponent out of combatants")
	case bDown:
		s.finish(s.sides[0].ID, false, "opponent out of combatants")
	default:
		return false
	}
	return true
}

// replaceFainted sends in the next able team member for any side whose
// active combatant went down this turn.
func (s *Session) replaceFainted() {
	for i := range s.sides {
		side := s.sides[i]
		if !side.ActiveCombatant().Fainted() {
			continue
		}
		next := side.NextAble()
		if next < 0 {
			continue // checkVictory handles the defeat
		}
		s.performSwitch(i, next, true)
	}
}

func (s *Session) finish(winner string, draw bool, reason string) {
	s.phase = PhaseFinished
	s.outcome = &Outcome{Winner: winner, Draw: draw, Reason: reason, Turns: s.turn}
	s.stats.Turns = s.turn
	s.emit(BattleEndEvent{Winner: winner, Draw: draw, Reason: reason, Turns: s.turn})
	s.log.Info("battle finished",
		zap.String("battle_id", s.ID),
		zap.String("winner", winner),
		zap.Bool("draw", draw),
		zap.String("reason", reason),
		zap.Int("turns", s.turn))
}

func (s *Session) emit(ev BattleEvent) {
	s.events = append(s.events, ev)
	if s.onEvent != nil {
		s.onEvent(ev)
	}
}

// Decider chooses an action for a side when asked. The ai package provides
// policies; anything interactive can implement it too.
type Decider interface {
	ChooseAction(s *Session, sideIdx int) Action
}

// RunAuto plays the battle to completion with both sides driven by
// deciders. It returns the outcome, or the context/contract error that
// stopped the battle.
func (s *Session) RunAuto(ctx context.Context, deciders [2]Decider) (*Outcome, error) {
	for s.Phase() == PhaseAwaitingActions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range deciders {
			if s.Phase() != PhaseAwaitingActions {
				break
			}
			act := deciders[i].ChooseAction(s, i)
			if err := s.SubmitAction(s.sides[i].ID, act); err != nil {
				return nil, err
			}
		}
	}
	return s.Outcome(), nil
}
