package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/supplanter-wood/pablo/internal/app"
	"github.com/supplanter-wood/pablo/internal/bot"
	"github.com/supplanter-wood/pablo/internal/config"
	"github.com/supplanter-wood/pablo/internal/domain"
	"github.com/supplanter-wood/pablo/internal/ports"
	"github.com/supplanter-wood/pablo/internal/projection"
)

// botFillTarget is how many seats bots top a solo lobby up to.
const botFillTarget = 4

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	RoomCode string `json:"room_code"` // Private join code, empty for public rooms
	Private  bool   `json:"private"`   // Private rooms are hidden from quick match
	Tick     int64  `json:"tick"`      // Current tick for timers
	TickRate int    `json:"tick_rate"`

	Presences map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"` // Game rules engine
	Game      *domain.GameState           `json:"-"` // Hidden room truth, lobby phase included
	Rejoin    *app.RejoinService          `json:"-"` // Verifies mid-round rejoin tokens
	Stats     ports.StatsPort             `json:"-"` // Leaderboard reporting

	TurnDuration int    `json:"turn_duration"` // Seconds before a turn is force-ended
	TurnDeadline int64  `json:"turn_deadline"` // Tick at which the current turn expires
	TurnOwner    string `json:"turn_owner"`    // Player the deadline was armed for
	PeekDeadline int64  `json:"peek_deadline"` // Tick at which slow peekers are force-completed

	BotsEnabled       bool                 `json:"bots_enabled"`
	BotAutoFillDelay  int                  `json:"bot_auto_fill_delay"` // Seconds before a solo lobby is topped up
	BotActDelay       int64                `json:"bot_act_delay"`       // Ticks between bot actions
	BotWaitUntil      int64                `json:"bot_wait_until"`
	LastSoloHumanTick int64                `json:"last_solo_human_tick"`
	Bots              map[string]bot.Brain `json:"-"`

	GameReported bool `json:"game_reported"` // Leaderboard write happened for this series
}

// HumanCount counts seated non-bot players.
func (ms *MatchState) HumanCount() int {
	count := 0
	for id := range ms.Game.Players {
		if !bot.IsBot(id) {
			count++
		}
	}
	return count
}

// OpenSeats reports how many players can still join.
func (ms *MatchState) OpenSeats() int {
	open := ms.App.Rules().MaxPlayers - len(ms.Game.Players)
	if open < 0 {
		return 0
	}
	return open
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/pablo_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &MatchState{
		TickRate:         1,
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(cfg.Rules()),
		TurnDuration:     cfg.TurnDuration(),
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		Bots:             make(map[string]bot.Brain),
		Stats:            NewNakamaStatsAdapter(nk, cfg.Leaderboard()),
	}
	state.Game = state.App.NewRoom()
	state.BotActDelay = int64(cfg.BotActionDelay()) * int64(state.TickRate) / 1000
	if state.BotActDelay < 1 {
		state.BotActDelay = 1
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 10
	}

	if code, ok := params[ParamKeyCode].(string); ok {
		state.RoomCode = code
	}
	if private, ok := params[ParamKeyPrivate].(bool); ok {
		state.Private = private
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["pablo_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if secret, ok := env["pablo_rejoin_secret"]; ok && secret != "" {
		ttl := time.Duration(cfg.RejoinTokenTTLMinutes) * time.Minute
		state.Rejoin = app.NewRejoinService(secret, "pablo", ttl)
	}

	label, err := mh.marshalLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, state.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	g := matchState.Game

	if p, seated := g.Players[userID]; seated {
		if p.Connected {
			return matchState, false, "already_joined"
		}
		// Rejoining a running round needs a token when one is required.
		if g.Phase.InRound() && matchState.Rejoin != nil {
			tokenUser, _, err := matchState.Rejoin.VerifyToken(metadata[MetadataKeyRejoinToken])
			if err != nil || tokenUser != userID {
				logger.Warn("MatchJoinAttempt: Rejected rejoin for %s: %v", userID, err)
				return matchState, false, "invalid_rejoin_token"
			}
		}
		return matchState, true, ""
	}

	if g.Phase != domain.PhaseLobby {
		return matchState, false, "match_in_progress"
	}
	if matchState.OpenSeats() <= 0 && !mh.hasReplaceableBot(matchState) {
		return matchState, false, "room_full"
	}
	return matchState, true, ""
}

// hasReplaceableBot reports whether a lobby bot can yield its seat to a
// human.
func (mh *matchHandler) hasReplaceableBot(state *MatchState) bool {
	for id := range state.Game.Players {
		if bot.IsBot(id) {
			return true
		}
	}
	return false
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if _, seated := matchState.Game.Players[userID]; seated {
			if err := matchState.App.MarkReconnected(matchState.Game, userID); err != nil {
				logger.Error("MatchJoin: Reconnect failed for %s: %v", userID, err)
				continue
			}
			mh.broadcastJSON(dispatcher, logger, OpPlayerJoined, PlayerJoinedEvent{UserID: userID, Username: p.GetUsername(), Rejoined: true}, nil)
			continue
		}

		if matchState.OpenSeats() <= 0 {
			mh.evictOneBot(matchState, logger)
		}
		if _, err := matchState.App.AddPlayer(matchState.Game, userID, p.GetUsername()); err != nil {
			logger.Warn("MatchJoin: User %s joined but could not be seated: %v", userID, err)
			continue
		}
		mh.broadcastJSON(dispatcher, logger, OpPlayerJoined, PlayerJoinedEvent{UserID: userID, Username: p.GetUsername()}, nil)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.syncAll(matchState, dispatcher, logger)
	return matchState
}

// evictOneBot frees a lobby seat by removing one bot player.
func (mh *matchHandler) evictOneBot(state *MatchState, logger runtime.Logger) {
	for id := range state.Game.Players {
		if !bot.IsBot(id) {
			continue
		}
		if err := state.App.RemovePlayer(state.Game, id); err != nil {
			logger.Warn("evictOneBot: Could not remove %s: %v", id, err)
			return
		}
		delete(state.Bots, id)
		logger.Info("evictOneBot: Bot %s yielded its seat.", id)
		return
	}
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	g := matchState.Game
	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		if _, seated := g.Players[userID]; !seated {
			continue
		}
		if g.Phase.InRound() {
			if err := matchState.App.MarkDisconnected(g, userID); err != nil {
				logger.Warn("MatchLeave: Disconnect failed for %s: %v", userID, err)
			}
			mh.broadcastJSON(dispatcher, logger, OpPlayerLeft, PlayerLeftEvent{UserID: userID, Seated: true}, nil)
			continue
		}
		if err := matchState.App.RemovePlayer(g, userID); err != nil {
			logger.Warn("MatchLeave: Remove failed for %s: %v", userID, err)
			continue
		}
		mh.broadcastJSON(dispatcher, logger, OpPlayerLeft, PlayerLeftEvent{UserID: userID}, nil)
	}

	if matchState.HumanCount() == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.syncAll(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}

	mh.enforcePeekDeadline(matchState, dispatcher, logger)
	mh.enforceTurnDeadline(matchState, dispatcher, logger)

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	mh.settleIfScoring(ctx, matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

// handleMessage decodes one client frame and applies it to the engine.
func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	g := state.Game

	var events []app.Event
	var err error

	switch msg.GetOpCode() {
	case OpStartRound:
		if _, seated := g.Players[senderID]; !seated {
			err = app.ErrUnknownPlayer
			break
		}
		events, err = state.App.StartRound(g, time.Now().UnixNano())
	case OpPeekCard:
		var req PeekCardRequest
		if err = json.Unmarshal(msg.GetData(), &req); err != nil {
			break
		}
		events, err = state.App.PeekCard(g, senderID, req.Slot)
	case OpCompletePeek:
		events, err = state.App.CompletePeek(g, senderID)
	case OpDrawCard:
		var req DrawCardRequest
		if err = json.Unmarshal(msg.GetData(), &req); err != nil {
			break
		}
		events, err = state.App.DrawCard(g, senderID, domain.DrawSource(req.Source))
	case OpPlaceCard:
		var req PlaceCardRequest
		if err = json.Unmarshal(msg.GetData(), &req); err != nil {
			break
		}
		events, err = state.App.PlaceDrawnCard(g, senderID, req.Slot)
	case OpDiscardDrawn:
		events, err = state.App.DiscardDrawnCard(g, senderID)
	case OpAttemptMatch:
		var req AttemptMatchRequest
		if err = json.Unmarshal(msg.GetData(), &req); err != nil {
			break
		}
		events, err = state.App.AttemptMatch(g, senderID, req.Slot)
	case OpSpyCard:
		var req SpyCardRequest
		if err = json.Unmarshal(msg.GetData(), &req); err != nil {
			break
		}
		events, err = state.App.SpyCard(g, senderID, req.TargetID, req.Slot)
	case OpSwapCards:
		var req SwapCardsRequest
		if err = json.Unmarshal(msg.GetData(), &req); err != nil {
			break
		}
		events, err = state.App.SwapCards(g, senderID, req.OwnSlot, req.TargetID, req.TargetSlot)
	case OpCallPablo:
		events, err = state.App.CallPablo(g, senderID)
	case OpEndTurn:
		events, err = state.App.EndTurn(g, senderID)
	case OpPing:
		if presence, ok := state.Presences[senderID]; ok {
			mh.broadcastJSON(dispatcher, logger, OpPong, PongEvent{Tick: state.Tick}, []runtime.Presence{presence})
		}
		return
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		logger.Warn("handleMessage: User %s op %d rejected: %v", senderID, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		mh.abortIfUnrecoverable(state, dispatcher, logger, err)
		return
	}

	mh.afterEngineStep(state, dispatcher, logger, events)
}

// afterEngineStep broadcasts events and refreshed views after any
// successful engine call.
func (mh *matchHandler) afterEngineStep(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.updateLabel(state, dispatcher, logger)
	mh.syncAll(state, dispatcher, logger)
}

// abortIfUnrecoverable throws the round away when both piles are exhausted
// and play cannot continue.
func (mh *matchHandler) abortIfUnrecoverable(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, cause error) {
	if !errors.Is(cause, app.ErrRoundUnrecoverable) {
		return
	}
	logger.Warn("abortIfUnrecoverable: Aborting round: %v", cause)
	events, err := state.App.AbortRound(state.Game, "deck_exhausted")
	if err != nil {
		logger.Error("abortIfUnrecoverable: %v", err)
		return
	}
	mh.afterEngineStep(state, dispatcher, logger, events)
}

// enforcePeekDeadline force-completes the peek of anyone who has not done so
// before the clock runs out, so one absent player cannot stall the round.
func (mh *matchHandler) enforcePeekDeadline(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if g.Phase != domain.PhasePeek {
		state.PeekDeadline = 0
		return
	}
	if state.PeekDeadline == 0 {
		state.PeekDeadline = state.Tick + int64(state.TurnDuration*state.TickRate)
		return
	}
	if state.Tick < state.PeekDeadline {
		return
	}

	for _, p := range g.SeatedPlayers() {
		if g.Phase != domain.PhasePeek {
			break
		}
		if p.PeekDone {
			continue
		}
		logger.Info("enforcePeekDeadline: Force-completing peek for %s.", p.ID)
		events, err := state.App.CompletePeek(g, p.ID)
		if err != nil {
			logger.Error("enforcePeekDeadline: %v", err)
			continue
		}
		mh.afterEngineStep(state, dispatcher, logger, events)
	}
}

// enforceTurnDeadline force-ends a turn that has outlived its clock. The
// engine auto-discards any still-staged draw on the same path.
func (mh *matchHandler) enforceTurnDeadline(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if !g.Phase.TurnTaking() || g.Turn == nil {
		state.TurnOwner = ""
		return
	}

	owner := g.Turn.PlayerID
	if owner != state.TurnOwner {
		state.TurnOwner = owner
		state.TurnDeadline = state.Tick + int64(state.TurnDuration*state.TickRate)
		return
	}
	if state.Tick < state.TurnDeadline {
		return
	}

	logger.Info("enforceTurnDeadline: Turn of %s expired, ending it.", owner)
	events, err := state.App.EndTurn(g, owner)
	if err != nil {
		logger.Error("enforceTurnDeadline: Forced EndTurn failed: %v", err)
		return
	}
	mh.afterEngineStep(state, dispatcher, logger, events)
}

// settleIfScoring resolves a finished round and reports a finished series.
func (mh *matchHandler) settleIfScoring(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if g.Phase == domain.PhaseScoring {
		events, err := state.App.ResolveScoring(g)
		if err != nil {
			logger.Error("settleIfScoring: %v", err)
			return
		}
		// Sync once with every grid card face up before the reset wipes
		// the table.
		mh.afterEngineStep(state, dispatcher, logger, events)
		if g.Phase == domain.PhaseLobby {
			if err := state.App.ResetForNextRound(g, time.Now().UnixNano()); err != nil {
				logger.Error("settleIfScoring: Reset failed: %v", err)
			}
			mh.updateLabel(state, dispatcher, logger)
			mh.syncAll(state, dispatcher, logger)
		}
	}

	if g.Phase == domain.PhaseGameOver && !state.GameReported {
		state.GameReported = true
		result := ports.RoundResult{
			MatchID: state.RoomCode,
			Totals:  make(map[string]int, len(g.Players)),
			Rounds:  g.RoundNumber + 1,
		}
		best := 0
		for i, p := range g.SeatedPlayers() {
			result.Totals[p.ID] = p.TotalScore
			if i == 0 || p.TotalScore < best {
				best = p.TotalScore
			}
		}
		for _, p := range g.SeatedPlayers() {
			if p.TotalScore == best {
				result.WinnerIDs = append(result.WinnerIDs, p.ID)
			}
		}
		mh.broadcastJSON(dispatcher, logger, OpGameOver, GameOverEvent{
			WinnerIDs: result.WinnerIDs,
			Totals:    result.Totals,
			Rounds:    result.Rounds,
		}, nil)
		if state.Stats != nil {
			if err := state.Stats.ReportGame(ctx, result); err != nil {
				logger.Error("settleIfScoring: Leaderboard report failed: %v", err)
			}
		}
	}
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.autoFillLobby(state, dispatcher, logger)

	g := state.Game
	if !g.Phase.InRound() {
		state.BotWaitUntil = 0
		return
	}

	// Peek phase has no turn order; every bot may act.
	if g.Phase == domain.PhasePeek {
		for id, brain := range state.Bots {
			mh.stepBot(state, dispatcher, logger, id, brain)
		}
		return
	}

	currentID := g.CurrentPlayerID()
	brain, isBot := state.Bots[currentID]
	if !isBot {
		state.BotWaitUntil = 0
		return
	}
	if state.BotWaitUntil == 0 {
		state.BotWaitUntil = state.Tick + state.BotActDelay
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0
	mh.stepBot(state, dispatcher, logger, currentID, brain)
}

// autoFillLobby tops up a lobby that has exactly one human waiting.
func (mh *matchHandler) autoFillLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if g.Phase != domain.PhaseLobby || state.HumanCount() != 1 || len(g.Players) >= botFillTarget {
		state.LastSoloHumanTick = 0
		return
	}
	if state.LastSoloHumanTick == 0 {
		state.LastSoloHumanTick = state.Tick
		return
	}
	if state.Tick-state.LastSoloHumanTick < int64(state.BotAutoFillDelay*state.TickRate) {
		return
	}
	state.LastSoloHumanTick = 0

	n := 0
	for len(g.Players) < botFillTarget {
		id, name := bot.Identity(n)
		n++
		if _, seated := g.Players[id]; seated {
			continue
		}
		brain, err := bot.NewBrain(bot.BotLevelSmart)
		if err != nil {
			logger.Error("autoFillLobby: %v", err)
			return
		}
		if _, err := state.App.AddPlayer(g, id, name); err != nil {
			logger.Warn("autoFillLobby: Could not seat bot %s: %v", id, err)
			return
		}
		state.Bots[id] = brain
		logger.Info("autoFillLobby: Added bot %s (%s).", name, id)
		mh.broadcastJSON(dispatcher, logger, OpPlayerJoined, PlayerJoinedEvent{UserID: id, Username: name}, nil)
	}
	mh.updateLabel(state, dispatcher, logger)
	mh.syncAll(state, dispatcher, logger)
}

// stepBot asks a brain for one action and applies it.
func (mh *matchHandler) stepBot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, botID string, brain bot.Brain) {
	g := state.Game
	action, err := brain.NextAction(g, botID)
	if err != nil {
		logger.Error("stepBot: Bot %s failed to decide: %v", botID, err)
		return
	}

	var events []app.Event
	switch action.Kind {
	case bot.ActionWait:
		return
	case bot.ActionPeek:
		events, err = state.App.PeekCard(g, botID, action.Slot)
	case bot.ActionCompletePeek:
		events, err = state.App.CompletePeek(g, botID)
	case bot.ActionDraw:
		events, err = state.App.DrawCard(g, botID, action.Source)
	case bot.ActionPlace:
		events, err = state.App.PlaceDrawnCard(g, botID, action.Slot)
	case bot.ActionDiscard:
		events, err = state.App.DiscardDrawnCard(g, botID)
	case bot.ActionMatch:
		events, err = state.App.AttemptMatch(g, botID, action.Slot)
	case bot.ActionSpy:
		events, err = state.App.SpyCard(g, botID, action.TargetID, action.TargetSlot)
	case bot.ActionSwap:
		events, err = state.App.SwapCards(g, botID, action.Slot, action.TargetID, action.TargetSlot)
	case bot.ActionCallPablo:
		events, err = state.App.CallPablo(g, botID)
	case bot.ActionEndTurn:
		events, err = state.App.EndTurn(g, botID)
	default:
		logger.Warn("stepBot: Bot %s produced unknown action %q", botID, action.Kind)
		return
	}
	if err != nil {
		logger.Warn("stepBot: Bot %s action %q rejected: %v", botID, action.Kind, err)
		mh.abortIfUnrecoverable(state, dispatcher, logger, err)
		return
	}
	mh.afterEngineStep(state, dispatcher, logger, events)
}

// syncAll sends each connected player their own redacted view. Views are
// never shared between observers.
func (mh *matchHandler) syncAll(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for userID, presence := range state.Presences {
		view := projection.Project(state.Game, userID)
		data, err := json.Marshal(view)
		if err != nil {
			logger.Error("syncAll: Failed to marshal view for %s: %v", userID, err)
			continue
		}
		if err := dispatcher.BroadcastMessage(OpStateSync, data, []runtime.Presence{presence}, nil, true); err != nil {
			logger.Error("syncAll: Broadcast to %s failed: %v", userID, err)
		}
	}
}

// broadcastEvent sends one app event to its recipients, or everyone when
// the event is public.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode := opCodeFor(ev.Kind)
	if opCode == 0 {
		logger.Warn("broadcastEvent: Unknown event kind: %v", ev.Kind)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted payloads with no connected recipient (bots, dropped
		// players) must not fall back to a public broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	mh.broadcastJSON(dispatcher, logger, opCode, ev.Payload, recipients)
}

func (mh *matchHandler) broadcastJSON(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload interface{}, recipients []runtime.Presence) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("broadcastJSON: Failed to marshal op %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("broadcastJSON: Broadcast op %d failed: %v", opCode, err)
	}
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	payload := GameErrorEvent{Code: errorCode(cause), Message: cause.Error()}
	mh.broadcastJSON(dispatcher, logger, OpGameError, payload, []runtime.Presence{presence})
}

// labelValues builds the discovery label for the room's current shape.
func (mh *matchHandler) labelValues(state *MatchState) map[string]interface{} {
	open := state.OpenSeats()
	if state.Game.Phase != domain.PhaseLobby {
		open = 0
	}
	return map[string]interface{}{
		LabelKeyGame:    LabelGamePablo,
		LabelKeyPhase:   string(state.Game.Phase),
		LabelKeyOpen:    open,
		LabelKeyCode:    state.RoomCode,
		LabelKeyPrivate: state.Private,
	}
}

func (mh *matchHandler) marshalLabel(state *MatchState) (string, error) {
	label, err := structpb.NewStruct(mh.labelValues(state))
	if err != nil {
		return "", err
	}
	data, err := (protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := mh.marshalLabel(state)
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}
