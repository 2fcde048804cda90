package nakama

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/supplanter-wood/pablo/internal/app"
	"github.com/supplanter-wood/pablo/internal/bot"
	"github.com/supplanter-wood/pablo/internal/domain"
	"github.com/supplanter-wood/pablo/internal/projection"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockPresence is a minimal runtime.Presence.
type mockPresence struct {
	userID   string
	username string
}

func (p *mockPresence) GetUserId() string                 { return p.userID }
func (p *mockPresence) GetSessionId() string              { return "session-" + p.userID }
func (p *mockPresence) GetNodeId() string                 { return "node" }
func (p *mockPresence) GetHidden() bool                   { return false }
func (p *mockPresence) GetPersistence() bool              { return true }
func (p *mockPresence) GetUsername() string               { return p.username }
func (p *mockPresence) GetStatus() string                 { return "" }
func (p *mockPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonUnknown }

type broadcast struct {
	opCode     int64
	data       []byte
	recipients []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcasts   []broadcast
	labelUpdates int
	lastLabel    string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcasts = append(md.broadcasts, broadcast{
		opCode:     opCode,
		data:       append([]byte(nil), data...),
		recipients: presences,
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

func (md *mockDispatcher) opCodes() []int64 {
	codes := make([]int64, len(md.broadcasts))
	for i, b := range md.broadcasts {
		codes[i] = b.opCode
	}
	return codes
}

func initState(t *testing.T) (*matchHandler, *MatchState) {
	t.Helper()
	mh := &matchHandler{}
	state, tickRate, label := mh.MatchInit(context.Background(), noopLogger{}, nil, nil, map[string]interface{}{})
	ms, ok := state.(*MatchState)
	if !ok {
		t.Fatalf("MatchInit did not return a MatchState")
	}
	if tickRate <= 0 || label == "" {
		t.Fatalf("MatchInit tickRate=%d label=%q", tickRate, label)
	}
	return mh, ms
}

func joinUsers(t *testing.T, mh *matchHandler, ms *MatchState, dispatcher *mockDispatcher, users ...string) {
	t.Helper()
	presences := make([]runtime.Presence, len(users))
	for i, u := range users {
		presences[i] = &mockPresence{userID: u, username: "name-" + u}
	}
	mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, presences)
	for _, u := range users {
		if _, seated := ms.Game.Players[u]; !seated {
			t.Fatalf("user %s not seated after join", u)
		}
	}
}

func intoPlay(t *testing.T, ms *MatchState, users ...string) {
	t.Helper()
	if _, err := ms.App.StartRound(ms.Game, 42); err != nil {
		t.Fatalf("start round: %v", err)
	}
	for _, u := range users {
		if _, err := ms.App.CompletePeek(ms.Game, u); err != nil {
			t.Fatalf("complete peek: %v", err)
		}
	}
}

func TestOpenSeatsFollowRuleTable(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}

	max := ms.App.Rules().MaxPlayers
	if got := ms.OpenSeats(); got != max {
		t.Fatalf("empty room open seats = %d, want %d", got, max)
	}

	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	if got := ms.OpenSeats(); got != max-2 {
		t.Fatalf("open seats after two joins = %d, want %d", got, max-2)
	}
}

func TestMatchInitLabel(t *testing.T) {
	mh := &matchHandler{}
	state, _, label := mh.MatchInit(context.Background(), noopLogger{}, nil, nil, map[string]interface{}{
		ParamKeyCode:    "ABC234",
		ParamKeyPrivate: true,
	})
	ms := state.(*MatchState)
	if ms.RoomCode != "ABC234" || !ms.Private {
		t.Fatalf("params not applied: code=%q private=%t", ms.RoomCode, ms.Private)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(label), &parsed); err != nil {
		t.Fatalf("label is not JSON: %v", err)
	}
	if parsed[LabelKeyGame] != LabelGamePablo {
		t.Fatalf("label game = %v", parsed[LabelKeyGame])
	}
	if parsed[LabelKeyPhase] != string(domain.PhaseLobby) {
		t.Fatalf("label phase = %v", parsed[LabelKeyPhase])
	}
	if parsed[LabelKeyCode] != "ABC234" {
		t.Fatalf("label code = %v", parsed[LabelKeyCode])
	}
}

func TestMatchJoinAttempt(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")

	_, allowed, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, &mockPresence{userID: "u3"}, nil)
	if !allowed {
		t.Fatalf("lobby with open seats should admit")
	}

	_, allowed, reason := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, &mockPresence{userID: "u1"}, nil)
	if allowed || reason != "already_joined" {
		t.Fatalf("connected duplicate: allowed=%t reason=%q", allowed, reason)
	}

	intoPlay(t, ms, "u1", "u2")
	_, allowed, reason = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, &mockPresence{userID: "u9"}, nil)
	if allowed || reason != "match_in_progress" {
		t.Fatalf("stranger mid-round: allowed=%t reason=%q", allowed, reason)
	}
}

func TestMatchJoinAttemptRoomFull(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2", "u3", "u4", "u5", "u6")

	_, allowed, reason := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, &mockPresence{userID: "u7"}, nil)
	if allowed || reason != "room_full" {
		t.Fatalf("full room: allowed=%t reason=%q", allowed, reason)
	}
}

func TestMatchJoinAttemptRejoinNeedsToken(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	intoPlay(t, ms, "u1", "u2")

	ms.Rejoin = app.NewRejoinService("test-secret", "pablo", 0)
	if err := ms.App.MarkDisconnected(ms.Game, "u2"); err != nil {
		t.Fatalf("disconnect: %v", err)
	}

	_, allowed, reason := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, &mockPresence{userID: "u2"}, map[string]string{})
	if allowed || reason != "invalid_rejoin_token" {
		t.Fatalf("missing token: allowed=%t reason=%q", allowed, reason)
	}

	token, err := ms.Rejoin.GenerateToken("u2", "match-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, allowed, _ = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, &mockPresence{userID: "u2"}, map[string]string{MetadataKeyRejoinToken: token})
	if !allowed {
		t.Fatalf("valid token should readmit")
	}

	// A token bound to somebody else must not work.
	stolen, _ := ms.Rejoin.GenerateToken("u1", "match-1")
	_, allowed, reason = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, &mockPresence{userID: "u2"}, map[string]string{MetadataKeyRejoinToken: stolen})
	if allowed || reason != "invalid_rejoin_token" {
		t.Fatalf("stolen token: allowed=%t reason=%q", allowed, reason)
	}
}

func TestMatchLeave(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2", "u3")

	// In lobby a leaver gives up the seat.
	out := mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, []runtime.Presence{&mockPresence{userID: "u3"}})
	if out == nil {
		t.Fatalf("match should continue with humans left")
	}
	if _, seated := ms.Game.Players["u3"]; seated {
		t.Fatalf("lobby leaver should be removed")
	}

	// Mid-round a leaver stays seated as disconnected.
	intoPlay(t, ms, "u1", "u2")
	mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, []runtime.Presence{&mockPresence{userID: "u2"}})
	p, seated := ms.Game.Players["u2"]
	if !seated || p.Connected {
		t.Fatalf("mid-round leaver should stay seated as disconnected")
	}

	// Last human gone terminates the match.
	out = mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, ms, []runtime.Presence{&mockPresence{userID: "u1"}})
	if out != nil {
		t.Fatalf("match with no humans should terminate")
	}
}

func TestSyncAllSendsObserverViews(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	intoPlay(t, ms, "u1", "u2")

	dispatcher.broadcasts = nil
	mh.syncAll(ms, dispatcher, noopLogger{})

	if len(dispatcher.broadcasts) != 2 {
		t.Fatalf("broadcast count = %d, want one per presence", len(dispatcher.broadcasts))
	}
	for _, b := range dispatcher.broadcasts {
		if b.opCode != OpStateSync {
			t.Fatalf("opcode = %d, want %d", b.opCode, OpStateSync)
		}
		if len(b.recipients) != 1 {
			t.Fatalf("state sync must be targeted, got %d recipients", len(b.recipients))
		}
		var view projection.View
		if err := json.Unmarshal(b.data, &view); err != nil {
			t.Fatalf("view payload: %v", err)
		}
		if view.ObserverID != b.recipients[0].GetUserId() {
			t.Fatalf("observer %q sent to %q", view.ObserverID, b.recipients[0].GetUserId())
		}
	}
}

func TestHandleMessageDrawFlow(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	intoPlay(t, ms, "u1", "u2")

	actor := ms.Game.CurrentPlayerID()
	dispatcher.broadcasts = nil
	data, _ := json.Marshal(DrawCardRequest{Source: "deck"})
	mh.handleMessage(context.Background(), ms, dispatcher, noopLogger{}, &fakeMatchData{userID: actor, opCode: OpDrawCard, data: data})

	if ms.Game.Turn.DrawnCard == nil {
		t.Fatalf("draw intent did not stage a card")
	}

	var sawDrawn, sawRevealed bool
	for _, b := range dispatcher.broadcasts {
		switch b.opCode {
		case OpCardDrawn:
			sawDrawn = true
			if len(b.recipients) != 0 {
				t.Fatalf("card_drawn should be public")
			}
		case OpDrawRevealed:
			sawRevealed = true
			if len(b.recipients) != 1 || b.recipients[0].GetUserId() != actor {
				t.Fatalf("draw_revealed must go only to the drawer")
			}
		}
	}
	if !sawDrawn || !sawRevealed {
		t.Fatalf("missing draw events, got ops %v", dispatcher.opCodes())
	}
}

func TestHandleMessageRejectionSendsError(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	intoPlay(t, ms, "u1", "u2")

	actor := ms.Game.CurrentPlayerID()
	other := "u1"
	if other == actor {
		other = "u2"
	}

	dispatcher.broadcasts = nil
	data, _ := json.Marshal(DrawCardRequest{Source: "deck"})
	mh.handleMessage(context.Background(), ms, dispatcher, noopLogger{}, &fakeMatchData{userID: other, opCode: OpDrawCard, data: data})

	if len(dispatcher.broadcasts) != 1 || dispatcher.broadcasts[0].opCode != OpGameError {
		t.Fatalf("expected a single error frame, got ops %v", dispatcher.opCodes())
	}
	var errEvent GameErrorEvent
	if err := json.Unmarshal(dispatcher.broadcasts[0].data, &errEvent); err != nil {
		t.Fatalf("error payload: %v", err)
	}
	if errEvent.Code != "rule_violation" {
		t.Fatalf("error code = %q, want rule_violation", errEvent.Code)
	}
	if got := dispatcher.broadcasts[0].recipients; len(got) != 1 || got[0].GetUserId() != other {
		t.Fatalf("error must be targeted at the offender")
	}
}

func TestEnforceTurnDeadline(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	intoPlay(t, ms, "u1", "u2")

	first := ms.Game.CurrentPlayerID()

	// First pass arms the deadline for the current owner.
	ms.Tick = 100
	mh.enforceTurnDeadline(ms, dispatcher, noopLogger{})
	if ms.TurnOwner != first {
		t.Fatalf("deadline not armed for %s", first)
	}
	if ms.Game.CurrentPlayerID() != first {
		t.Fatalf("arming must not end the turn")
	}

	// Before the deadline nothing happens.
	ms.Tick = ms.TurnDeadline - 1
	mh.enforceTurnDeadline(ms, dispatcher, noopLogger{})
	if ms.Game.CurrentPlayerID() != first {
		t.Fatalf("turn ended before deadline")
	}

	ms.Tick = ms.TurnDeadline
	mh.enforceTurnDeadline(ms, dispatcher, noopLogger{})
	if ms.Game.CurrentPlayerID() == first {
		t.Fatalf("expired turn should pass to the next player")
	}
}

func TestAutoFillLobby(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1")
	ms.BotsEnabled = true
	ms.BotAutoFillDelay = 2

	ms.Tick = 10
	mh.processBots(ms, dispatcher, noopLogger{})
	if ms.LastSoloHumanTick != 10 {
		t.Fatalf("solo timer not armed")
	}
	if len(ms.Game.Players) != 1 {
		t.Fatalf("bots added before delay elapsed")
	}

	ms.Tick = 12
	mh.processBots(ms, dispatcher, noopLogger{})
	if len(ms.Game.Players) != botFillTarget {
		t.Fatalf("players = %d, want %d after auto-fill", len(ms.Game.Players), botFillTarget)
	}
	botCount := 0
	for id := range ms.Game.Players {
		if bot.IsBot(id) {
			botCount++
		}
	}
	if botCount != botFillTarget-1 {
		t.Fatalf("bot count = %d, want %d", botCount, botFillTarget-1)
	}
	if len(ms.Bots) != botCount {
		t.Fatalf("brains = %d, want one per bot", len(ms.Bots))
	}
}

func TestEvictOneBotOnHumanJoin(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1")
	ms.BotsEnabled = true
	ms.BotAutoFillDelay = 1
	ms.Tick = 1
	mh.processBots(ms, dispatcher, noopLogger{})
	ms.Tick = 3
	mh.processBots(ms, dispatcher, noopLogger{})

	// Fill the remaining human seats, then one more human displaces a bot.
	joinUsers(t, mh, ms, dispatcher, "u2", "u3")
	before := len(ms.Game.Players)
	joinUsers(t, mh, ms, dispatcher, "u4", "u5", "u6")
	if len(ms.Game.Players) > ms.Game.Rules.MaxPlayers {
		t.Fatalf("room overfilled: %d players", len(ms.Game.Players))
	}
	if before > len(ms.Game.Players) {
		t.Fatalf("player count shrank from %d to %d", before, len(ms.Game.Players))
	}
	if _, seated := ms.Game.Players["u6"]; !seated {
		t.Fatalf("human u6 should have displaced a bot")
	}
}

func TestSettleIfScoringResolvesRound(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	intoPlay(t, ms, "u1", "u2")

	ms.Game.Phase = domain.PhaseScoring
	ms.Game.Turn = nil
	dispatcher.broadcasts = nil
	mh.settleIfScoring(context.Background(), ms, dispatcher, noopLogger{})

	if ms.Game.Phase != domain.PhaseLobby {
		t.Fatalf("phase = %s, want lobby after settling", ms.Game.Phase)
	}
	if ms.Game.RoundNumber != 1 {
		t.Fatalf("round number = %d, want 1 after reset", ms.Game.RoundNumber)
	}
	var sawScored bool
	for _, b := range dispatcher.broadcasts {
		if b.opCode == OpRoundScored {
			sawScored = true
		}
	}
	if !sawScored {
		t.Fatalf("round_scored not broadcast, got ops %v", dispatcher.opCodes())
	}
}

func TestEnforcePeekDeadline(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	if _, err := ms.App.StartRound(ms.Game, 7); err != nil {
		t.Fatalf("start round: %v", err)
	}

	ms.Tick = 50
	mh.enforcePeekDeadline(ms, dispatcher, noopLogger{})
	if ms.PeekDeadline == 0 {
		t.Fatalf("peek deadline not armed")
	}
	if ms.Game.Phase != domain.PhasePeek {
		t.Fatalf("arming must not advance the phase")
	}

	ms.Tick = ms.PeekDeadline
	mh.enforcePeekDeadline(ms, dispatcher, noopLogger{})
	if ms.Game.Phase != domain.PhasePlay {
		t.Fatalf("phase = %s, want play after forced peek completion", ms.Game.Phase)
	}
}

func TestPingPong(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1")

	ms.Tick = 77
	dispatcher.broadcasts = nil
	mh.handleMessage(context.Background(), ms, dispatcher, noopLogger{}, &fakeMatchData{userID: "u1", opCode: OpPing})

	if len(dispatcher.broadcasts) != 1 || dispatcher.broadcasts[0].opCode != OpPong {
		t.Fatalf("expected a single pong, got ops %v", dispatcher.opCodes())
	}
	b := dispatcher.broadcasts[0]
	if len(b.recipients) != 1 || b.recipients[0].GetUserId() != "u1" {
		t.Fatalf("pong must be targeted at the pinger")
	}
	var pong PongEvent
	if err := json.Unmarshal(b.data, &pong); err != nil || pong.Tick != 77 {
		t.Fatalf("pong payload = %s, err %v", b.data, err)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "Capacity", err: app.ErrRoomFull, want: "room_full"},
		{name: "Rule", err: app.ErrNotYourTurn, want: "rule_violation"},
		{name: "Exhaustion", err: app.ErrRoundUnrecoverable, want: "round_unrecoverable"},
		{name: "Validation", err: app.ErrInvalidSlot, want: "invalid_request"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := errorCode(test.err); got != test.want {
				t.Fatalf("errorCode() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestSettleSyncsScoredTableBeforeReset(t *testing.T) {
	mh, ms := initState(t)
	dispatcher := &mockDispatcher{}
	joinUsers(t, mh, ms, dispatcher, "u1", "u2")
	intoPlay(t, ms, "u1", "u2")

	caller := ms.Game.CurrentPlayerID()
	other := "u1"
	if caller == "u1" {
		other = "u2"
	}
	if _, err := ms.App.CallPablo(ms.Game, caller); err != nil {
		t.Fatalf("call pablo: %v", err)
	}
	if _, err := ms.App.EndTurn(ms.Game, other); err != nil {
		t.Fatalf("end turn: %v", err)
	}
	if ms.Game.Phase != domain.PhaseScoring {
		t.Fatalf("phase = %s, want %s", ms.Game.Phase, domain.PhaseScoring)
	}

	dispatcher.broadcasts = nil
	mh.settleIfScoring(context.Background(), ms, dispatcher, noopLogger{})

	if ms.Game.Phase != domain.PhaseLobby {
		t.Fatalf("phase after settle = %s, want %s", ms.Game.Phase, domain.PhaseLobby)
	}

	// The first sync frame carries the fully revealed table; the last one
	// reflects the reset room.
	var syncs []projection.View
	for _, b := range dispatcher.broadcasts {
		if b.opCode != OpStateSync || b.recipients[0].GetUserId() != other {
			continue
		}
		var view projection.View
		if err := json.Unmarshal(b.data, &view); err != nil {
			t.Fatalf("unmarshal sync: %v", err)
		}
		syncs = append(syncs, view)
	}
	if len(syncs) < 2 {
		t.Fatalf("got %d sync frames for %s, want at least 2", len(syncs), other)
	}

	opponentGrid := func(v projection.View) []projection.SlotView {
		for _, p := range v.Players {
			if p.ID == caller {
				return p.Grid
			}
		}
		t.Fatalf("caller %s missing from view", caller)
		return nil
	}

	scored := opponentGrid(syncs[0])
	if len(scored) == 0 {
		t.Fatalf("scored frame has no opponent grid")
	}
	for _, slot := range scored {
		if !slot.Empty && !slot.Known {
			t.Fatalf("slot %s still hidden in scored frame", slot.PlaceholderID)
		}
	}

	for _, slot := range opponentGrid(syncs[len(syncs)-1]) {
		if slot.Known {
			t.Fatalf("slot %s still revealed after reset", slot.PlaceholderID)
		}
	}
}

func TestNewRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := newRoomCode()
		if len(code) != 6 {
			t.Fatalf("code length = %d", len(code))
		}
		for _, c := range code {
			if c == 'I' || c == 'L' || c == 'O' || c == '0' || c == '1' {
				t.Fatalf("ambiguous character %q in code %s", c, code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("codes are not random")
	}
}

func TestNewRoomCodeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	codes := make([][]string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				codes[g] = append(codes[g], newRoomCode())
			}
		}(g)
	}
	wg.Wait()

	for g := range codes {
		for _, code := range codes[g] {
			if len(code) != 6 {
				t.Fatalf("code length = %d", len(code))
			}
		}
	}
}

// fakeMatchData is a minimal runtime.MatchData.
type fakeMatchData struct {
	mockPresence
	userID string
	opCode int64
	data   []byte
}

func (f *fakeMatchData) GetUserId() string     { return f.userID }
func (f *fakeMatchData) GetOpCode() int64      { return f.opCode }
func (f *fakeMatchData) GetData() []byte       { return f.data }
func (f *fakeMatchData) GetReliable() bool     { return true }
func (f *fakeMatchData) GetReceiveTime() int64 { return 0 }
