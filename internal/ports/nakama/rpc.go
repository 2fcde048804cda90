package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/supplanter-wood/pablo/internal/app"
	"github.com/supplanter-wood/pablo/internal/config"
)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcCreateRoom, rpcCreateRoom); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcJoinRoom, rpcJoinRoom); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcRejoinToken, rpcRejoinToken)
}

// CreateRoomResponse is returned when a private room is created.
type CreateRoomResponse struct {
	MatchID string `json:"match_id"`
	Code    string `json:"code"`
}

// JoinRoomRequest resolves a join code.
type JoinRoomRequest struct {
	Code string `json:"code"`
}

type JoinRoomResponse struct {
	MatchID string `json:"match_id"`
}

// RejoinTokenRequest asks for a signed readmission token.
type RejoinTokenRequest struct {
	MatchID string `json:"match_id"`
}

type RejoinTokenResponse struct {
	Token string `json:"token"`
}

// roomCodeAlphabet omits the characters players misread over voice.
const roomCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// newRoomCode uses the locked top-level generator because Nakama runs RPC
// handlers concurrently.
func newRoomCode() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}

func rpcCreateRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	code := newRoomCode()
	matchID, err := nk.MatchCreate(ctx, MatchNamePablo, map[string]interface{}{
		ParamKeyCode:    code,
		ParamKeyPrivate: true,
	})
	if err != nil {
		logger.Error("rpcCreateRoom: MatchCreate error: %v", err)
		return "", runtime.NewError("could not create room", 13)
	}

	b, _ := json.Marshal(CreateRoomResponse{MatchID: matchID, Code: code})
	return string(b), nil
}

func rpcJoinRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req JoinRoomRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Code == "" {
		return "", runtime.NewError("a room code is required", 3)
	}

	query := "+label.game:" + LabelGamePablo + " +label.code:" + req.Code
	limit := 1
	authoritative := true
	matches, err := nk.MatchList(ctx, limit, authoritative, "", nil, nil, query)
	if err != nil {
		logger.Error("rpcJoinRoom: MatchList error: %v", err)
		return "", runtime.NewError("could not look up room", 13)
	}
	if len(matches) == 0 {
		return "", runtime.NewError("room_not_found", 5)
	}

	b, _ := json.Marshal(JoinRoomResponse{MatchID: matches[0].MatchId})
	return string(b), nil
}

func rpcRejoinToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", 16)
	}

	var req RejoinTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.MatchID == "" {
		return "", runtime.NewError("a match id is required", 3)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["pablo_rejoin_secret"]
	if secret == "" {
		return "", runtime.NewError("rejoin tokens are not enabled", 12)
	}

	cfg := config.GetGameConfig()
	svc := app.NewRejoinService(secret, "pablo", time.Duration(cfg.RejoinTokenTTLMinutes)*time.Minute)
	token, err := svc.GenerateToken(userID, req.MatchID)
	if err != nil {
		logger.Error("rpcRejoinToken: %v", err)
		return "", runtime.NewError("could not sign token", 13)
	}

	b, _ := json.Marshal(RejoinTokenResponse{Token: token})
	return string(b), nil
}
