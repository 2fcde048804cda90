package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create an open room.
	RpcQuickMatch = "quick_match"

	// RpcCreateRoom creates a private room and returns its join code.
	RpcCreateRoom = "create_room"

	// RpcJoinRoom resolves a join code to a match id.
	RpcJoinRoom = "join_room"

	// RpcRejoinToken issues a signed token that readmits a disconnected
	// player into a running round.
	RpcRejoinToken = "rejoin_token"

	// MatchNamePablo is the authoritative match handler name registered with Nakama.
	MatchNamePablo = "pablo_match"
)

// Match label keys, queried by the room discovery RPCs.
const (
	LabelKeyGame    = "game"
	LabelKeyPhase   = "phase"
	LabelKeyOpen    = "open"
	LabelKeyCode    = "code"
	LabelKeyPrivate = "private"

	LabelGamePablo = "pablo"
)

// Join metadata and match creation parameter keys.
const (
	MetadataKeyRejoinToken = "rejoin_token"
	ParamKeyCode           = "code"
	ParamKeyPrivate        = "private"
)
