package room

// Outbound action names carried in the {action, data} envelope.
const (
	ActionRoomJoined    = "roomJoined"
	ActionRoomFull      = "roomFull"
	ActionModeError     = "modeError"
	ActionRoomLeft      = "roomLeft"
	ActionMessagePosted = "messagePosted"
	ActionGameUpdated   = "gameUpdated"
	ActionPlayAgainVote = "playAgainVote"
)

// Broadcaster fans manager events out to connections. Implementations must
// not block and must be done reading data by the time they return.
type Broadcaster interface {
	Join(roomID, connID string)
	Leave(roomID, connID string)
	Send(connID string, action string, data interface{})
	Broadcast(roomID string, action string, data interface{})
}
