package services

import "github.com/Dosada05/tournament-engine/brackets"

// Notifier pushes tournament updates to connected clients.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

type nopNotifier struct{}

func (nopNotifier) BroadcastToRoom(string, interface{}) {}

func notifyTournament(n Notifier, tournamentID int, messageType string, payload interface{}) {
	room := brackets.RoomForTournament(tournamentID)
	n.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    messageType,
		Payload: payload,
		RoomID:  room,
	})
}
