package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server clients use to follow
// venue occupancy and receive match notifications. Clients join the rooms
// they care about ("user:<id>", "venue:<id>"); the services broadcast into
// those rooms.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, room string) {
		if room == "" {
			log.Println("❌ Invalid room in join request")
			return
		}
		log.Printf("👥 Socket %s joined room %s\n", c.ID(), room)
		c.Join(room)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, room string) {
		if room == "" {
			return
		}
		c.Leave(room)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return server
}
