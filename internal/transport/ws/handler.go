package ws

import (
	"net"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/linechat-server/internal/core"
)

const readBufferSize = 4096

// wsHandler upgrades the connection and bridges it into a core session. The
// WebSocket is adapted to a net.Conn so both transports share one session
// shape: raw bytes in, raw bytes out, '\n'-framed by the session's splitter.
func wsHandler(srv *core.Server, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error().Err(err).Msg("ws accept error")
			return
		}

		nc := websocket.NetConn(c.Request.Context(), conn, websocket.MessageText)
		sess := srv.NewSession()
		logger.Debug().
			Str("session_id", sess.ID()).
			Str("remote", c.Request.RemoteAddr).
			Msg("ws connection accepted")

		go writeLoop(nc, sess)
		readLoop(nc, sess)
	}
}

// readLoop feeds inbound bytes to the session until the socket dies; the
// session, not the message boundary, decides where frames end.
func readLoop(conn net.Conn, sess *core.Session) {
	buf := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			sess.Receive(buf[:n])
		}
		if err != nil {
			sess.Close()
			return
		}
	}
}

func writeLoop(conn net.Conn, sess *core.Session) {
	defer conn.Close()
	for p := range sess.Outbound() {
		if _, err := conn.Write(p); err != nil {
			return
		}
	}
}
