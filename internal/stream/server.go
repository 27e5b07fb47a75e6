package stream

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/san-kum/debrislab/internal/debris"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes a Hub over HTTP: /ws carries frames and commands, /
// serves a small canvas viewer pointed at /ws.
type Server struct {
	hub *Hub
	env debris.Environment
	srv *http.Server
}

func NewServer(addr string, hub *Hub, env debris.Environment) *Server {
	s := &Server{hub: hub, env: env}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Handler returns the server's routes. Useful for tests that want an
// httptest.Server instead of a real listener.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			log.Printf("stream: upgrade: %v", err)
		}
		return
	}
	s.hub.add(conn)
	go s.hub.readLoop(conn)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, int(s.env.Width), int(s.env.Height), int(s.env.GroundY()))
}

// indexHTML takes arena width, height and ground height. Click to burst,
// press c to clear.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>debrislab</title>
<style>body { margin: 0; background: black; } canvas { display: block; margin: 0 auto; }</style>
</head>
<body>
<canvas id="arena"></canvas>
<script>
var W = %d, H = %d, GROUND = %d;
var canvas = document.getElementById('arena');
canvas.width = W;
canvas.height = H;
var ctx = canvas.getContext('2d');
var colors = {rigid: 'rgb(150,150,150)', semi_rigid: 'rgb(200,150,100)', soft: 'rgb(100,200,150)'};
var frame = null;
var ws = new WebSocket('ws://' + location.host + '/ws');
ws.onmessage = function (ev) { frame = JSON.parse(ev.data); };
canvas.addEventListener('click', function (ev) {
  var r = canvas.getBoundingClientRect();
  ws.send(JSON.stringify({op: 'burst', x: ev.clientX - r.left, y: ev.clientY - r.top, force: 300, count: 20, kind: 'semi_rigid'}));
});
document.addEventListener('keydown', function (ev) {
  if (ev.key === 'c') { ws.send(JSON.stringify({op: 'clear'})); }
});
function draw() {
  ctx.fillStyle = '#141e32';
  ctx.fillRect(0, 0, W, H);
  ctx.fillStyle = '#654321';
  ctx.fillRect(0, GROUND, W, H - GROUND);
  if (frame) {
    var ps = frame.particles || [];
    for (var i = 0; i < ps.length; i++) {
      var p = ps[i];
      ctx.fillStyle = colors[p.kind] || 'white';
      ctx.beginPath();
      ctx.arc(p.x, p.y, p.size * (1 + p.deformation), 0, 2 * Math.PI);
      ctx.fill();
    }
  }
  requestAnimationFrame(draw);
}
draw();
</script>
</body>
</html>
`
