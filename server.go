package pitchfork

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/websocket"
)

// Server serves a thing.  The thing's state is served on "/", and
// websocket connections are served on "/ws/".  A thing that registers
// other things (a hub) extends the websocket space to "/ws/{id}/", a
// virtual bus per registered thing.
type Server struct {
	thinger  Thinger
	bus      *Bus
	injector *Injector
	user     string
	passwd   string
	regsMu   mutex
	regs     map[string]Socketer
	http.Server
}

func NewServer(thinger Thinger) *Server {
	s := &Server{
		thinger: thinger,
		regs:    make(map[string]Socketer),
	}

	s.bus = NewBus("server bus", nil, s.disconnect)
	s.bus.Handle("", s.handler(thinger))
	s.injector = NewInjector("server injector", s.bus)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/", s.basicAuth(s.serveWebSocket))
	if h, ok := thinger.(http.Handler); ok {
		mux.HandleFunc("/", s.basicAuth(h.ServeHTTP))
	}
	s.Handler = mux

	return s
}

// handler returns a dispatcher delivering bus messages to the thinger's
// subscribers, by message path
func (s *Server) handler(thinger Thinger) func(*Msg) {
	subs := thinger.Subscribers()
	return func(msg *Msg) {
		if sub, ok := subs[msg.path()]; ok {
			sub(msg)
		}
	}
}

// MaxSockets limits the number of sockets on the server
func (s *Server) MaxSockets(n int) {
	s.bus.MaxSockets(n)
}

// BasicAuth protects the server with basic auth user/passwd.  An empty
// user disables auth.
func (s *Server) BasicAuth(user, passwd string) {
	s.user, s.passwd = user, passwd
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.user == "" {
			next(w, r)
			return
		}

		user, passwd, ok := r.BasicAuth()
		if ok {
			userHash := sha256.Sum256([]byte(user))
			passwdHash := sha256.Sum256([]byte(passwd))
			wantUserHash := sha256.Sum256([]byte(s.user))
			wantPasswdHash := sha256.Sum256([]byte(s.passwd))

			// Compare in constant time to foil timing attacks
			userMatch := (subtle.ConstantTimeCompare(userHash[:], wantUserHash[:]) == 1)
			passwdMatch := (subtle.ConstantTimeCompare(passwdHash[:], wantPasswdHash[:]) == 1)

			if userMatch && passwdMatch {
				next(w, r)
				return
			}
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
}

func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(s.serve).ServeHTTP(w, r)
}

func (s *Server) serve(conn *websocket.Conn) {
	req := conn.Request()
	ws := newWebSocket("websocket:"+req.RemoteAddr, s.bus)
	if id := wsId(req.URL.Path); id != "" {
		ws.SetTag(id)
	}
	ws.serveServer(conn)
}

// wsId extracts {id} from path /ws/{id}/
func wsId(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 2 && parts[0] == "ws" {
		return parts[1]
	}
	return ""
}

// Register attaches an announced thing to the server.  The announce
// socket is tagged with the thing's id, opening a virtual bus between
// the thing, its shadow, and any browsers viewing the thing.  The
// announcement is ack'ed so the thing knows to send its state.
func (s *Server) Register(msg *Msg, thinger Thinger) {
	id := thinger.Id()

	if !s.bus.Handle(id, s.handler(thinger)) {
		fmt.Printf("Can't register duplicate id %s\r\n", id)
		return
	}

	msg.Src().SetTag(id)

	s.regsMu.Lock()
	s.regs[id] = msg.Src()
	s.regsMu.Unlock()

	msg.Marshal(&ThingMsg{Path: "attached"}).Reply()
}

// disconnect is called by the bus when a socket unplugs.  If the socket
// carried a registered thing, the thing is unregistered and the
// server's thing is told.
func (s *Server) disconnect(sock Socketer) {
	tag := sock.Tag()
	if tag == "" {
		return
	}

	s.regsMu.Lock()
	if s.regs[tag] != sock {
		// A viewer of the thing, not the thing itself
		s.regsMu.Unlock()
		return
	}
	delete(s.regs, tag)
	s.regsMu.Unlock()

	s.bus.Unhandle(tag)

	var msg Msg
	msg.Marshal(&ThingMsgDisconnect{Path: "disconnected", Id: tag})
	s.injector.Inject(&msg)
}

// DialWebSocket dials a hub's websocket endpoint, announcing the
// thing.  The connection is retried forever.
func (s *Server) DialWebSocket(user, passwd, url string, announce *Msg) {
	ws := newWebSocket("websocket:"+url, s.bus)
	go ws.Dial(user, passwd, url, announce)
}

// Run the server's thing on this hardware
func (s *Server) Run() {
	s.thinger.SetFlag(ThingFlagMetal)
	s.thinger.Run(s.injector)
}
