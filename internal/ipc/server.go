// Package ipc exposes a piano over a line protocol on a Unix socket, so an
// external renderer can drive it. One connection at a time owns control;
// the rest may only observe.
package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"hdxpiano/internal/piano"
	"hdxpiano/pkg/format"

	"github.com/rs/zerolog"
)

const (
	server_name = "HDX-Piano"

	DefaultEventTimeout = 2 * time.Second
)

type Server struct {
	// stateMu serialises every call into the piano: the piano is
	// single-threaded and connections are not.
	stateMu   sync.Mutex
	piano     *piano.Piano
	eventSink func(string)

	controlMu    sync.Mutex
	controlOwner net.Conn

	// EventTimeout bounds an event write to the owner. Events are written
	// with stateMu held, so an owner that stops reading is dropped rather
	// than stalling every other connection.
	EventTimeout time.Duration

	log zerolog.Logger
}

func NewServer(p *piano.Piano, log zerolog.Logger) *Server {
	s := &Server{piano: p, log: log, EventTimeout: DefaultEventTimeout}
	p.Subscribe(s.emitEvent)
	return s
}

// ListenAndServe replaces any stale socket at path and serves until the
// listener fails.
func (s *Server) ListenAndServe(path string) error {
	if path == "" {
		path = format.SocketFile
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	s.log.Info().Str("socket", path).Msg("listening")
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	defer ln.Close()
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.HandleConn(c)
	}
}

// emitEvent runs inside a piano call, so stateMu is already held.
func (s *Server) emitEvent(ev piano.Event) {
	if s.eventSink == nil {
		return
	}
	b, _ := json.Marshal(ev)
	s.eventSink("EVENT " + string(b))
}

// ===============================
// Ownership
// ===============================

func (s *Server) isOwner(c net.Conn) bool {
	s.controlMu.Lock()
	defer s.controlMu.Unlock()
	return s.controlOwner == c
}

func (s *Server) claimOwner(c net.Conn) bool {
	s.controlMu.Lock()
	defer s.controlMu.Unlock()
	if s.controlOwner == nil {
		s.controlOwner = c
		return true
	}
	return s.controlOwner == c
}

func (s *Server) releaseOwner(c net.Conn) {
	s.controlMu.Lock()
	owned := s.controlOwner == c
	if owned {
		s.controlOwner = nil
	}
	s.controlMu.Unlock()

	if owned {
		s.stateMu.Lock()
		s.eventSink = nil
		s.stateMu.Unlock()
	}
}

// ===============================
// Connection loop
// ===============================

func writeLine(c net.Conn, layout string, args ...interface{}) {
	fmt.Fprintf(c, layout+"\n", args...)
}

func writeJSON(c net.Conn, v interface{}) {
	j, _ := json.Marshal(v)
	c.Write(append(j, '\n'))
}

type keyInfo struct {
	ID      string `json:"id"`
	Trigger string `json:"trigger"`
	Variant string `json:"variant"`
}

func (s *Server) HandleConn(c net.Conn) {
	log := s.log.With().Str("remote", c.RemoteAddr().String()).Logger()
	defer func() {
		s.releaseOwner(c)
		c.Close()
		log.Debug().Msg("connection closed")
	}()

	sc := bufio.NewScanner(c)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// VERB + raw arg; KEY needs its argument untrimmed
		parts := strings.SplitN(strings.TrimLeft(line, " "), " ", 2)
		cmd := strings.ToUpper(parts[0])
		arg := ""
		if len(parts) == 2 {
			arg = parts[1]
		}

		// ==================================================
		// READ-ONLY COMMANDS
		// ==================================================
		switch cmd {
		case "ABOUT":
			writeLine(c, "%s V.%s", server_name, format.Version)
			continue

		case "PING":
			writeLine(c, "Pong")
			continue

		case "WHOAMI":
			if s.isOwner(c) {
				writeLine(c, "OWNER")
			} else {
				writeLine(c, "OBSERVER")
			}
			continue

		case "STATUS":
			s.stateMu.Lock()
			st := s.piano.Status()
			s.stateMu.Unlock()
			writeJSON(c, st)
			continue

		case "LIST-KEYS":
			var out []keyInfo
			for _, k := range s.piano.Keys() {
				out = append(out, keyInfo{ID: k.ID, Trigger: string(k.Trigger), Variant: k.Variant.String()})
			}
			writeJSON(c, out)
			continue
		}

		// ==================================================
		// CONTROL COMMANDS (owner only)
		// ==================================================
		if !s.claimOwner(c) {
			writeLine(c, "ERR CONTROL_LOCKED")
			continue
		}

		s.stateMu.Lock()
		s.eventSink = func(msg string) {
			c.SetWriteDeadline(time.Now().Add(s.EventTimeout))
			_, err := c.Write([]byte(msg + "\n"))
			c.SetWriteDeadline(time.Time{})
			if err != nil {
				log.Warn().Err(err).Msg("event write failed, dropping owner")
				c.Close()
			}
		}
		reply := s.control(cmd, arg)
		s.stateMu.Unlock()

		if cmd == "RELEASE" {
			s.releaseOwner(c)
		}
		writeLine(c, "%s", reply)
	}
}

// control runs one owner command with stateMu held and returns the reply.
func (s *Server) control(cmd, arg string) string {
	p := s.piano
	switch cmd {
	case "PLAY":
		id := strings.TrimSpace(arg)
		if id == "" {
			return "ERR ARG"
		}
		if !p.Press(id) {
			return "ERR UNKNOWN_KEY"
		}
		return "Playing " + id

	case "KEY":
		if utf8.RuneCountInString(arg) != 1 {
			return "ERR ARG"
		}
		r, _ := utf8.DecodeRuneInString(arg)
		if !p.Type(r) {
			return "Ignored"
		}
		return "Playing " + p.Focused()

	case "VOL-UP":
		p.VolumeUp()
		return fmt.Sprintf("Volume %d%%", p.Percent())

	case "VOL-DOWN":
		p.VolumeDown()
		return fmt.Sprintf("Volume %d%%", p.Percent())

	case "TOGGLE":
		return fmt.Sprintf("Checked %t", p.Toggle())

	case "RELEASE":
		return "Released"
	}
	return "ERR UNKNOWN"
}
