package game

import (
	"bufio"
	"bytes"
	"net"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Telnet commands (RFC 854).
const (
	telnetSE   byte = 240
	telnetSB   byte = 250
	telnetWILL byte = 251
	telnetWONT byte = 252
	telnetDO   byte = 253
	telnetDONT byte = 254
	telnetIAC  byte = 255
)

// Telnet options.
const (
	optEcho         byte = 1
	optSuppressGA   byte = 3
	optTerminalType byte = 24
	optWindowSize   byte = 31
	optLineMode     byte = 34
	optCharset      byte = 42
)

// CHARSET subnegotiation verbs (RFC 2066).
const (
	charsetRequest  byte = 1
	charsetAccepted byte = 2
)

const offeredCharsets = ";UTF-8;CP437;ISO-8859-1"

// Input past these limits is dropped until the line or subnegotiation ends.
const (
	maxLineLength         = 4096
	maxSubnegotiationSize = 256
)

var knownCharmaps = map[string]*charmap.Charmap{
	"CP437":     charmap.CodePage437,
	"IBM437":    charmap.CodePage437,
	"ISO88591":  charmap.ISO8859_1,
	"LATIN1":    charmap.ISO8859_1,
	"ISO885915": charmap.ISO8859_15,
	"CP1252":    charmap.Windows1252,
}

// TelnetSession wraps a client connection, handling option negotiation and
// line assembly.
type TelnetSession struct {
	conn   net.Conn
	reader *bufio.Reader

	mu      sync.Mutex
	width   int
	height  int
	term    string
	charset *charmap.Charmap
}

// NewTelnetSession negotiates the options the server cares about and returns
// the session.
func NewTelnetSession(conn net.Conn) *TelnetSession {
	s := &TelnetSession{
		conn:   conn,
		reader: bufio.NewReader(conn),
		width:  80,
		height: 24,
	}
	_ = s.command(telnetWILL, optSuppressGA)
	_ = s.command(telnetWONT, optEcho)
	_ = s.command(telnetDONT, optLineMode)
	_ = s.command(telnetDO, optTerminalType)
	_ = s.command(telnetDO, optWindowSize)
	_ = s.command(telnetDO, optCharset)
	return s
}

func (s *TelnetSession) command(verb, opt byte) error {
	return s.writeRaw([]byte{telnetIAC, verb, opt})
}

func (s *TelnetSession) writeRaw(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.Write(payload)
	return err
}

// WriteString sends msg, converting line endings and escaping IAC.
func (s *TelnetSession) WriteString(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := []byte(msg)
	if s.charset != nil {
		data = encodeWithCharmap(s.charset, data)
	}
	_, err := s.conn.Write(translateForTelnet(data))
	return err
}

// ReadLine returns the next input line with telnet commands removed. Lines
// longer than maxLineLength bytes are truncated.
func (s *TelnetSession) ReadLine() (string, error) {
	var buf bytes.Buffer
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case '\r':
			if next, err := s.reader.Peek(1); err == nil && (next[0] == '\n' || next[0] == 0) {
				_, _ = s.reader.ReadByte()
			}
			return s.decodeLine(buf.Bytes()), nil
		case '\n':
			return s.decodeLine(buf.Bytes()), nil
		case 0x08, 0x7f:
			if buf.Len() > 0 {
				buf.Truncate(buf.Len() - 1)
			}
		case telnetIAC:
			if err := s.readCommand(&buf); err != nil {
				return "", err
			}
		default:
			if buf.Len() < maxLineLength {
				buf.WriteByte(b)
			}
		}
	}
}

func (s *TelnetSession) decodeLine(raw []byte) string {
	s.mu.Lock()
	cm := s.charset
	s.mu.Unlock()
	if cm != nil {
		return sanitizeInput(decodeWithCharmap(cm, raw))
	}
	return sanitizeTelnetString(raw)
}

func (s *TelnetSession) readCommand(buf *bytes.Buffer) error {
	verb, err := s.reader.ReadByte()
	if err != nil {
		return err
	}
	switch verb {
	case telnetIAC:
		if buf.Len() < maxLineLength {
			buf.WriteByte(telnetIAC)
		}
	case telnetDO, telnetDONT, telnetWILL, telnetWONT:
		opt, err := s.reader.ReadByte()
		if err != nil {
			return err
		}
		s.negotiate(verb, opt)
	case telnetSB:
		return s.readSubnegotiation()
	}
	return nil
}

func (s *TelnetSession) negotiate(verb, opt byte) {
	switch verb {
	case telnetDO:
		if opt == optSuppressGA {
			_ = s.command(telnetWILL, opt)
			return
		}
		_ = s.command(telnetWONT, opt)
	case telnetWILL:
		switch opt {
		case optWindowSize:
		case optTerminalType:
			_ = s.writeRaw([]byte{telnetIAC, telnetSB, optTerminalType, 1, telnetIAC, telnetSE})
		case optCharset:
			_ = s.writeRaw(append([]byte{telnetIAC, telnetSB, optCharset, charsetRequest},
				append([]byte(offeredCharsets), telnetIAC, telnetSE)...))
		default:
			_ = s.command(telnetDONT, opt)
		}
	}
}

func (s *TelnetSession) readSubnegotiation() error {
	opt, err := s.reader.ReadByte()
	if err != nil {
		return err
	}
	payload := make([]byte, 0, 16)
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return err
		}
		if b != telnetIAC {
			if len(payload) < maxSubnegotiationSize {
				payload = append(payload, b)
			}
			continue
		}
		next, err := s.reader.ReadByte()
		if err != nil {
			return err
		}
		if next == telnetSE {
			break
		}
		if next == telnetIAC && len(payload) < maxSubnegotiationSize {
			payload = append(payload, telnetIAC)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch opt {
	case optTerminalType:
		if len(payload) > 1 && payload[0] == 0 {
			s.term = strings.ToUpper(string(payload[1:]))
		}
	case optWindowSize:
		if len(payload) >= 4 {
			s.width = int(payload[0])<<8 | int(payload[1])
			s.height = int(payload[2])<<8 | int(payload[3])
		}
	case optCharset:
		if len(payload) > 1 && payload[0] == charsetAccepted {
			s.charset = charmapFor(string(payload[1:]))
		}
	}
	return nil
}

// Close closes the connection.
func (s *TelnetSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Size reports the client window size.
func (s *TelnetSession) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// RemoteHost returns the host part of the peer address.
func (s *TelnetSession) RemoteHost() string {
	if s == nil || s.conn == nil || s.conn.RemoteAddr() == nil {
		return ""
	}
	addr := s.conn.RemoteAddr().String()
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return host
}

func translateForTelnet(msg []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(msg) + 8)
	var prev byte
	for _, b := range msg {
		switch b {
		case '\n':
			if prev != '\r' {
				buf.WriteByte('\r')
			}
			buf.WriteByte('\n')
		case telnetIAC:
			buf.WriteByte(telnetIAC)
			buf.WriteByte(telnetIAC)
		default:
			buf.WriteByte(b)
		}
		prev = b
	}
	return buf.Bytes()
}

func normalizeToken(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(upper)
}

func parseCharsetList(list string) []string {
	parts := strings.Split(list, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// charmapFor returns the single-byte charmap for an accepted charset, or nil
// for UTF-8 and anything unknown.
func charmapFor(name string) *charmap.Charmap {
	for _, candidate := range parseCharsetList(name) {
		if cm, ok := knownCharmaps[normalizeToken(candidate)]; ok {
			return cm
		}
	}
	return nil
}

func encodeWithCharmap(cm *charmap.Charmap, data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if b, ok := cm.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		out = append(out, '?')
	}
	return out
}

func decodeWithCharmap(cm *charmap.Charmap, data []byte) string {
	var builder strings.Builder
	builder.Grow(len(data))
	for _, b := range data {
		builder.WriteRune(cm.DecodeByte(b))
	}
	return builder.String()
}

func sanitizeTelnetString(raw []byte) string {
	if !utf8.Valid(raw) {
		return sanitizeInput(decodeWithCharmap(charmap.ISO8859_1, raw))
	}
	return sanitizeInput(string(raw))
}

// Terminal reports the terminal type announced by the client.
func (s *TelnetSession) Terminal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}
