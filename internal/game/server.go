package game

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"LumenChat/internal/chatbot"
)

// Dispatcher executes a command for the connected player.
// Returning true indicates the connection should terminate.
type Dispatcher func(*World, *Player, string) bool

type serverOptions struct {
	logger    *zap.Logger
	bot       *chatbot.Bot
	rulesDir  string
	botConfig *chatbot.Config
}

// ServerOption customises the behaviour of ListenAndServe.
type ServerOption func(*serverOptions)

// WithLogger routes server logs through logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(opts *serverOptions) {
		opts.logger = logger
	}
}

// WithChatBot attaches bot to the world. rulesDir is reread on reload.
func WithChatBot(bot *chatbot.Bot, rulesDir string) ServerOption {
	return func(opts *serverOptions) {
		opts.bot = bot
		opts.rulesDir = strings.TrimSpace(rulesDir)
	}
}

// WithChatBotConfig sets the chatbot configuration shown to players.
func WithChatBotConfig(cfg chatbot.Config) ServerOption {
	return func(opts *serverOptions) {
		opts.botConfig = &cfg
	}
}

var (
	accountManagerFactory = NewAccountManager
	worldFactory          = NewWorld
	netListenFunc         = net.Listen
)

const (
	postLoginAtmosphere = "The server hums quietly, ready for your questions."
	postLoginPrompt     = "Type 'help' to learn the essentials or 'ask' to talk to the bot."
	logoffAtmosphere    = "The terminal dims as the connection winds down."
)

func handleConn(conn net.Conn, world *World, accounts *AccountManager, dispatcher Dispatcher, logger *zap.Logger) {
	session := NewTelnetSession(conn)
	defer session.Close()
	account, isAdmin, err := login(session, accounts)
	if err != nil {
		logger.Debug("login ended", zap.String("remote", session.RemoteHost()), zap.Error(err))
		return
	}
	username := account.Name

	for {
		if _, ok := world.ActivePlayer(username); !ok {
			break
		}

		notice := "\r\n" + Style("Another session for "+HighlightName(username)+" is already active.", AnsiYellow)
		_ = session.WriteString(Ansi(notice))
		_ = session.WriteString(Ansi("\r\nTake over the existing session? (yes/no): "))
		response, err := session.ReadLine()
		if err != nil {
			return
		}
		switch strings.ToLower(Trim(response)) {
		case "y", "yes":
			oldSession, oldOutput, ok := world.PrepareTakeover(username)
			if !ok {
				continue
			}
			takeover := Ansi("\r\n" + Style("Your connection has been claimed from another location.", AnsiYellow) + "\r\n")
			if oldOutput != nil {
				select {
				case oldOutput <- takeover:
				default:
				}
				close(oldOutput)
			}
			if oldSession != nil {
				_ = oldSession.Close()
			}
			_ = session.WriteString(Ansi("\r\n" + Style("Previous connection released.\r\n", AnsiGreen)))
		case "n", "no":
			_ = session.WriteString(Ansi("\r\n" + Style("Maintaining the existing session.\r\n", AnsiYellow)))
			return
		default:
			_ = session.WriteString(Ansi("\r\n" + Style("Please respond with 'yes' or 'no'.", AnsiYellow)))
		}
	}

	p, err := world.addPlayer(account, session, isAdmin, accounts.Profile(username))
	if err != nil {
		_ = session.WriteString(Ansi(Style("\r\n"+err.Error()+"\r\n", AnsiYellow)))
		return
	}

	if err := accounts.RecordLogin(username, time.Now().UTC()); err != nil {
		logger.Warn("failed to record login", zap.String("player", username), zap.Error(err))
	}
	logger.Info("player connected",
		zap.String("player", username),
		zap.String("remote", session.RemoteHost()),
		zap.String("terminal", session.Terminal()),
	)

	go func() {
		for out := range p.Output {
			_ = session.WriteString(out)
		}
	}()

	p.Output <- Ansi("\r\n" + Style(postLoginAtmosphere, AnsiMagenta, AnsiBold) + "\r\n")
	p.Output <- Ansi("Welcome, " + HighlightName(p.Name) + Style("!\r\n", AnsiMagenta))
	p.Output <- Ansi(Style(postLoginPrompt+"\r\n", AnsiGreen))
	world.BroadcastToRealm(p.Realm, Ansi(fmt.Sprintf("\r\n%s joins.", HighlightName(p.Name))), p)
	p.Output <- Prompt()

	_ = conn.SetReadDeadline(time.Time{})

	for {
		line, err := session.ReadLine()
		if err != nil {
			break
		}
		line = Trim(line)
		if line == "" {
			p.Output <- Prompt()
			continue
		}
		if !p.allowCommand(time.Now()) {
			p.Output <- Ansi(Style("\r\nYou are sending commands too quickly. Please wait.", AnsiYellow))
			p.Output <- Prompt()
			continue
		}
		if !p.Alive {
			break
		}
		if quit := dispatcher(world, p, line); quit {
			break
		}
		p.Output <- Prompt()
	}

	if p.Session != session {
		return
	}

	farewell := "\r\n" + Style(logoffAtmosphere, AnsiMagenta, AnsiBold) + "\r\n"
	p.Output <- Ansi(farewell)
	p.Output <- Ansi("Until next time, " + HighlightName(p.Name) + Style(".\r\n", AnsiMagenta))
	p.Output <- Ansi(Style("\r\n"+copyrightNotice+"\r\n", AnsiBlue, AnsiDim))
	p.Alive = false
	world.BroadcastToRealm(p.Realm, Ansi(fmt.Sprintf("\r\n%s leaves.", HighlightName(p.Name))), p)
	world.PersistPlayer(p)
	world.removePlayer(p.Name)
	logger.Info("player disconnected", zap.String("player", username))
}

// ListenAndServe starts a telnet server on addr using the account database
// at accountsPath. The dispatcher executes player commands. Players logging
// in with adminAccount (case-insensitive) receive administrator privileges.
// It returns when the listener encounters a fatal error.
func ListenAndServe(addr, accountsPath, adminAccount string, dispatcher Dispatcher, opts ...ServerOption) error {
	if dispatcher == nil {
		return fmt.Errorf("dispatcher must not be nil")
	}

	options := serverOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	accounts, err := accountManagerFactory(accountsPath)
	if err != nil {
		return err
	}
	accounts.SetAdminAccount(adminAccount)

	world := worldFactory(logger)
	world.AttachAccountManager(accounts)
	if options.bot != nil {
		world.AttachChatBot(options.bot, options.rulesDir)
	}
	if options.botConfig != nil {
		world.SetChatBotConfig(*options.botConfig)
	}

	ln, err := netListenFunc("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	logger.Info("Server listening", zap.Stringer("addr", ln.Addr()))

	return acceptConnections(ln, logger, func(conn net.Conn) {
		go handleConn(conn, world, accounts, dispatcher, logger)
	})
}

const (
	acceptBackoffStart = 50 * time.Millisecond
	acceptBackoffMax   = time.Second
)

var acceptSleep = time.Sleep

func acceptConnections(ln net.Listener, logger *zap.Logger, handle func(net.Conn)) error {
	backoff := acceptBackoffStart
	for {
		conn, err := ln.Accept()
		if err != nil {
			if isTemporaryAcceptError(err) {
				logger.Warn("temporary error accepting connection", zap.Error(err), zap.Duration("retry_in", backoff))
				acceptSleep(backoff)
				backoff = min(backoff*2, acceptBackoffMax)
				continue
			}
			return err
		}
		backoff = acceptBackoffStart
		handle(conn)
	}
}

func isTemporaryAcceptError(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() || ne.Temporary() {
			return true
		}
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}
