package sh

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/scoreboard.go/pkg/transport/mqtt"
	"github.com/robotalks/scoreboard.go/pkg/wire"
)

// Shell provides the ishell backed operator console.
type Shell struct {
	Interactive bool

	Shell  *ishell.Shell
	Config *Config
	Conn   *Conn
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "

	pingTimeout     = time.Second
	discoverTimeout = 500 * time.Millisecond
)

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Config:      conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Conn == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// SendFrame sends a frame on the shell's connection.
func SendFrame(c *ishell.Context, f *wire.Frame) {
	if err := ShellFrom(c).Conn.Send(f); err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}

// Connect dials the configured link and pings the board.
func (s *Shell) Connect() error {
	name, rwc, err := s.Config.Dial()
	if err != nil {
		return err
	}
	conn := newConn(name, rwc)
	if err := conn.Ping(pingTimeout); err != nil {
		conn.Close()
		return fmt.Errorf("board not responding: %v", err)
	}
	s.Conn = conn
	s.Shell.SetPrompt("[" + name + "] > ")
	return nil
}

// Disconnect closes the current connection.
func (s *Shell) Disconnect() {
	if s.Conn != nil {
		s.Conn.Close()
		s.Conn = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run starts the shell or evaluates the command line.
func (s *Shell) Run() {
	defer s.Disconnect()
	if s.Interactive {
		s.Shell.Run()
		return
	}
	if err := s.Shell.Process(flag.Args()...); err != nil {
		log.Fatalln(err)
	}
}

// Main is intended to be used in main after flag.Parse.
func Main() {
	New(NewConfig()).Run()
}

var (
	// DiscoverCmd lists boards announced on the MQTT broker.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"ls"},
		Help:    "list boards registered on the MQTT broker",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			q, err := mqtt.NewQueueFromURL(s.Config.MQTTBrokerURL)
			if err != nil {
				c.Err(err)
				return
			}
			if err = q.Connect(); err != nil {
				c.Err(err)
				return
			}
			defer q.Close()
			found := make(chan string, 16)
			q.Sub("boards/+/meta", func(topic string, payload []byte) {
				if len(payload) > 0 {
					found <- fmt.Sprintf("%s: %s", topic, payload)
				}
			})
			timeout := time.After(discoverTimeout)
			for {
				select {
				case line := <-found:
					c.Println(line)
				case <-timeout:
					return
				}
			}
		},
	}

	// ConnectCmd dials the board selected by flags.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "connect to the board selected by -serial/-ws/-board",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			s.Disconnect()
			if err := s.Connect(); err != nil {
				c.Err(err)
				return
			}
			c.Println("connected to", s.Conn.Name())
		},
	}

	// DisconnectCmd closes the current connection.
	DisconnectCmd = ishell.Cmd{
		Name: "disconnect",
		Help: "close the current connection",
		Func: MustBeConnected(func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		}),
	}
)
