// Package score provides the scoreboard console commands.
package score

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/scoreboard.go/pkg/cli/sh"
	"github.com/robotalks/scoreboard.go/pkg/wire"
)

func parseByte(c *ishell.Context, arg, name string) (byte, bool) {
	val, err := strconv.ParseUint(arg, 10, 8)
	if err != nil {
		c.Err(fmt.Errorf("invalid %s: %v", name, err))
		return 0, false
	}
	return byte(val), true
}

var (
	// ScoreCmd sends OpUpdateScore.
	ScoreCmd = ishell.Cmd{
		Name:    "score",
		Aliases: []string{"s"},
		Help:    "RED BLUE",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("RED and BLUE required"))
				return
			}
			red, ok := parseByte(c, c.Args[0], "RED")
			if !ok {
				return
			}
			blue, ok := parseByte(c, c.Args[1], "BLUE")
			if !ok {
				return
			}
			sh.SendFrame(c, wire.ScoreFrame(red, blue))
		}),
	}

	// TimerCmd sends OpUpdateTimer.
	TimerCmd = ishell.Cmd{
		Name:    "timer",
		Aliases: []string{"t"},
		Help:    "MINUTES SECONDS",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("MINUTES and SECONDS required"))
				return
			}
			minutes, ok := parseByte(c, c.Args[0], "MINUTES")
			if !ok {
				return
			}
			seconds, ok := parseByte(c, c.Args[1], "SECONDS")
			if !ok {
				return
			}
			sh.SendFrame(c, wire.TimerFrame(minutes, seconds))
		}),
	}

	// StartCmd sends OpStartMatch.
	StartCmd = ishell.Cmd{
		Name: "start",
		Help: "start the match",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.SendFrame(c, wire.StartFrame())
		}),
	}

	// StopCmd sends OpStopMatch.
	StopCmd = ishell.Cmd{
		Name: "stop",
		Help: "stop the match",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.SendFrame(c, wire.StopFrame())
		}),
	}

	// ResetCmd sends OpResetMatch.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "restore power-on defaults",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.SendFrame(c, wire.ResetFrame())
		}),
	}

	// PingCmd probes board liveness.
	PingCmd = ishell.Cmd{
		Name: "ping",
		Help: "probe board liveness",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if err := sh.ShellFrom(c).Conn.Ping(time.Second); err != nil {
				c.Err(err)
				return
			}
			c.Println("alive")
		}),
	}

	// LedCmd sends OpSetIndicator.
	LedCmd = ishell.Cmd{
		Name: "led",
		Help: "red|blue on|off",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("ALLIANCE and on|off required"))
				return
			}
			var alliance byte
			switch c.Args[0] {
			case "red":
				alliance = wire.AllianceRed
			case "blue":
				alliance = wire.AllianceBlue
			default:
				c.Err(fmt.Errorf("ALLIANCE must be red or blue"))
				return
			}
			var on bool
			switch c.Args[1] {
			case "on":
				on = true
			case "off":
			default:
				c.Err(fmt.Errorf("expected on or off"))
				return
			}
			sh.SendFrame(c, wire.IndicatorFrame(alliance, on))
		}),
	}
)

func init() {
	sh.AddCmds(
		&ScoreCmd,
		&TimerCmd,
		&StartCmd,
		&StopCmd,
		&ResetCmd,
		&PingCmd,
		&LedCmd,
	)
}
