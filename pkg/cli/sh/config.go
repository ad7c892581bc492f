package sh

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/robotalks/scoreboard.go/pkg/transport/mqtt"
	"github.com/robotalks/scoreboard.go/pkg/transport/serial"
	"github.com/robotalks/scoreboard.go/pkg/transport/websocket"
)

// Config selects the link to the scoreboard.
type Config struct {
	SerialDevice  string
	Baud          int
	WSURL         string
	MQTTBrokerURL string
	BoardID       string
}

var defaultConfig = Config{
	Baud:          serial.DefaultBaud,
	MQTTBrokerURL: "mqtt://localhost:1883/scoreboard/",
}

func init() {
	if val := os.Getenv("SCOREBOARD_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SerialDevice, "serial", defaultConfig.SerialDevice, "Serial device of the board, e.g. /dev/ttyUSB0.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.StringVar(&defaultConfig.WSURL, "ws", defaultConfig.WSURL, "Websocket URL of the board, e.g. ws://host:8021/")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.BoardID, "board", defaultConfig.BoardID, "Board ID on the MQTT broker.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

type mqttStream struct {
	*mqtt.ReadWriter
	queue *mqtt.Queue
}

func (s *mqttStream) Close() error {
	s.ReadWriter.Close()
	return s.queue.Close()
}

// Dial opens the configured link. Preference order: serial,
// websocket, MQTT (which additionally needs a board ID).
func (c *Config) Dial() (string, io.ReadWriteCloser, error) {
	switch {
	case c.SerialDevice != "":
		port, err := serial.Open(serial.Config{Device: c.SerialDevice, Baud: c.Baud})
		return c.SerialDevice, port, err
	case c.WSURL != "":
		conn, err := websocket.Dial(c.WSURL)
		return c.WSURL, conn, err
	case c.BoardID != "":
		q, err := mqtt.NewQueueFromURL(c.MQTTBrokerURL)
		if err != nil {
			return "", nil, err
		}
		if err = q.Connect(); err != nil {
			return "", nil, err
		}
		rw := mqtt.NewReadWriter(q).ForConsole(c.BoardID)
		if err = rw.Open(); err != nil {
			q.Close()
			return "", nil, err
		}
		return c.BoardID, &mqttStream{ReadWriter: rw, queue: q}, nil
	}
	return "", nil, fmt.Errorf("one of -serial, -ws or -board is required")
}
