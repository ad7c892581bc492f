package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"

	"github.com/robotalks/scoreboard.go/pkg/transport/mqtt"
	"github.com/robotalks/scoreboard.go/pkg/wire"
)

var mqttURL = "mqtt://localhost:1883/scoreboard/"

func init() {
	if val := os.Getenv("SCOREBOARD_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if err = q.Connect(); err != nil {
		log.Fatalln(err)
	}

	// one parser per topic: command streams from different boards
	// must not share framing state
	parsers := make(map[string]*wire.Parser)

	q.Sub("boards/+/meta", mqtt.Handler(func(topic string, payload []byte) {
		log.Printf("%s: %s", topic, string(payload))
	}))
	q.Sub("boards/+/resp", mqtt.Handler(func(topic string, payload []byte) {
		log.Printf("%s: % x", topic, payload)
	}))
	q.Sub("boards/+/cmd", mqtt.Handler(func(topic string, payload []byte) {
		parser := parsers[topic]
		if parser == nil {
			parser = &wire.Parser{}
			parsers[topic] = parser
		}
		for _, b := range payload {
			pr := parser.Parse(b)
			if pr.Drop != wire.DropNone {
				log.Printf("%s: frame dropped (reason=%d)", topic, pr.Drop)
			}
			if pr.Frame != nil {
				log.Printf("%s: opcode=%#02x payload=% x", topic, pr.Frame.Opcode, pr.Frame.Payload)
			}
		}
	}))
	<-(chan struct{})(nil)
}
