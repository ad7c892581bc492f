package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/scoreboard.go/pkg/board"
	fx "github.com/robotalks/scoreboard.go/pkg/framework"
	"github.com/robotalks/scoreboard.go/pkg/mux"
	"github.com/robotalks/scoreboard.go/pkg/mux/gpio"
	"github.com/robotalks/scoreboard.go/pkg/transport/mqtt"
	"github.com/robotalks/scoreboard.go/pkg/transport/serial"
	ws "github.com/robotalks/scoreboard.go/pkg/transport/websocket"
	"github.com/robotalks/scoreboard.go/pkg/wire"
)

var conf struct {
	serialDevice string
	baud         int
	listenWS     string
	mqttURL      string
	boardID      string

	slots           int
	sink            string
	gpioChip        string
	segmentPins     string
	selectPins      string
	redLampPin      int
	blueLampPin     int
	activeLowSelect bool
}

func init() {
	flag.StringVar(&conf.serialDevice, "serial", "", "Serial device of the control link, e.g. /dev/ttyS0.")
	flag.IntVar(&conf.baud, "baud", serial.DefaultBaud, "Serial baud rate.")
	flag.StringVar(&conf.listenWS, "listen-ws", "", "Listen address for the websocket control link, e.g. :8021.")
	flag.StringVar(&conf.mqttURL, "mqtt", "", "MQTT broker URL for the control link, e.g. mqtt://host:1883/scoreboard/")
	flag.StringVar(&conf.boardID, "id", defaultBoardID(), "Board ID on the MQTT broker.")

	flag.IntVar(&conf.slots, "slots", board.WiredLayout.Slots, "Wired digit slots (6, or 8 with blue score digits).")
	flag.StringVar(&conf.sink, "sink", "gpio", "Digit output: gpio or none.")
	flag.StringVar(&conf.gpioChip, "gpio-chip", "gpiochip0", "GPIO chip device name.")
	flag.StringVar(&conf.segmentPins, "segment-pins", "0,1,2,3,4,5,6", "7 segment bus line offsets, a-g.")
	flag.StringVar(&conf.selectPins, "select-pins", "7,8,9,10,11,12", "Digit select line offsets, one per slot.")
	flag.IntVar(&conf.redLampPin, "red-lamp-pin", -1, "Red indicator lamp line offset, -1 for none.")
	flag.IntVar(&conf.blueLampPin, "blue-lamp-pin", -1, "Blue indicator lamp line offset, -1 for none.")
	flag.BoolVar(&conf.activeLowSelect, "active-low-select", true, "Digit select lines are active low.")
}

func defaultBoardID() string {
	if id, err := machineid.ID(); err == nil {
		return id
	}
	return ""
}

func parsePins(s string) ([]int, error) {
	items := strings.Split(s, ",")
	pins := make([]int, len(items))
	for i, item := range items {
		pin, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return nil, fmt.Errorf("invalid pin %q: %v", item, err)
		}
		pins[i] = pin
	}
	return pins, nil
}

func openSink() (mux.Sink, board.LampSink, io.Closer, error) {
	switch conf.sink {
	case "none":
		return mux.Discard, nil, nil, nil
	case "gpio":
		segments, err := parsePins(conf.segmentPins)
		if err != nil {
			return nil, nil, nil, err
		}
		if len(segments) != 7 {
			return nil, nil, nil, fmt.Errorf("exactly 7 segment pins required")
		}
		selects, err := parsePins(conf.selectPins)
		if err != nil {
			return nil, nil, nil, err
		}
		if len(selects) != conf.slots {
			return nil, nil, nil, fmt.Errorf("%d select pins required for %d slots", conf.slots, conf.slots)
		}
		gconf := gpio.Config{
			Chip:            conf.gpioChip,
			SelectPins:      selects,
			RedLampPin:      conf.redLampPin,
			BlueLampPin:     conf.blueLampPin,
			ActiveLowSelect: conf.activeLowSelect,
		}
		copy(gconf.SegmentPins[:], segments)
		sink, err := gpio.Open(gconf)
		if err != nil {
			return nil, nil, nil, err
		}
		return sink, sink, sink, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown sink %q", conf.sink)
}

func main() {
	flag.Parse()

	if conf.slots < 1 || conf.slots > board.MaxSlots {
		glog.Exitf("slots must be between 1 and %d", board.MaxSlots)
	}
	transports := 0
	for _, set := range []bool{conf.serialDevice != "", conf.listenWS != "", conf.mqttURL != ""} {
		if set {
			transports++
		}
	}
	if transports != 1 {
		glog.Exit("exactly one of -serial, -listen-ws, -mqtt is required")
	}

	sink, lamps, closer, err := openSink()
	if err != nil {
		glog.Exit(err)
	}
	if closer != nil {
		defer closer.Close()
	}

	dispatcher := board.NewDispatcher(board.Layout{Slots: conf.slots})
	dispatcher.Lamps = lamps

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NewTicker(mux.DefaultPeriod).Add(mux.New(dispatcher, sink)))

	var port *wire.Port
	switch {
	case conf.serialDevice != "":
		sp, err := serial.Open(serial.Config{Device: conf.serialDevice, Baud: conf.baud})
		if err != nil {
			glog.Exit(err)
		}
		port = wire.NewPort(sp)
		port.Handler = dispatcher
		runner.Go(port)
		glog.Infof("scoreboard on %s at %d baud", conf.serialDevice, conf.baud)

	case conf.listenWS != "":
		runner.Go(fx.NamedRun("ws", fx.RunFunc(func(ctx context.Context) error {
			// one console at a time; the board state has a single
			// foreground owner
			var connLock sync.Mutex
			srv := &http.Server{
				Addr: conf.listenWS,
				Handler: ws.Handler(func(conn io.ReadWriteCloser) {
					connLock.Lock()
					defer connLock.Unlock()
					consolePort := wire.NewPort(conn)
					consolePort.Handler = dispatcher
					if err := consolePort.Run(ctx); err != nil && ctx.Err() == nil {
						glog.V(4).Infof("console disconnected: %v", err)
					}
					logStats("console", consolePort)
				}),
			}
			return fx.RunWithContextCancel(ctx, func() { srv.Close() }, func() error {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					return err
				}
				return nil
			})
		})))
		glog.Infof("scoreboard listening on ws://%s", conf.listenWS)

	case conf.mqttURL != "":
		if conf.boardID == "" {
			glog.Exit("board ID is required with -mqtt")
		}
		registrar, err := mqtt.NewRegistrar(conf.mqttURL, conf.boardID, mqtt.Meta{
			Description: "competition scoreboard",
			Slots:       conf.slots,
		})
		if err != nil {
			glog.Exit(err)
		}
		if err = registrar.Queue.Connect(); err != nil {
			glog.Exit(err)
		}
		rw := mqtt.NewReadWriter(registrar.Queue).ForBoard(conf.boardID)
		if err = rw.Open(); err != nil {
			glog.Exit(err)
		}
		port = wire.NewPort(rw)
		port.Handler = dispatcher
		runner.Go(registrar, port)
		glog.Infof("scoreboard %q on %s", conf.boardID, conf.mqttURL)
	}

	err = runner.Wait()
	if port != nil {
		logStats("link", port)
	}
	if err != nil {
		glog.Exit(err)
	}
}

func logStats(name string, port *wire.Port) {
	stats := port.Stats()
	glog.Infof("%s stats: frames=%d drops=%d discarded=%d",
		name, stats.Frames, stats.Drops, stats.Discarded)
}
