// Package mqtt carries the scoreboard byte protocol over an MQTT broker.
package mqtt

import (
	"net/url"
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// ClientOptionsFromURL creates ClientOptions from a broker URL of the
// form mqtt://host:port/topic-prefix.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, topicPrefix, nil
}

// Queue wraps an MQTT client with topic prefixing and resubscription
// across reconnects.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
	OnConnect   func(*Queue)

	subsLock sync.RWMutex
	subs     map[string]Handler
}

// NewQueue creates a Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix, subs: make(map[string]Handler)}
	options.SetOnConnectHandler(q.onConnected)
	options.SetConnectionLostHandler(q.onConnectionLost)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates a Queue from a broker URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client and waits for the result.
func (q *Queue) Connect() error {
	token := q.Client.Connect()
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Sub subscribes a topic relative to the prefix.
func (q *Queue) Sub(topic string, handler Handler) error {
	q.subsLock.Lock()
	q.subs[topic] = handler
	q.subsLock.Unlock()
	if glog.V(2) {
		glog.Infof("SUB %q", q.TopicPrefix+topic)
	}
	token := q.Client.Subscribe(q.TopicPrefix+topic, 0, func(_ paho.Client, msg paho.Message) {
		handler(strings.TrimPrefix(msg.Topic(), q.TopicPrefix), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

// Pub publishes to a topic relative to the prefix.
func (q *Queue) Pub(topic string, payload []byte) error {
	return q.PubWith(topic, payload, 0, false)
}

// PubWith publishes with QoS and retain settings.
func (q *Queue) PubWith(topic string, payload []byte, qos byte, retain bool) error {
	token := q.Client.Publish(q.TopicPrefix+topic, qos, retain, payload)
	token.Wait()
	return token.Error()
}

func (q *Queue) onConnected(paho.Client) {
	glog.Info("connected")
	q.subsLock.RLock()
	defer q.subsLock.RUnlock()
	for topic, handler := range q.subs {
		h := handler
		q.Client.Subscribe(q.TopicPrefix+topic, 0, func(_ paho.Client, msg paho.Message) {
			h(strings.TrimPrefix(msg.Topic(), q.TopicPrefix), msg.Payload())
		})
	}
	if h := q.OnConnect; h != nil {
		h(q)
	}
}

func (q *Queue) onConnectionLost(_ paho.Client, err error) {
	glog.Warningf("connection lost: %v", err)
}
