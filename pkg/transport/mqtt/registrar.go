package mqtt

import (
	"context"
	"encoding/json"
)

// Meta describes a board for discovery.
type Meta struct {
	Description string `json:"description,omitempty"`
	Slots       int    `json:"slots,omitempty"`
}

// Registrar announces a board on the broker: retained metadata on
// boards/<id>/meta, cleared by the broker's will if the connection
// drops and by the registrar itself on shutdown.
type Registrar struct {
	Queue   *Queue
	BoardID string

	metaJSON []byte
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL, boardID string, meta Meta) (*Registrar, error) {
	metaJSON, err := json.Marshal(&meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+boardTopic(boardID, metaTopic), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("scoreboard:" + boardID)
	}
	r := &Registrar{
		Queue:    NewQueue(opts, topicPrefix),
		BoardID:  boardID,
		metaJSON: metaJSON,
	}
	r.Queue.OnConnect = func(*Queue) { r.announce() }
	return r, nil
}

// Name implements Named.
func (r *Registrar) Name() string {
	return "registrar"
}

// Run implements Runnable: connect, stay registered until the
// context ends, then withdraw the announcement.
func (r *Registrar) Run(ctx context.Context) error {
	if !r.Queue.Client.IsConnected() {
		if err := r.Queue.Connect(); err != nil {
			return err
		}
	}
	<-ctx.Done()
	r.Queue.PubWith(boardTopic(r.BoardID, metaTopic), nil, 1, true)
	r.Queue.Close()
	return ctx.Err()
}

func (r *Registrar) announce() {
	r.Queue.PubWith(boardTopic(r.BoardID, metaTopic), r.metaJSON, 1, true)
}
