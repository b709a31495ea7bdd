package main

import (
	"github.com/taurusgroup/pubkey/pkg/aead"
)

// Message is what the parties of the key agreement demo exchange.
// Exactly one of PublicKey and Sealed is set.
type Message struct {
	From, To  string
	PublicKey []byte
	Sealed    *aead.Sealed
}

type Network interface {
	Send(msg *Message)
	Next(id string) <-chan *Message
}

type chanNetwork struct {
	listenChannels map[string]chan *Message
}

// NewNetwork returns an in-memory network with one buffered inbox per party.
func NewNetwork(parties ...string) Network {
	lc := make(map[string]chan *Message, len(parties))
	for _, id := range parties {
		lc[id] = make(chan *Message, 2*len(parties))
	}
	return &chanNetwork{listenChannels: lc}
}

func (c *chanNetwork) Next(id string) <-chan *Message {
	return c.listenChannels[id]
}

func (c *chanNetwork) Send(msg *Message) {
	c.listenChannels[msg.To] <- msg
}
