package eventpubsub

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

// Dispatcher routes page and user action events to their handlers.
// Delivery is synchronous: Publish returns after the handler has updated the page state.
type Dispatcher struct {
	bus EventBus.Bus
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		bus: EventBus.New(),
	}
}

func (d *Dispatcher) Subscribe(subscriberName string, topic EventName, callbackFn interface{}) error {
	if d.bus.HasCallback(string(topic)) {
		return fmt.Errorf("Dispatcher.Subscribe: [%v] topic %s already has a handler", subscriberName, topic)
	}

	if err := d.bus.Subscribe(string(topic), callbackFn); err != nil {
		return fmt.Errorf("Dispatcher.Subscribe: [%v] %s: %w", subscriberName, topic, err)
	}

	log.Debugf("[%v] Subscribed to topic %s", subscriberName, topic)
	return nil
}

func (d *Dispatcher) Publish(publisherName string, topic EventName, args ...interface{}) error {
	if !d.bus.HasCallback(string(topic)) {
		return fmt.Errorf("Dispatcher.Publish: [%v] no handler for topic %s", publisherName, topic)
	}

	log.Debugf("[%v] Published to topic %s", publisherName, topic)

	d.bus.Publish(string(topic), args...)
	return nil
}
