// Package fedconfig holds the producer configuration snapshot: which
// producers expose which products (topics) to which consumers, and under what
// attribute entitlements. The snapshot is immutable; it is only replaced
// wholesale by a refresh against the management node.
package fedconfig

import (
	"strings"
	"sync"
)

// Attribute is one entitlement a consumer must satisfy on an event's
// security label.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Consumer is an authorised consumer of a product, identified by its IDP
// client id.
type Consumer struct {
	IDPClientID string      `json:"idp_client_id" yaml:"idp_client_id"`
	Attributes  []Attribute `json:"attributes" yaml:"attributes"`
}

// Product types select which stream a subscription opens.
const (
	ProductTypeEvents = "events"
	ProductTypeFiles  = "files"
)

// Product is a named topic-plus-policy exposed by a producer.
type Product struct {
	Name      string     `json:"name" yaml:"name"`
	Type      string     `json:"type" yaml:"type"`
	Topic     string     `json:"topic" yaml:"topic"`
	Consumers []Consumer `json:"consumers" yaml:"consumers"`
}

type Producer struct {
	Name        string    `json:"name" yaml:"name"`
	Host        string    `json:"host" yaml:"host"`
	Port        int       `json:"port" yaml:"port"`
	TLS         bool      `json:"tls" yaml:"tls"`
	IDPClientID string    `json:"idp_client_id" yaml:"idp_client_id"`
	Products    []Product `json:"products" yaml:"products"`
}

// ProducerConfig is the full declared producer/consumer graph for one
// management node.
type ProducerConfig struct {
	Producers []Producer `json:"producers" yaml:"producers"`
}

// Subscription is one (producer, product) pair a consumer is entitled to.
type Subscription struct {
	Producer Producer
	Product  Product
}

// Store guards the current snapshot. Reads are frequent (every stream open
// consults it), replacement is rare.
type Store struct {
	mtx      sync.RWMutex
	snapshot ProducerConfig
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Replace(cfg ProducerConfig) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.snapshot = cfg
}

func (s *Store) Snapshot() ProducerConfig {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.snapshot
}

// IsAuthorizedConsumer reports whether clientID appears as a consumer on any
// product of any producer.
func (s *Store) IsAuthorizedConsumer(clientID string) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, producer := range s.snapshot.Producers {
		for _, product := range producer.Products {
			for _, consumer := range product.Consumers {
				if strings.EqualFold(consumer.IDPClientID, clientID) {
					return true
				}
			}
		}
	}
	return false
}

// ConsumerAttributes returns the attribute entitlements declared for clientID
// on topic. ok is false when the consumer is not entitled to the topic at all.
func (s *Store) ConsumerAttributes(topic, clientID string) ([]Attribute, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, producer := range s.snapshot.Producers {
		for _, product := range producer.Products {
			if product.Topic != topic {
				continue
			}
			for _, consumer := range product.Consumers {
				if strings.EqualFold(consumer.IDPClientID, clientID) {
					return consumer.Attributes, true
				}
			}
		}
	}
	return nil, false
}

// SubscriptionsFor returns every (producer, product) pair clientID consumes.
// The client side maps these to recurring jobs.
func (s *Store) SubscriptionsFor(clientID string) []Subscription {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var subs []Subscription
	for _, producer := range s.snapshot.Producers {
		for _, product := range producer.Products {
			for _, consumer := range product.Consumers {
				if strings.EqualFold(consumer.IDPClientID, clientID) {
					subs = append(subs, Subscription{Producer: producer, Product: product})
					break
				}
			}
		}
	}
	return subs
}
