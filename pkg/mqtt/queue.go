// Package mqtt wraps the paho MQTT client with URL-based
// configuration and prefixed topics.
package mqtt

import (
	"net/url"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback for received messages. topic has the queue's
// prefix already stripped.
type Handler func(topic string, payload []byte)

// Queue wraps an MQTT client with a topic prefix.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
}

// OptionsFromURL builds client options from a URL of the form
// mqtt://[user:pass@]host:port/topic/prefix/[?client-id=...]. The URL
// path becomes the topic prefix.
func OptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	scheme := u.Scheme
	if scheme == "" || scheme == "mqtt" {
		scheme = "tcp"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(scheme + "://" + u.Host).
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

	return opts, strings.TrimPrefix(u.Path, "/"), nil
}

// NewQueueFromURL creates a connected-but-idle Queue. defaultClientID
// is used when the URL does not carry a client-id parameter.
func NewQueueFromURL(brokerURL, defaultClientID string) (*Queue, error) {
	opts, prefix, err := OptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if opts.ClientID == "" {
		opts.SetClientID(defaultClientID)
	}
	opts.SetOnConnectHandler(func(paho.Client) {
		glog.Infof("connected to %s", brokerURL)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		glog.Warningf("connection to %s lost: %v", brokerURL, err)
	})
	return &Queue{Client: paho.NewClient(opts), TopicPrefix: prefix}, nil
}

// Connect connects the client and waits for the result.
func (q *Queue) Connect() error {
	token := q.Client.Connect()
	token.Wait()
	return token.Error()
}

// Sub subscribes handler to prefix+topic.
func (q *Queue) Sub(topic string, handler Handler) error {
	token := q.Client.Subscribe(q.TopicPrefix+topic, 0, func(_ paho.Client, msg paho.Message) {
		handler(strings.TrimPrefix(msg.Topic(), q.TopicPrefix), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

// Pub publishes payload to prefix+topic.
func (q *Queue) Pub(topic string, payload []byte) error {
	token := q.Client.Publish(q.TopicPrefix+topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects the client.
func (q *Queue) Close() {
	q.Client.Disconnect(250)
}
