// Package notify fans stored notifications out over NATS so connected
// clients see them without polling.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/campus-link/api-go/models"
)

const subjectPrefix = "favores.notificaciones."

// Subject is the per-user subject a notification is published on.
func Subject(userID string) string {
	return subjectPrefix + userID
}

// SubjectAll matches every user's notification subject.
const SubjectAll = subjectPrefix + ">"

type Publisher struct {
	nc  *nats.Conn
	log *zap.Logger
}

// Connect dials url and returns a publisher over that connection.
func Connect(url string, log *zap.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("campus-link-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return NewPublisher(nc, log), nil
}

func NewPublisher(nc *nats.Conn, log *zap.Logger) *Publisher {
	return &Publisher{nc: nc, log: log}
}

// Encode is the wire form of a notification.
func Encode(n *models.Notificacion) ([]byte, error) {
	return json.Marshal(n)
}

func (p *Publisher) Publish(n *models.Notificacion) error {
	data, err := Encode(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := p.nc.Publish(Subject(n.UsuarioID), data); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	p.log.Debug("notification published", zap.String("subject", Subject(n.UsuarioID)))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.log.Warn("nats drain failed", zap.Error(err))
	}
}
