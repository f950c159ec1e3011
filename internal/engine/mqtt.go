package engine

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ivlev/framekit/internal/system"
)

// Publisher is the part of mqtt.Client used for progress messages.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTProgress publishes batch and frame status as JSON messages.
type MQTTProgress struct {
	Client  Publisher
	Topic   string
	QoS     byte
	Timeout time.Duration
}

// Event is the payload published by MQTTProgress.
type Event struct {
	Type     string `json:"type"`
	Batch    *Batch `json:"batch,omitempty"`
	Frame    *int   `json:"frame,omitempty"`
	Segment  string `json:"segment,omitempty"`
	FileName string `json:"file_name,omitempty"`
	Error    string `json:"error,omitempty"`
	Failed   int    `json:"failed,omitempty"`
}

func NewMQTTProgress(client mqtt.Client, topic string) *MQTTProgress {
	return &MQTTProgress{Client: client, Topic: topic, QoS: 1, Timeout: 5 * time.Second}
}

func (p *MQTTProgress) Begin(b Batch) {
	p.publish(Event{Type: "begin", Batch: &b})
}

func (p *MQTTProgress) Finished(r Result) {
	idx := r.Index
	ev := Event{Type: "frame", Frame: &idx, Segment: r.Segment, FileName: r.FileName}
	if r.Err != nil {
		ev.Type = "failed"
		ev.Error = r.Err.Error()
	}
	p.publish(ev)
}

func (p *MQTTProgress) End(b Batch, failed int) {
	p.publish(Event{Type: "end", Batch: &b, Failed: failed})
}

func (p *MQTTProgress) publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		system.Logger().Warn("encode progress event", "err", err)
		return
	}
	token := p.Client.Publish(p.Topic, p.QoS, false, payload)
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if !token.WaitTimeout(timeout) {
		system.Logger().Warn("progress publish timed out", "topic", p.Topic)
		return
	}
	if err := token.Error(); err != nil {
		system.Logger().Warn("progress publish failed", "topic", p.Topic, "err", err)
	}
}
