package engine

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type fakeToken struct {
	mqtt.Token
	done bool
	err  error
}

func (t *fakeToken) Wait() bool                     { return t.done }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type fakePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	token    *fakeToken
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload.([]byte))
	if p.token != nil {
		return p.token
	}
	return &fakeToken{done: true}
}

func (p *fakePublisher) events(t *testing.T) []Event {
	t.Helper()
	var out []Event
	for _, raw := range p.payloads {
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("bad payload %s: %v", raw, err)
		}
		out = append(out, ev)
	}
	return out
}

func TestMQTTProgressEvents(t *testing.T) {
	pub := &fakePublisher{}
	p := &MQTTProgress{Client: pub, Topic: "framekit/progress", QoS: 1}

	b := Batch{Label: "all", First: 0, Last: 9, Count: 10, OutDir: "/tmp/out/"}
	p.Begin(b)
	p.Finished(Result{Index: 3, Segment: "A", FileName: "/tmp/out/f00003.png"})
	p.Finished(Result{Index: 5, Segment: "A", Err: errors.New("scene failed")})
	p.End(b, 1)

	evs := pub.events(t)
	if len(evs) != 4 {
		t.Fatalf("published %d events", len(evs))
	}
	for _, topic := range pub.topics {
		if topic != "framekit/progress" {
			t.Errorf("topic %q", topic)
		}
	}
	if evs[0].Type != "begin" || evs[0].Batch == nil || evs[0].Batch.Count != 10 {
		t.Errorf("begin = %+v", evs[0])
	}
	if evs[1].Type != "frame" || evs[1].Frame == nil || *evs[1].Frame != 3 || evs[1].FileName == "" {
		t.Errorf("frame = %+v", evs[1])
	}
	if evs[2].Type != "failed" || *evs[2].Frame != 5 || evs[2].Error != "scene failed" {
		t.Errorf("failed = %+v", evs[2])
	}
	if evs[3].Type != "end" || evs[3].Failed != 1 {
		t.Errorf("end = %+v", evs[3])
	}
}

func TestMQTTProgressFrameZero(t *testing.T) {
	pub := &fakePublisher{}
	p := &MQTTProgress{Client: pub, Topic: "t"}
	p.Finished(Result{Index: 0})
	evs := pub.events(t)
	if evs[0].Frame == nil || *evs[0].Frame != 0 {
		t.Errorf("frame 0 dropped from payload: %s", pub.payloads[0])
	}
}

func TestMQTTProgressPublishFailures(t *testing.T) {
	for _, tok := range []*fakeToken{
		{done: false},
		{done: true, err: errors.New("not connected")},
	} {
		pub := &fakePublisher{token: tok}
		p := &MQTTProgress{Client: pub, Topic: "t", Timeout: time.Millisecond}
		// Publishing problems are logged, never returned or panicked.
		p.Begin(Batch{})
		p.End(Batch{}, 0)
		if len(pub.payloads) != 2 {
			t.Errorf("published %d", len(pub.payloads))
		}
	}
}
