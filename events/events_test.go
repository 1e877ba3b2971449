package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TheCacophonyProject/presence-kiosk/detection"
)

type queued struct {
	details map[string]interface{}
	ts      time.Time
}

func newTestRecorder(t *testing.T, err error) (*Recorder, chan queued) {
	sent := make(chan queued, queueSize)
	r := newRecorder(func(detailsJSON []byte, ts time.Time) error {
		var details map[string]interface{}
		assert.NoError(t, json.Unmarshal(detailsJSON, &details))
		sent <- queued{details: details, ts: ts}
		return err
	})
	return r, sent
}

func next(t *testing.T, sent chan queued) queued {
	select {
	case q := <-sent:
		return q
	case <-time.After(time.Second):
		t.Fatal("no event queued")
	}
	return queued{}
}

func TestPersonDetectedEvent(t *testing.T) {
	r, sent := newTestRecorder(t, nil)
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	r.nowFunc = func() time.Time { return now }

	var l detection.Listener = r
	l.PersonsAppeared(make([]detection.Detection, 2), 7)

	q := next(t, sent)
	assert.Equal(t, now, q.ts)
	assert.Equal(t, map[string]interface{}{
		"description": map[string]interface{}{
			"type": PersonDetected,
			"details": map[string]interface{}{
				"count": 2.0,
				"total": 7.0,
			},
		},
	}, q.details)
}

func TestThrottledEvent(t *testing.T) {
	r, sent := newTestRecorder(t, errors.New("no bus"))

	r.WhenThrottled()
	r.WhenThrottled()

	for i := 0; i < 2; i++ {
		q := next(t, sent)
		assert.Equal(t, map[string]interface{}{
			"description": map[string]interface{}{"type": PlayerThrottled},
		}, q.details)
	}
}

func TestFullQueueDropsEvents(t *testing.T) {
	block := make(chan struct{})
	r := newRecorder(func([]byte, time.Time) error {
		<-block
		return nil
	})

	for i := 0; i < queueSize*2; i++ {
		r.WhenThrottled()
	}
	assert.LessOrEqual(t, len(r.pending), queueSize)
	close(block)
}
