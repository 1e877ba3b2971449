// presence-kiosk - play a promo video loop while nobody is in front of the camera
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package detection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func wirePerson(x, confidence float64) map[string]interface{} {
	return map[string]interface{}{
		"box":        []float64{x, 20, 60, 120},
		"class":      0,
		"confidence": confidence,
	}
}

// encodeFrame packs a frame message. A nil detections slice leaves the key
// out altogether.
func encodeFrame(t *testing.T, ts time.Time, detections []interface{}) []byte {
	msg := map[string]interface{}{"timestamp": ts.UnixNano()}
	if detections != nil {
		msg["detections"] = detections
	}
	data, err := msgpack.Marshal(msg)
	require.NoError(t, err)
	return data
}

func TestDecodeMsgpack(t *testing.T) {
	labelled := map[string]interface{}{
		"box":        []float64{1, 2, 3, 4},
		"category":   "person",
		"confidence": 0.7,
	}
	frame, err := DecodeMsgpack(encodeFrame(t, frameStart, []interface{}{wirePerson(10, 0.9), labelled}))
	require.NoError(t, err)

	assert.True(t, frame.HasOutput)
	assert.True(t, frameStart.Equal(frame.Time))
	require.Len(t, frame.Detections, 2)
	assert.Equal(t, RawDetection{
		Box:        Box{X: 10, Y: 20, Width: 60, Height: 120},
		Class:      0,
		Confidence: 0.9,
	}, frame.Detections[0])
	assert.Equal(t, RawDetection{
		Box:        Box{X: 1, Y: 2, Width: 3, Height: 4},
		Class:      -1,
		Category:   "person",
		Confidence: 0.7,
	}, frame.Detections[1])
}

func TestDecodeMsgpackMissingVersusEmpty(t *testing.T) {
	missing, err := DecodeMsgpack(encodeFrame(t, frameStart, nil))
	require.NoError(t, err)
	assert.False(t, missing.HasOutput)

	empty, err := DecodeMsgpack(encodeFrame(t, frameStart, []interface{}{}))
	require.NoError(t, err)
	assert.True(t, empty.HasOutput)
	assert.Empty(t, empty.Detections)
}

func TestDecodeMsgpackBadBox(t *testing.T) {
	bad := map[string]interface{}{"box": []float64{1, 2, 3}, "class": 0, "confidence": 0.9}
	_, err := DecodeMsgpack(encodeFrame(t, frameStart, []interface{}{bad}))
	assert.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	frame, err := DecodeJSON([]byte(`{"detections": [
		{"box": [10, 20, 60, 120], "class": 0, "confidence": 0.9},
		{"box": [1, 2, 3, 4], "category": "person", "confidence": 0.7}
	]}`))
	require.NoError(t, err)

	assert.True(t, frame.HasOutput)
	assert.True(t, frame.Time.IsZero())
	require.Len(t, frame.Detections, 2)
	assert.Equal(t, 0, frame.Detections[0].Class)
	assert.Equal(t, Box{X: 10, Y: 20, Width: 60, Height: 120}, frame.Detections[0].Box)
	assert.Equal(t, -1, frame.Detections[1].Class)
	assert.Equal(t, "person", frame.Detections[1].Category)
}

func TestDecodeJSONMissingOutput(t *testing.T) {
	for _, data := range []string{`{}`, `{"timestamp": 5}`, `{"detections": null}`} {
		frame, err := DecodeJSON([]byte(data))
		require.NoError(t, err, data)
		assert.False(t, frame.HasOutput, data)
	}

	frame, err := DecodeJSON([]byte(`{"detections": []}`))
	require.NoError(t, err)
	assert.True(t, frame.HasOutput)
}

func TestDecodeJSONErrors(t *testing.T) {
	for _, data := range []string{
		`{"detections": `,
		`{"detections": {"box": [1, 2, 3, 4]}}`,
		`{"detections": [{"box": [1, 2], "confidence": 1}]}`,
	} {
		_, err := DecodeJSON([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestDecoderFor(t *testing.T) {
	for _, format := range []string{"", FormatMsgpack, FormatJSON} {
		decode, err := DecoderFor(format)
		assert.NoError(t, err)
		assert.NotNil(t, decode)
	}
	_, err := DecoderFor("protobuf")
	assert.Error(t, err)
}
