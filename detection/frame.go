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
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	FormatMsgpack = "msgpack"
	FormatJSON    = "json"
)

// Frame is the model output for one camera frame. HasOutput is false when
// the inference side had nothing for this frame, which is different from a
// frame with zero detections.
type Frame struct {
	Time       time.Time
	HasOutput  bool
	Detections []RawDetection
}

// FrameDecoder turns one message from the inference side into a Frame.
type FrameDecoder func([]byte) (*Frame, error)

func DecoderFor(format string) (FrameDecoder, error) {
	switch format {
	case FormatMsgpack, "":
		return DecodeMsgpack, nil
	case FormatJSON:
		return DecodeJSON, nil
	}
	return nil, fmt.Errorf("unknown frame format %q", format)
}

type wireFrame struct {
	Timestamp  int64            `msgpack:"timestamp"`
	Detections *[]wireDetection `msgpack:"detections"`
}

type wireDetection struct {
	Box        []float64 `msgpack:"box"`
	Category   string    `msgpack:"category"`
	Class      *int      `msgpack:"class"`
	Confidence float64   `msgpack:"confidence"`
}

func DecodeMsgpack(data []byte) (*Frame, error) {
	var wf wireFrame
	if err := msgpack.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("decoding msgpack frame: %w", err)
	}

	frame := &Frame{}
	if wf.Timestamp != 0 {
		frame.Time = time.Unix(0, wf.Timestamp)
	}
	if wf.Detections == nil {
		return frame, nil
	}
	frame.HasOutput = true
	for _, wd := range *wf.Detections {
		box, err := boxFrom(wd.Box)
		if err != nil {
			return nil, err
		}
		raw := RawDetection{
			Box:        box,
			Class:      -1,
			Category:   wd.Category,
			Confidence: wd.Confidence,
		}
		if wd.Class != nil {
			raw.Class = *wd.Class
		}
		frame.Detections = append(frame.Detections, raw)
	}
	return frame, nil
}

func DecodeJSON(data []byte) (*Frame, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json frame")
	}
	root := gjson.ParseBytes(data)

	frame := &Frame{}
	if ts := root.Get("timestamp"); ts.Exists() && ts.Int() != 0 {
		frame.Time = time.Unix(0, ts.Int())
	}
	detections := root.Get("detections")
	if !detections.Exists() || detections.Type == gjson.Null {
		return frame, nil
	}
	if !detections.IsArray() {
		return nil, errors.New("detections should be an array")
	}
	frame.HasOutput = true
	for _, d := range detections.Array() {
		values := d.Get("box").Array()
		coords := make([]float64, len(values))
		for i, v := range values {
			coords[i] = v.Float()
		}
		box, err := boxFrom(coords)
		if err != nil {
			return nil, err
		}
		raw := RawDetection{
			Box:        box,
			Class:      -1,
			Category:   d.Get("category").String(),
			Confidence: d.Get("confidence").Float(),
		}
		if class := d.Get("class"); class.Exists() {
			raw.Class = int(class.Int())
		}
		frame.Detections = append(frame.Detections, raw)
	}
	return frame, nil
}

func boxFrom(coords []float64) (Box, error) {
	if len(coords) != 4 {
		return Box{}, fmt.Errorf("box needs 4 values, got %d", len(coords))
	}
	return Box{X: coords[0], Y: coords[1], Width: coords[2], Height: coords[3]}, nil
}
