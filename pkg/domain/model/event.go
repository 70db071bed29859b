package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

type EventName string

const (
	EventInfo   EventName = "info"
	EventResult EventName = "result"
	EventClose  EventName = "close"
)

// ResultInfo is the info message attached to a result event
const ResultInfo = "done"

// Event is a progress notification of pull request processing. Events of one stream are strictly
// ordered and the stream always ends with a close event unless the consumer has gone away.
type Event struct {
	Name   EventName
	Info   string
	Result ExtractionResult
}

func NewInfoEvent(info string) *Event {
	return &Event{Name: EventInfo, Info: info}
}

func NewResultEvent(result ExtractionResult) *Event {
	if result == nil {
		result = ExtractionResult{}
	}
	return &Event{Name: EventResult, Info: ResultInfo, Result: result}
}

func NewCloseEvent(info string) *Event {
	return &Event{Name: EventClose, Info: info}
}

type infoPayload struct {
	Info string `json:"info"`
}

type resultPayload struct {
	TestData ExtractionResult `json:"test_data"`
	Info     string           `json:"info"`
}

type closePayload struct {
	Close bool   `json:"close"`
	Info  string `json:"info"`
}

// Payload returns JSON data of the event: {info}, {test_data, info} or {close, info}
func (x *Event) Payload() ([]byte, error) {
	var v any
	switch x.Name {
	case EventInfo:
		v = infoPayload{Info: x.Info}
	case EventResult:
		result := x.Result
		if result == nil {
			result = ExtractionResult{}
		}
		v = resultPayload{TestData: result, Info: x.Info}
	case EventClose:
		v = closePayload{Close: true, Info: x.Info}
	default:
		return nil, goerr.New("unknown event name", goerr.V("name", x.Name))
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal event payload", goerr.V("name", x.Name))
	}
	return raw, nil
}

// WaitResult consumes all events of the channel and returns the extraction result if a result
// event arrives. Otherwise it returns nil and the info of the last event. onEvent is called for
// every event when it is not nil.
func WaitResult(events <-chan *Event, onEvent func(ev *Event)) (ExtractionResult, string) {
	var (
		result ExtractionResult
		info   string
	)

	for ev := range events {
		if onEvent != nil {
			onEvent(ev)
		}
		if ev.Name == EventResult {
			result = ev.Result
		}
		info = ev.Info
	}

	return result, info
}
