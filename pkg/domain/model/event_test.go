package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
)

func TestEventPayload(t *testing.T) {
	t.Run("info", func(t *testing.T) {
		raw := gt.R1(model.NewInfoEvent("collecting runs").Payload()).NoError(t)
		gt.V(t, string(raw)).Equal(`{"info":"collecting runs"}`)
	})

	t.Run("result", func(t *testing.T) {
		ev := model.NewResultEvent(model.ExtractionResult{
			"r.json": {{NodeID: "t", CallDuration: 1}},
		})
		raw := gt.R1(ev.Payload()).NoError(t)
		gt.V(t, string(raw)).Equal(`{"test_data":{"r.json":{"comp":[["t",1,0,0]]}},"info":"done"}`)
	})

	t.Run("empty result still has test_data", func(t *testing.T) {
		raw := gt.R1(model.NewResultEvent(nil).Payload()).NoError(t)
		gt.V(t, string(raw)).Equal(`{"test_data":{},"info":"done"}`)
	})

	t.Run("close", func(t *testing.T) {
		raw := gt.R1(model.NewCloseEvent("bye").Payload()).NoError(t)
		gt.V(t, string(raw)).Equal(`{"close":true,"info":"bye"}`)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := (&model.Event{Name: "unknown"}).Payload()
		gt.Error(t, err)
	})
}

func TestWaitResult(t *testing.T) {
	t.Run("result arrives", func(t *testing.T) {
		ch := make(chan *model.Event, 4)
		ch <- model.NewInfoEvent("a")
		ch <- model.NewResultEvent(model.ExtractionResult{"x": nil})
		ch <- model.NewCloseEvent("done")
		close(ch)

		var names []model.EventName
		result, info := model.WaitResult(ch, func(ev *model.Event) {
			names = append(names, ev.Name)
		})
		gt.V(t, result).NotEqual(nil)
		gt.V(t, info).Equal("done")
		gt.V(t, names).Equal([]model.EventName{model.EventInfo, model.EventResult, model.EventClose})
	})

	t.Run("no result", func(t *testing.T) {
		ch := make(chan *model.Event, 2)
		ch <- model.NewInfoEvent("pull request has no head")
		ch <- model.NewCloseEvent("nothing to report")
		close(ch)

		result, info := model.WaitResult(ch, nil)
		gt.V(t, result == nil).Equal(true)
		gt.V(t, info).Equal("nothing to report")
	})
}
