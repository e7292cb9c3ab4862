//go:build !integration
// +build !integration

package ws_review

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/filmnest/core/internal/model"
	usecase_review "github.com/filmnest/core/internal/usecase/review"
	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type HubUnitSuite struct {
	suite.Suite
}

func receiveEvent(t provider.T, client *Client) Event {
	select {
	case raw := <-client.Send:
		var event Event
		assert.NoError(t, json.Unmarshal(raw, &event))
		return event
	default:
		t.Fatalf("expected a pending event, channel is empty")
		return Event{}
	}
}

func (suite *HubUnitSuite) TestNotifyReviewChange(t provider.T) {
	t.Parallel()

	t.Run("Should push the event to subscribers of the same media record", func(t provider.T) {
		t.Parallel()
		hub := New(slog.Default())
		client := NewClient(nil, model.KindMovie, 42)
		hub.RegisterClient(client)

		hub.NotifyReviewChange(model.KindMovie, 42, usecase_review.ChangeInsert, 9)

		event := receiveEvent(t, client)
		assert.Equal(t, usecase_review.ChangeInsert, event.Type)
		assert.Equal(t, model.KindMovie, event.Kind)
		assert.Equal(t, int64(42), event.MediaID)
		assert.Equal(t, int64(9), event.ReviewID)
	})

	t.Run("Should not leak events across media channels", func(t provider.T) {
		t.Parallel()
		hub := New(slog.Default())
		movieClient := NewClient(nil, model.KindMovie, 42)
		showClient := NewClient(nil, model.KindTVShow, 42)
		otherMovieClient := NewClient(nil, model.KindMovie, 43)
		hub.RegisterClient(movieClient)
		hub.RegisterClient(showClient)
		hub.RegisterClient(otherMovieClient)

		hub.NotifyReviewChange(model.KindMovie, 42, usecase_review.ChangeDelete, 9)

		assert.Len(t, movieClient.Send, 1)
		assert.Empty(t, showClient.Send)
		assert.Empty(t, otherMovieClient.Send)
	})

	t.Run("Should drop a subscriber with a full send buffer", func(t provider.T) {
		t.Parallel()
		hub := New(slog.Default())
		slow := NewClient(nil, model.KindMovie, 42)
		healthy := NewClient(nil, model.KindMovie, 42)
		hub.RegisterClient(slow)
		hub.RegisterClient(healthy)

		for i := 0; i < cap(slow.Send); i++ {
			slow.Send <- []byte("backlog")
		}

		hub.NotifyReviewChange(model.KindMovie, 42, usecase_review.ChangeUpdate, 9)

		// The slow client's channel is closed and it no longer receives.
		_, open := <-slow.Send
		assert.True(t, open) // backlog still drains first
		assert.Len(t, healthy.Send, 1)

		hub.NotifyReviewChange(model.KindMovie, 42, usecase_review.ChangeUpdate, 10)
		assert.Len(t, healthy.Send, 2)
	})
}

func (suite *HubUnitSuite) TestRemoveClient(t provider.T) {
	t.Parallel()

	t.Run("Should stop delivering after removal", func(t provider.T) {
		t.Parallel()
		hub := New(slog.Default())
		client := NewClient(nil, model.KindTVShow, 7)
		hub.RegisterClient(client)
		hub.RemoveClient(client)

		hub.NotifyReviewChange(model.KindTVShow, 7, usecase_review.ChangeInsert, 1)

		assert.Empty(t, client.Send)
	})

	t.Run("Should close the send channel so the writer pump exits", func(t provider.T) {
		t.Parallel()
		hub := New(slog.Default())
		client := NewClient(nil, model.KindMovie, 42)
		hub.RegisterClient(client)

		pumpDone := make(chan struct{})
		go func() {
			for range client.Send {
			}
			close(pumpDone)
		}()

		hub.RemoveClient(client)

		select {
		case <-pumpDone:
		case <-time.After(time.Second):
			t.Fatalf("writer pump still blocked after client removal")
		}

		_, open := <-client.Send
		assert.False(t, open)
	})

	t.Run("Should tolerate removal after the slow-drop path already closed the channel", func(t provider.T) {
		t.Parallel()
		hub := New(slog.Default())
		slow := NewClient(nil, model.KindMovie, 42)
		hub.RegisterClient(slow)

		for i := 0; i < cap(slow.Send); i++ {
			slow.Send <- []byte("backlog")
		}
		hub.NotifyReviewChange(model.KindMovie, 42, usecase_review.ChangeInsert, 1)

		// The reader pump unregisters on disconnect regardless of how the
		// client left the set; this must not close Send a second time.
		assert.NotPanics(t, func() { hub.RemoveClient(slow) })
	})
}

func TestHubUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(HubUnitSuite))
}
