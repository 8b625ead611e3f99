package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/diggerhq/returns/services"
	"github.com/slack-go/slack"
)

// SlackClient is the part of *slack.Client the controllers use.
type SlackClient interface {
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
}

type MainController struct {
	Returns            *services.ReturnService
	Slack              SlackClient
	AssignmentsCommand string
	ScriptsCommand     string

	inflight sync.WaitGroup
}

func NewMainController(returns *services.ReturnService, client SlackClient, assignmentsCommand, scriptsCommand string) *MainController {
	return &MainController{
		Returns:            returns,
		Slack:              client,
		AssignmentsCommand: assignmentsCommand,
		ScriptsCommand:     scriptsCommand,
	}
}

// dispatch runs fn off the request goroutine so slack gets its ack in time.
func (mc *MainController) dispatch(fn func()) {
	mc.inflight.Add(1)
	go func() {
		defer mc.inflight.Done()
		fn()
	}()
}

// Wait blocks until every dispatched button press has replied.
func (mc *MainController) Wait() {
	mc.inflight.Wait()
}

// WaitTimeout is Wait bounded by timeout. It reports whether every reply
// went out in time; replies still pending keep running.
func (mc *MainController) WaitTimeout(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		mc.inflight.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
