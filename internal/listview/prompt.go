package listview

import (
	"context"

	"github.com/cristianoliveira/student-roster/internal/gateway"
)

// PromptKind tells a renderer which answers a prompt accepts.
type PromptKind int

const (
	// Confirm asks yes or no.
	Confirm PromptKind = iota
	// Notify only needs to be dismissed.
	Notify
)

func (k PromptKind) String() string {
	if k == Notify {
		return "notify"
	}
	return "confirm"
}

// Prompt titles and messages.
const (
	TitleDelete = "Delete"
	TitleError  = "Error"
	TitleInfo   = "Info"

	MsgConfirmDelete         = "Are you sure you want to delete this student?"
	MsgConfirmDeleteSelected = "Are you sure you want to delete the selected students?"
)

// Prompt is a pending question or notice. Only one is open at a time.
type Prompt struct {
	Kind    PromptKind
	Title   string
	Message string

	onAccept func() Effect
}

// Prompt returns the open prompt, or nil.
func (c *Controller) Prompt() *Prompt {
	return c.prompt
}

// ResolvePrompt closes the open prompt. Accepting a confirmation returns its
// effect; declining or dismissing returns nil and calls nothing. A
// confirmation accepted while a request is in flight stays open.
func (c *Controller) ResolvePrompt(accept bool) Effect {
	p := c.prompt
	if p == nil {
		return nil
	}
	if accept && p.Kind == Confirm && p.onAccept != nil && c.IsProcessing() {
		return nil
	}
	c.prompt = nil
	if !accept || p.Kind != Confirm || p.onAccept == nil {
		return nil
	}
	return p.onAccept()
}

func (c *Controller) notify(title, msg string) {
	c.prompt = &Prompt{Kind: Notify, Title: title, Message: msg}
}

func (c *Controller) confirm(title, msg string, onAccept func() Effect) {
	c.prompt = &Prompt{Kind: Confirm, Title: title, Message: msg, onAccept: onAccept}
}

// RequestDelete asks to confirm the deletion of id.
func (c *Controller) RequestDelete(id int) {
	c.confirm(TitleDelete, MsgConfirmDelete, func() Effect {
		gw := c.gw
		c.acquire()
		c.logger.Debug("deleting student", "id", id)
		return func(ctx context.Context) Outcome {
			res, err := gw.Delete(ctx, id)
			return mutationDone{op: gateway.OpDelete, result: res, err: err, reconcile: Then(exitEdit, deselect(id))}
		}
	})
}

// RequestDeleteSelected asks to confirm the deletion of every selected row.
// With nothing selected it shows a notice instead.
func (c *Controller) RequestDeleteSelected() {
	if !c.HasSelected() {
		c.notify(TitleInfo, gateway.MsgNothingToDelete)
		return
	}
	c.confirm(TitleDelete, MsgConfirmDeleteSelected, func() Effect {
		ids := c.Selected()
		gw := c.gw
		c.acquire()
		c.logger.Debug("deleting students", "count", len(ids))
		return func(ctx context.Context) Outcome {
			res, err := gw.DeleteMany(ctx, ids)
			return mutationDone{op: gateway.OpDeleteMany, result: res, err: err, reconcile: Then(exitEdit, clearSelection)}
		}
	})
}
