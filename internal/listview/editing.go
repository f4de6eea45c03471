package listview

import (
	"context"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
)

// schoolIDChecked carries the uniqueness answer for one school id.
type schoolIDChecked struct {
	generation int
	value      string
	result     gateway.Result
	err        error
}

// mutationDone carries the answer to a create, update or delete.
type mutationDone struct {
	op        string
	result    gateway.Result
	err       error
	reconcile Reconcile
}

func (c *Controller) setMode(m Mode, id int) {
	c.mode = m
	c.editID = id
	if m == Idle {
		c.form.reset()
	}
}

// BeginAdd opens the add row with an empty form, leaving edit mode.
func (c *Controller) BeginAdd() {
	c.setMode(Adding, domain.NewStudentID)
	c.form.reset()
}

// CancelAdd closes the add row.
func (c *Controller) CancelAdd() {
	exitAdd(c)
}

// BeginEdit opens the visible row id in the form, leaving add mode and
// collapsing the row's detail list. It reports false for rows not on the page.
func (c *Controller) BeginEdit(id int) bool {
	row, ok := c.Row(id)
	if !ok {
		return false
	}
	c.Collapse(id)
	c.setMode(Editing, id)
	c.form.load(row)
	return true
}

// CancelEdit closes the edit row.
func (c *Controller) CancelEdit() {
	exitEdit(c)
}

// BlurSchoolID validates the school id locally and, when it passes and has not
// been confirmed yet, asks the source whether it is unused.
func (c *Controller) BlurSchoolID() Effect {
	fm := c.form
	if msg := fm.localError(FieldSchoolID); msg != "" {
		fm.errs[FieldSchoolID] = msg
		return nil
	}
	value := fm.trimmed(FieldSchoolID)
	if fm.IsSchoolIDChecked() || (fm.pending && fm.pendingSchoolID == value) {
		return nil
	}

	exclude := domain.NewStudentID
	if c.mode == Editing {
		exclude = c.editID
	}
	fm.errs[FieldSchoolID] = ""
	fm.checked = false
	fm.pending = true
	fm.pendingSchoolID = value
	gen := fm.generation
	gw := c.gw
	c.acquire()
	c.logger.Debug("checking school id", "exclude", exclude)
	return func(ctx context.Context) Outcome {
		res, err := gw.CheckUniqueSchoolID(ctx, exclude, value)
		return schoolIDChecked{generation: gen, value: value, result: res, err: err}
	}
}

func (o schoolIDChecked) apply(c *Controller) (Effect, error) {
	c.release()
	fm := c.form
	if o.generation != fm.generation || o.value != fm.pendingSchoolID {
		return nil, nil
	}
	fm.pending = false
	fm.pendingSchoolID = ""
	if o.err != nil {
		c.logger.Error("school id check failed", "error", o.err)
		return nil, gateway.Transport(gateway.OpCheckSchoolID, o.err)
	}
	if o.value != fm.trimmed(FieldSchoolID) {
		return nil, nil
	}
	if !o.result.Success {
		c.logger.Info("school id rejected", "reason", o.result.Error)
		fm.errs[FieldSchoolID] = o.result.Error
		return nil, nil
	}
	fm.errs[FieldSchoolID] = ""
	fm.checked = true
	fm.checkedSchoolID = o.value
	return nil, nil
}

// SubmitAdd creates the student in the form. It does nothing outside add
// mode, while a request is in flight or while the form cannot be submitted.
func (c *Controller) SubmitAdd() Effect {
	if c.mode != Adding || c.IsProcessing() {
		return nil
	}
	if !c.form.CanSubmit() {
		c.form.validateAll()
		return nil
	}
	s := c.form.student(domain.NewStudentID)
	gw := c.gw
	c.acquire()
	return func(ctx context.Context) Outcome {
		res, err := gw.Create(ctx, s)
		return mutationDone{op: gateway.OpCreate, result: res, err: err, reconcile: exitAdd}
	}
}

// SubmitUpdate saves the row in edit mode. Like SubmitAdd it waits for
// requests in flight.
func (c *Controller) SubmitUpdate() Effect {
	if c.mode != Editing || c.IsProcessing() {
		return nil
	}
	if !c.form.CanSubmit() {
		c.form.validateAll()
		return nil
	}
	s := c.form.student(c.editID)
	gw := c.gw
	c.acquire()
	return func(ctx context.Context) Outcome {
		res, err := gw.Update(ctx, s)
		return mutationDone{op: gateway.OpUpdate, result: res, err: err, reconcile: exitEdit}
	}
}

// Submit sends the form in whichever mode is open.
func (c *Controller) Submit() Effect {
	switch c.mode {
	case Adding:
		return c.SubmitAdd()
	case Editing:
		return c.SubmitUpdate()
	default:
		return nil
	}
}

func (o mutationDone) apply(c *Controller) (Effect, error) {
	c.release()
	if o.err != nil {
		c.logger.Error("mutation failed", "op", o.op, "error", o.err)
		return nil, gateway.Transport(o.op, o.err)
	}
	if !o.result.Success {
		c.logger.Info("mutation rejected", "op", o.op, "reason", o.result.Error)
		c.notify(TitleError, o.result.Error)
		return nil, nil
	}
	c.logger.Info("mutation applied", "op", o.op)
	return c.Reload(o.reconcile), nil
}
