package listview

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fill(c *Controller, schoolID, first, last, email string) {
	c.SetField(FieldSchoolID, schoolID)
	c.SetField(FieldFirstName, first)
	c.SetField(FieldLastName, last)
	c.SetField(FieldEmail, email)
}

func TestFieldOrderAndLabels(t *testing.T) {
	assert.Equal(t, FieldFirstName, FieldSchoolID.Next())
	assert.Equal(t, FieldSchoolID, FieldEmail.Next())
	assert.Equal(t, "School ID", FieldSchoolID.Label())
	assert.Equal(t, domain.ColumnEmail, FieldEmail.Column())
}

func TestSetFieldValidatesLocally(t *testing.T) {
	c, _ := newLoaded(t)
	c.BeginAdd()

	c.SetField(FieldFirstName, "x")
	c.SetField(FieldFirstName, "  ")
	assert.Equal(t, MsgRequired, c.Form().Error(FieldFirstName))

	c.SetField(FieldEmail, "not-an-email")
	assert.Equal(t, MsgInvalidEmail, c.Form().Error(FieldEmail))
	c.SetField(FieldEmail, "zoe@school.example")
	assert.Empty(t, c.Form().Error(FieldEmail))

	c.SetField(FieldSchoolID, "")
	assert.Empty(t, c.Form().Error(FieldSchoolID), "school id waits for blur")
	assert.Nil(t, c.BlurSchoolID())
	assert.Equal(t, MsgRequired, c.Form().Error(FieldSchoolID))
}

func TestBlurSchoolIDRejectsDuplicate(t *testing.T) {
	c, gw := newLoaded(t)
	c.BeginAdd()
	fill(c, "S100", "Zoe", "Zimmer", "zoe@school.example")
	assert.False(t, c.Form().CanSubmit())

	run(t, c, c.BlurSchoolID())
	assert.Equal(t, gateway.MsgSchoolIDInUse, c.Form().Error(FieldSchoolID))
	assert.False(t, c.Form().CanSubmit())
	assert.Nil(t, c.SubmitAdd())

	c.SetField(FieldSchoolID, "S200")
	run(t, c, c.BlurSchoolID())
	assert.Empty(t, c.Form().Error(FieldSchoolID))
	assert.True(t, c.Form().CanSubmit())

	assert.Nil(t, c.BlurSchoolID(), "already checked")
	assert.Equal(t, 2, gw.Calls(gateway.OpCheckSchoolID))
}

func TestBlurSchoolIDWhileEditingExcludesRow(t *testing.T) {
	c, _ := newLoaded(t)
	run(t, c, c.NextPage())
	require.True(t, c.BeginEdit(7))
	assert.True(t, c.Form().CanSubmit())

	c.SetField(FieldSchoolID, "S100")
	assert.False(t, c.Form().CanSubmit())
	run(t, c, c.BlurSchoolID())
	assert.Equal(t, gateway.MsgSchoolIDInUse, c.Form().Error(FieldSchoolID))
	assert.Nil(t, c.SubmitUpdate())

	c.SetField(FieldSchoolID, "S106")
	run(t, c, c.BlurSchoolID())
	assert.Empty(t, c.Form().Error(FieldSchoolID))
	assert.True(t, c.Form().CanSubmit())
}

func TestBlurSchoolIDPassesExclusion(t *testing.T) {
	gw := new(gateway.MockGateway)
	gw.On("FetchPage", mock.Anything, mock.Anything).
		Return(domain.Page[domain.Student]{Rows: gateway.SampleStudents()[5:10], Total: 12}, nil)
	gw.On("CheckUniqueSchoolID", mock.Anything, 7, "S100").
		Return(gateway.Fail(gateway.MsgSchoolIDInUse), nil).Once()

	c := New(gw, Options{})
	require.NoError(t, c.Run(context.Background(), c.Load()))
	require.True(t, c.BeginEdit(7))
	c.SetField(FieldSchoolID, "S100")
	require.NoError(t, c.Run(context.Background(), c.BlurSchoolID()))

	assert.Equal(t, gateway.MsgSchoolIDInUse, c.Form().Error(FieldSchoolID))
	gw.AssertExpectations(t)
}

func TestStaleSchoolIDCheckIsDiscarded(t *testing.T) {
	c, _ := newLoaded(t)
	c.BeginAdd()
	fill(c, "S100", "Zoe", "Zimmer", "zoe@school.example")

	eff := c.BlurSchoolID()
	require.NotNil(t, eff)
	assert.True(t, c.Form().IsChecking())
	assert.False(t, c.Form().CanSubmit())

	c.SetField(FieldSchoolID, "S300")
	_, err := c.Apply(eff(context.Background()))
	require.NoError(t, err)

	assert.Empty(t, c.Form().Error(FieldSchoolID))
	assert.False(t, c.Form().IsChecking())
	assert.False(t, c.Form().IsSchoolIDChecked())
	assert.False(t, c.IsProcessing())
}

func TestSchoolIDCheckAfterCancelIsDiscarded(t *testing.T) {
	c, _ := newLoaded(t)
	c.BeginAdd()
	c.SetField(FieldSchoolID, "S100")
	eff := c.BlurSchoolID()
	c.CancelAdd()

	_, err := c.Apply(eff(context.Background()))
	require.NoError(t, err)
	assert.Empty(t, c.Form().Error(FieldSchoolID))
	assert.Empty(t, c.Form().Value(FieldSchoolID))
}

func TestSchoolIDCheckTransportFailure(t *testing.T) {
	c, gw := newLoaded(t)
	c.BeginAdd()
	c.SetField(FieldSchoolID, "S500")
	gw.FailNext(gateway.OpCheckSchoolID, errors.New("timeout"))

	err := c.Run(context.Background(), c.BlurSchoolID())
	require.Error(t, err)
	assert.True(t, gateway.IsTransport(err))
	assert.False(t, c.Form().IsSchoolIDChecked())
	assert.False(t, c.Form().IsChecking())
	assert.False(t, c.IsProcessing())

	run(t, c, c.BlurSchoolID())
	assert.True(t, c.Form().IsSchoolIDChecked())
}

func TestModesExcludeEachOther(t *testing.T) {
	c, _ := newLoaded(t)

	c.BeginAdd()
	assert.True(t, c.IsAdding())

	require.True(t, c.BeginEdit(2))
	assert.False(t, c.IsAdding())
	assert.True(t, c.IsEditing(2))
	assert.Equal(t, "Barros", c.Form().Value(FieldLastName))

	c.BeginAdd()
	assert.False(t, c.IsEditing(2))
	assert.Empty(t, c.Form().Value(FieldLastName))

	c.CancelAdd()
	assert.Equal(t, Idle, c.Mode())
	assert.False(t, c.BeginEdit(99))
	assert.Equal(t, Idle, c.Mode())
}

func TestBeginEditCollapsesRow(t *testing.T) {
	c, _ := newLoaded(t)
	run(t, c, c.Expand(3))
	run(t, c, c.Expand(4))

	require.True(t, c.BeginEdit(3))
	assert.False(t, c.IsExpanded(3))
	assert.True(t, c.IsExpanded(4))

	c.CancelEdit()
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, domain.NewStudentID, c.EditID())
}

func TestSubmitAddReloadsAndLeavesAddMode(t *testing.T) {
	c, gw := newLoaded(t)
	c.BeginAdd()
	fill(c, " S200 ", "Aaron", "Aalto", "aaron@school.example")
	run(t, c, c.BlurSchoolID())

	run(t, c, c.SubmitAdd())
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, 13, c.Total())
	assert.Equal(t, "Aalto", c.Rows()[0].LastName)
	assert.Equal(t, "S200", c.Rows()[0].SchoolID)
	assert.Len(t, gw.Students(), 13)
	assert.Nil(t, c.Prompt())
	assert.False(t, c.IsProcessing())
}

func TestSubmitAddBusinessFailureKeepsMode(t *testing.T) {
	c, gw := newLoaded(t)
	c.BeginAdd()
	fill(c, "S200", "Aaron", "Aalto", "aaron@school.example")
	run(t, c, c.BlurSchoolID())

	// Someone else takes the id between the check and the submit.
	_, err := gw.Create(context.Background(), domain.Student{SchoolID: "S200", FirstName: "X", LastName: "Y", Email: "x@y.example"})
	require.NoError(t, err)
	calls := gw.Calls(gateway.OpFetchPage)

	run(t, c, c.SubmitAdd())
	assert.True(t, c.IsAdding())
	assert.False(t, c.IsProcessing())
	require.NotNil(t, c.Prompt())
	assert.Equal(t, Notify, c.Prompt().Kind)
	assert.Equal(t, TitleError, c.Prompt().Title)
	assert.Equal(t, gateway.MsgSchoolIDInUse, c.Prompt().Message)
	assert.Equal(t, calls, gw.Calls(gateway.OpFetchPage))

	assert.Nil(t, c.ResolvePrompt(true))
	assert.Nil(t, c.Prompt())
}

func TestSubmitWaitsForRequestInFlight(t *testing.T) {
	c, gw := newLoaded(t)
	c.BeginAdd()
	fill(c, "S200", "Aaron", "Aalto", "aaron@school.example")
	run(t, c, c.BlurSchoolID())

	first := c.SubmitAdd()
	require.NotNil(t, first)
	assert.True(t, c.IsProcessing())
	assert.Nil(t, c.SubmitAdd())
	assert.Nil(t, c.Submit())

	run(t, c, first)
	assert.Equal(t, 1, gw.Calls(gateway.OpCreate))
	assert.Equal(t, Idle, c.Mode())
	assert.Nil(t, c.Prompt())
	assert.Equal(t, 13, c.Total())

	require.True(t, c.BeginEdit(2))
	c.SetField(FieldFirstName, "Ann")
	reload := c.Reload(nil)
	assert.Nil(t, c.SubmitUpdate())
	run(t, c, reload)
	run(t, c, c.SubmitUpdate())
	assert.Equal(t, 1, gw.Calls(gateway.OpUpdate))
}

func TestSubmitUpdate(t *testing.T) {
	c, gw := newLoaded(t)
	require.True(t, c.BeginEdit(2))
	c.SetField(FieldFirstName, "Bruna")

	run(t, c, c.Submit())
	assert.Equal(t, Idle, c.Mode())
	row, ok := c.Row(2)
	require.True(t, ok)
	assert.Equal(t, "Bruna", row.FirstName)
	assert.Equal(t, "Bruna", gw.Students()[1].FirstName)
}

func TestSubmitUpdateBusinessFailureKeepsMode(t *testing.T) {
	gw := new(gateway.MockGateway)
	gw.On("FetchPage", mock.Anything, mock.Anything).
		Return(domain.Page[domain.Student]{Rows: gateway.SampleStudents()[:5], Total: 12}, nil).Once()
	gw.On("Update", mock.Anything, mock.AnythingOfType("domain.Student")).
		Return(gateway.Fail(gateway.MsgStudentNotFound), nil).Once()

	c := New(gw, Options{})
	require.NoError(t, c.Run(context.Background(), c.Load()))
	require.True(t, c.BeginEdit(1))

	require.NoError(t, c.Run(context.Background(), c.SubmitUpdate()))
	assert.True(t, c.IsEditing(1))
	assert.False(t, c.IsProcessing())
	require.NotNil(t, c.Prompt())
	assert.Equal(t, gateway.MsgStudentNotFound, c.Prompt().Message)
	gw.AssertExpectations(t)
}

func TestSubmitWithInvalidFormShowsErrors(t *testing.T) {
	c, gw := newLoaded(t)
	c.BeginAdd()

	assert.Nil(t, c.SubmitAdd())
	for _, f := range Fields {
		assert.Equal(t, MsgRequired, c.Form().Error(f), f.Label())
	}
	assert.Equal(t, 0, gw.Calls(gateway.OpCreate))
	assert.Nil(t, c.SubmitUpdate(), "not in edit mode")
}
