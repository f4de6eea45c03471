package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportWrapsOnce(t *testing.T) {
	cause := errors.New("connection refused")

	assert.NoError(t, Transport(OpFetchPage, nil))

	err := Transport(OpFetchPage, cause)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, OpFetchPage, te.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fetch_page: connection refused", err.Error())

	again := Transport(OpDelete, fmt.Errorf("retry: %w", err))
	require.ErrorAs(t, again, &te)
	assert.Equal(t, OpFetchPage, te.Op, "an existing transport error keeps its operation")
}

func TestIsTransport(t *testing.T) {
	assert.True(t, IsTransport(&TransportError{Op: OpCreate, Err: errors.New("x")}))
	assert.True(t, IsTransport(fmt.Errorf("wrapped: %w", &TransportError{Op: OpCreate})))
	assert.False(t, IsTransport(errors.New("plain")))
	assert.False(t, IsTransport(nil))
}

func TestResultHelpers(t *testing.T) {
	assert.Equal(t, Result{Success: true}, OK())
	assert.Equal(t, Result{Success: false, Error: MsgSchoolIDInUse}, Fail(MsgSchoolIDInUse))
}

func TestSampleRoster(t *testing.T) {
	students := SampleStudents()
	require.Len(t, students, 12)
	seen := map[string]bool{}
	for i, s := range students {
		assert.Equal(t, i+1, s.ID)
		assert.False(t, seen[s.SchoolID], "duplicate school id %s", s.SchoolID)
		seen[s.SchoolID] = true
	}
	assert.Equal(t, "S100", students[0].SchoolID)
	assert.Equal(t, "ana.almeida@school.example", students[0].Email)

	perStudent := map[int]int{}
	for _, d := range SampleDetails() {
		perStudent[d.StudentID]++
	}
	assert.Equal(t, 4, perStudent[1])
	assert.Equal(t, 6, perStudent[3])
}
