package service

import (
	"errors"
	"testing"

	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskKeepsCriteriaChecklist(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnitService(repository.NewUnitRepository(db))

	unit, err := svc.CreateUnit(UnitRequest{Name: "Plumbing Basics"})
	require.NoError(t, err)

	task, err := svc.CreateTask(TaskRequest{
		UnitID: unit.ID,
		Title:  "Install a trap",
		Criteria: model.CriteriaList{
			{Label: "Watertight joints", Expected: true},
			{Label: "Correct fall", Expected: true},
		},
	})
	require.NoError(t, err)

	tasks, err := svc.TasksByUnit(unit.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Len(t, tasks[0].Criteria, 2)
	assert.Equal(t, "Watertight joints", tasks[0].Criteria[0].Label)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestCreateTaskValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnitService(repository.NewUnitRepository(db))
	unit, err := svc.CreateUnit(UnitRequest{Name: "Plumbing Basics"})
	require.NoError(t, err)

	_, err = svc.CreateTask(TaskRequest{UnitID: 999, Title: "Orphan"})
	assert.True(t, util.IsValidation(err))

	_, err = svc.CreateTask(TaskRequest{
		UnitID:   unit.ID,
		Title:    "Bad checklist",
		Criteria: model.CriteriaList{{Label: ""}},
	})
	assert.True(t, util.IsValidation(err))

	_, err = svc.TasksByUnit(999)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}
