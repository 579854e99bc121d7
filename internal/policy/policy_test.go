package policy

import (
	"errors"
	"testing"

	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Allow().Err())
	assert.True(t, errors.Is(Deny("whatever").Err(), util.ErrForbidden))
}

func TestCanViewSubmission(t *testing.T) {
	sub := &model.Submission{TraineeID: 7}

	tests := []struct {
		name     string
		actorID  uint
		role     model.UserRole
		assigned bool
		want     bool
	}{
		{"owning trainee", 7, model.Trainee, false, true},
		{"other trainee", 8, model.Trainee, false, false},
		{"assigned assessor", 3, model.Assessor, true, true},
		{"unassigned assessor", 3, model.Assessor, false, false},
		{"internal verifier", 4, model.InternalVerifier, false, true},
		{"external verifier", 5, model.ExternalVerifier, false, true},
		{"admin", 6, model.Admin, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanViewSubmission(tt.actorID, tt.role, sub, tt.assigned)
			assert.Equal(t, tt.want, got.Allowed)
		})
	}
}

func TestCanAssess(t *testing.T) {
	assert.True(t, CanAssess(model.Assessor, true).Allowed)
	assert.False(t, CanAssess(model.Assessor, false).Allowed)
	assert.False(t, CanAssess(model.Admin, true).Allowed)
	assert.False(t, CanAssess(model.Trainee, true).Allowed)
}

func TestCanVerify(t *testing.T) {
	assert.True(t, CanVerify(model.InternalVerifier).Allowed)
	assert.True(t, CanVerify(model.ExternalVerifier).Allowed)
	assert.False(t, CanVerify(model.Assessor).Allowed)
	assert.False(t, CanVerify(model.Admin).Allowed)
}

func TestCanExportPortfolio(t *testing.T) {
	tests := []struct {
		name     string
		actorID  uint
		role     model.UserRole
		assigned bool
		want     bool
	}{
		{"trainee exports own", 7, model.Trainee, false, true},
		{"trainee cannot export another", 8, model.Trainee, false, false},
		{"assigned assessor", 3, model.Assessor, true, true},
		{"unassigned assessor", 3, model.Assessor, false, false},
		{"admin", 6, model.Admin, false, true},
		{"verifier has no export", 4, model.InternalVerifier, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanExportPortfolio(tt.actorID, tt.role, 7, tt.assigned)
			assert.Equal(t, tt.want, got.Allowed)
		})
	}
}

func TestCanViewReports(t *testing.T) {
	allowed := []model.UserRole{model.Admin, model.InternalVerifier, model.ExternalVerifier}
	for _, role := range allowed {
		assert.True(t, CanViewReports(role).Allowed, "role %s", role)
	}
	for _, role := range []model.UserRole{model.Trainee, model.Assessor} {
		assert.False(t, CanViewReports(role).Allowed, "role %s", role)
	}
}

func TestSelfOrAdmin(t *testing.T) {
	assert.True(t, SelfOrAdmin(1, model.Trainee, 1).Allowed)
	assert.False(t, SelfOrAdmin(1, model.Trainee, 2).Allowed)
	assert.True(t, SelfOrAdmin(1, model.Admin, 2).Allowed)
}
