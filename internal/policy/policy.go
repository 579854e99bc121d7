// Package policy centralizes every authorization decision as a pure
// function over the actor and the facts about the target resource.
// Services gather the facts (e.g. whether an assignment exists) and ask
// here; no role comparison lives anywhere else.
package policy

import (
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/util"
)

// Decision is the typed outcome of a policy check. A denial always maps
// to Forbidden, never silently filtered and never disguised as
// not-found.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Err converts a denial into the shared Forbidden sentinel.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return util.ErrForbidden
}

// RequireRole gates an operation on an allow-set of roles.
func RequireRole(actor model.UserRole, allowed ...model.UserRole) Decision {
	for _, role := range allowed {
		if actor == role {
			return Allow()
		}
	}
	return Deny("role not in allow-set")
}

// SelfOrAdmin allows an actor to touch their own record, or any record
// when they are an admin.
func SelfOrAdmin(actorID uint, actorRole model.UserRole, targetUserID uint) Decision {
	if actorID == targetUserID || actorRole == model.Admin {
		return Allow()
	}
	return Deny("not owner and not admin")
}

// CanViewSubmission: the owning trainee, the assigned assessor, either
// verifier role, or an admin.
func CanViewSubmission(actorID uint, actorRole model.UserRole, sub *model.Submission, assigned bool) Decision {
	switch actorRole {
	case model.Admin, model.InternalVerifier, model.ExternalVerifier:
		return Allow()
	case model.Trainee:
		if sub.TraineeID == actorID {
			return Allow()
		}
		return Deny("submission belongs to another trainee")
	case model.Assessor:
		if assigned {
			return Allow()
		}
		return Deny("no assignment covers this submission")
	}
	return Deny("unknown role")
}

// CanAssess: only the assessor holding an assignment for the
// submission's trainee and unit may grade it.
func CanAssess(actorRole model.UserRole, assigned bool) Decision {
	if actorRole != model.Assessor {
		return Deny("only assessors grade submissions")
	}
	if !assigned {
		return Deny("no assignment covers this submission")
	}
	return Allow()
}

// CanVerify: internal or external verifiers only.
func CanVerify(actorRole model.UserRole) Decision {
	return RequireRole(actorRole, model.InternalVerifier, model.ExternalVerifier)
}

// CanExportPortfolio: the trainee themselves, an assessor assigned to
// any of the trainee's units, or an admin.
func CanExportPortfolio(actorID uint, actorRole model.UserRole, traineeID uint, assignedToTrainee bool) Decision {
	switch actorRole {
	case model.Admin:
		return Allow()
	case model.Trainee:
		if actorID == traineeID {
			return Allow()
		}
		return Deny("portfolio belongs to another trainee")
	case model.Assessor:
		if assignedToTrainee {
			return Allow()
		}
		return Deny("assessor not assigned to this trainee")
	}
	return Deny("role may not export portfolios")
}

// CanViewReports: admins and both verifier roles read aggregate
// reports.
func CanViewReports(actorRole model.UserRole) Decision {
	return RequireRole(actorRole, model.Admin, model.InternalVerifier, model.ExternalVerifier)
}
