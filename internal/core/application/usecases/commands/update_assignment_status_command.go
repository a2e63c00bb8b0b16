package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateAssignmentStatusCommandIsNotConstructed = errors.New(
	"UpdateAssignmentStatusCommand must be created via NewUpdateAssignmentStatusCommand constructor",
)

// UpdateAssignmentStatusCommand moves an assignment one step along its lifecycle.
type UpdateAssignmentStatusCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	status       assignment.Status
	requestedBy  string

	guard guard.ConstructorGuard
}

func NewUpdateAssignmentStatusCommand(assignmentID, status, requestedBy string) (UpdateAssignmentStatusCommand, error) {
	cmd := UpdateAssignmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	id, idErr := parseID("assignmentId", assignmentID)

	var statusErr error
	parsed := assignment.Status("")
	if strings.TrimSpace(status) == "" {
		statusErr = errs.NewValueIsRequiredError("status")
	} else {
		parsed, statusErr = assignment.ParseStatus(strings.TrimSpace(status))
	}

	var requestedByErr error
	requestedBy = strings.TrimSpace(requestedBy)
	if requestedBy == "" {
		requestedByErr = errs.NewValueIsRequiredError("requestedBy")
	}

	if err := errors.Join(idErr, statusErr, requestedByErr); err != nil {
		return UpdateAssignmentStatusCommand{}, err
	}

	cmd.assignmentID = id
	cmd.status = parsed
	cmd.requestedBy = requestedBy
	return cmd, nil
}

func (c UpdateAssignmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAssignmentStatusCommandIsNotConstructed)
}

func (c UpdateAssignmentStatusCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

func (c UpdateAssignmentStatusCommand) Status() assignment.Status {
	return c.status
}

func (c UpdateAssignmentStatusCommand) RequestedBy() string {
	return c.requestedBy
}
