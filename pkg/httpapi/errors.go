package httpapi

import (
	"errors"
	"net/http"

	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/evaluator"
	"github.com/aiquest/classifier/pkg/expr"
	"github.com/aiquest/classifier/pkg/orchestrator"
	"github.com/aiquest/classifier/pkg/session"
)

// ErrorBody is the structured detail carried by a non-success response:
// either a bare string token or an object keyed on the failure reason,
// per §6/§7.
type ErrorBody struct {
	Error any `json:"error"`
}

// MapError translates a domain error into the (status, detail) pair the
// transport layer writes back, per the three-kind taxonomy of §7: client
// faults (400/404), authoring faults (500), or — for anything
// unrecognised — a generic internal fault.
func MapError(err error) (int, any) {
	var (
		validationErr    *evaluator.ValidationError
		unknownQErr      *evaluator.UnknownQuestionError
		routerTargetErr  *evaluator.RouterTargetMissingError
		faultErr         *expr.FaultError
		loadFault        *engine.LoadFault
	)

	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, orchestrator.ErrModuleNotFound):
		return http.StatusNotFound, "module_not_found"
	case errors.Is(err, orchestrator.ErrQuestionNotFound):
		return http.StatusNotFound, "question_not_found"
	case errors.Is(err, orchestrator.ErrModuleIDRequired):
		return http.StatusBadRequest, "module_id_required"
	case errors.Is(err, engine.ErrResourcesDirMissing):
		return http.StatusInternalServerError, "resources_dir_missing"
	case errors.Is(err, engine.ErrNoModulesLoaded):
		return http.StatusInternalServerError, "no_modules_loaded"

	case errors.As(err, &validationErr):
		detail := map[string]any{"invalid_answer": validationErr.QuestionID}
		detail[validationErr.Reason] = true
		return http.StatusBadRequest, detail

	case errors.As(err, &unknownQErr):
		return http.StatusBadRequest, map[string]any{"unknown_question": unknownQErr.QuestionID}

	case errors.As(err, &routerTargetErr):
		return http.StatusInternalServerError, map[string]any{
			"router_target_missing": routerTargetErr.Target,
			"module_id":             routerTargetErr.ModuleID,
		}

	case errors.As(err, &faultErr):
		return http.StatusInternalServerError, map[string]any{"invalid_condition": faultErr.Condition}

	case errors.As(err, &loadFault):
		return http.StatusInternalServerError, map[string]any{
			"load_fault": loadFault.File,
			"reason":     loadFault.Reason,
		}

	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
