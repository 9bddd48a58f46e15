package orchestrator

import "errors"

// ErrModuleIDRequired is a 400-class fault: submit_answer/get_module was
// called with no module id and the session has none active either.
var ErrModuleIDRequired = errors.New("module_id_required")

// ErrModuleNotFound is a 404-class fault: the requested module id does
// not exist in the resolved engine.
var ErrModuleNotFound = errors.New("module_not_found")

// ErrQuestionNotFound is a 404-class fault: get_question referenced an
// id the engine has no record of.
var ErrQuestionNotFound = errors.New("question_not_found")
