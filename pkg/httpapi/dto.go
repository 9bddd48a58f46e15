// Package httpapi maps the orchestrator's domain types onto the JSON
// request/response shapes described in spec §6.
package httpapi

import (
	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/evaluator"
)

// ModuleDTO is the wire shape of a module payload. Questions are emitted
// as their raw, opaquely-preserved YAML shape (label/help-text and any
// other presentation fields travel through untouched).
type ModuleDTO struct {
	ModuleID    string           `json:"module_id"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Questions   []map[string]any `json:"questions"`
}

// ModuleDTOFrom converts an evaluator.ModulePayload into its wire shape.
func ModuleDTOFrom(p *evaluator.ModulePayload) *ModuleDTO {
	if p == nil {
		return nil
	}
	dto := &ModuleDTO{
		ModuleID:    p.ModuleID,
		Title:       p.Title,
		Description: p.Description,
		Questions:   make([]map[string]any, 0, len(p.Questions)),
	}
	for _, q := range p.Questions {
		dto.Questions = append(dto.Questions, q.Raw)
	}
	return dto
}

// QuestionDTOFrom converts an engine.Question into its wire shape.
func QuestionDTOFrom(q *engine.Question) map[string]any {
	if q == nil {
		return nil
	}
	return q.Raw
}

// StartResponse is the body of POST /start.
type StartResponse struct {
	SessionID string     `json:"session_id"`
	Module    *ModuleDTO `json:"module,omitempty"`
}

// GetModuleResponse is the body of GET /module/{module_id}.
type GetModuleResponse struct {
	Module *ModuleDTO `json:"module"`
}

// GetQuestionResponse is the body of GET /question/{question_id}.
type GetQuestionResponse struct {
	Question map[string]any `json:"question"`
}

// SubmitAnswerRequest is the body of POST /submit-answer.
type SubmitAnswerRequest struct {
	SessionID string         `json:"session_id"`
	ModuleID  string         `json:"module_id,omitempty"`
	Answers   map[string]any `json:"answers"`
	Replace   bool           `json:"replace,omitempty"`
}

// NextActionDTO is the "next" field of a submit-answer response.
type NextActionDTO struct {
	Type     string `json:"type"`
	ModuleID string `json:"module_id,omitempty"`
	Message  string `json:"message,omitempty"`
}

// SubmitAnswerResponse is the body of POST /submit-answer.
type SubmitAnswerResponse struct {
	SessionID      string                `json:"session_id"`
	Parameters     evaluator.Params      `json:"parameters"`
	Next           NextActionDTO         `json:"next"`
	ModuleComplete bool                  `json:"module_complete"`
	Module         *ModuleDTO            `json:"module,omitempty"`
	Conclusion     *evaluator.Conclusion `json:"conclusion,omitempty"`
}

func SubmitAnswerDTO(r *evaluator.NextAction) NextActionDTO {
	return NextActionDTO{Type: string(r.Type), ModuleID: r.ModuleID, Message: r.Message}
}

// ResultResponse is the body of GET /result.
type ResultResponse struct {
	Parameters evaluator.Params      `json:"parameters"`
	Conclusion *evaluator.Conclusion `json:"conclusion,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
