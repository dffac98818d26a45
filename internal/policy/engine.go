// Package policy evaluates conversation access rules with OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

// Action names the conversation operation being checked.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
)

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allow  bool
	Reason string
}

// Input is what the policy sees.
type Input struct {
	Action       Action
	Requester    domain.Requester
	To           string
	Conversation *domain.Conversation
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.conversation_policy.decision"),
		rego.Module("conversation_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the policy for one operation.
func (e *Engine) Evaluate(ctx context.Context, in Input) (Decision, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(in.document()))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	// The policy defines a default, so an empty result means a broken module.
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return Decision{Allow: false, Reason: "policy produced no decision"}, nil
	}

	obj, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return Decision{}, fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}
	allow, _ := obj["allow"].(bool)
	reason, _ := obj["reason"].(string)
	return Decision{Allow: allow, Reason: reason}, nil
}

func (in Input) document() map[string]interface{} {
	doc := map[string]interface{}{
		"action": string(in.Action),
		"to":     in.To,
		"requester": map[string]interface{}{
			"id":        in.Requester.UserID,
			"is_seller": in.Requester.IsSeller,
		},
	}
	if in.Conversation != nil {
		doc["conversation"] = map[string]interface{}{
			"id":        in.Conversation.ID,
			"seller_id": in.Conversation.SellerID,
			"buyer_id":  in.Conversation.BuyerID,
		}
	}
	return doc
}

// DefaultPolicy is the default policy content. Reads and updates are open to
// any authenticated requester; create refuses a conversation with oneself.
const DefaultPolicy = `
package conversation_policy

import rego.v1

default decision := {"allow": false, "reason": "unknown action"}

decision := {"allow": false, "reason": "requester is not authenticated"} if {
	input.requester.id == ""
} else := {"allow": false, "reason": "cannot start a conversation with yourself"} if {
	input.action == "create"
	input.to == input.requester.id
} else := {"allow": true, "reason": ""} if {
	input.action in {"create", "read", "update"}
}
`
