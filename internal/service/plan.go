package service

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
)

const targetInterventionRatePct = 10

// BuildPlan renders the fixed automation step list for req.
func BuildPlan(req domain.PlanRequest) domain.Plan {
	approval := "conditional"
	if strings.Contains(strings.ToLower(req.Guardrail), "approval") {
		approval = "high"
	}

	return domain.Plan{
		Objective: req.Objective,
		Steps: []string{
			fmt.Sprintf("Ingest trigger event: %s", req.Trigger),
			"Normalize and enrich inventory context",
			fmt.Sprintf("Execute primary action: %s", req.Action),
			fmt.Sprintf("Apply guardrail: %s", req.Guardrail),
			"Persist audit trail and metrics",
		},
		RiskControls: domain.RiskControls{
			HumanApproval:             approval,
			TargetInterventionRatePct: targetInterventionRatePct,
		},
	}
}
