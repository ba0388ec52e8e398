package ai

import (
	"fmt"

	"github.com/poiesic/realsearch/core"
)

// Generation model identifiers per audience. Investor and developer queries
// lean analytical, buyer and agent queries lean conversational.
const (
	analyticalModel     = "qwen2.5:14b"
	conversationalModel = "qwen2.5:7b"
)

// ModelForRole returns the generation model identifier for a user role.
// Every role maps to exactly one model; an unknown role is an error rather
// than a silent default.
func ModelForRole(role core.UserRole) (string, error) {
	switch role {
	case core.RoleInvestor:
		return analyticalModel, nil
	case core.RoleDeveloper:
		return analyticalModel, nil
	case core.RoleBuyer:
		return conversationalModel, nil
	case core.RoleAgent:
		return conversationalModel, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownRole, role)
	}
}
