package plan

// Criticality is the coarse severity of a single resource change.
type Criticality string

const (
	CritLow      Criticality = "low"
	CritMedium   Criticality = "medium"
	CritHigh     Criticality = "high"
	CritCritical Criticality = "critical"
)

var critRank = map[Criticality]int{
	CritLow:      0,
	CritMedium:   1,
	CritHigh:     2,
	CritCritical: 3,
}

func (c Criticality) Rank() int { return critRank[c] }

func maxCriticality(a, b Criticality) Criticality {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// criticalResourceTypes are resource types whose changes carry elevated
// operational risk: cluster control planes, identity, network boundaries,
// data stores, and secret material.
var criticalResourceTypes = map[string]struct{}{
	"aws_eks_cluster":                {},
	"aws_eks_node_group":             {},
	"aws_eks_addon":                  {},
	"aws_iam_role":                   {},
	"aws_iam_policy":                 {},
	"aws_iam_role_policy_attachment": {},
	"aws_security_group":             {},
	"aws_security_group_rule":        {},
	"aws_vpc":                        {},
	"aws_subnet":                     {},
	"aws_launch_template":            {},
	"aws_secretsmanager_secret":      {},
	"aws_ssm_parameter":              {},
	"aws_cloudwatch_event_rule":      {},
	"aws_eventbridge_rule":           {},
	"aws_sqs_queue":                  {},
	"aws_sqs_queue_policy":           {},
	"aws_rds_cluster":                {},
	"aws_rds_instance":               {},
	"aws_db_subnet_group":            {},
}

// AssessCriticality grades one resource change. Destroying or replacing a
// critical resource type is critical; updating one is high; creating one is
// medium. Any destroy or replace is at least medium.
func AssessCriticality(resourceType string, actions []string) Criticality {
	destructive := hasAction(actions, "delete") || isReplace(actions)

	if _, ok := criticalResourceTypes[resourceType]; ok {
		switch {
		case destructive:
			return CritCritical
		case hasAction(actions, "update"):
			return CritHigh
		case hasAction(actions, "create"):
			return CritMedium
		}
	}

	if destructive {
		return CritMedium
	}
	return CritLow
}

func hasAction(actions []string, want string) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

// isReplace recognizes both an explicit "replace" action and the
// delete+create pair Terraform uses in JSON plan output.
func isReplace(actions []string) bool {
	if hasAction(actions, "replace") {
		return true
	}
	return hasAction(actions, "delete") && hasAction(actions, "create")
}
