package plan

import (
	"sort"
	"strings"
)

// BlastRadius summarizes the worst-case operational impact of a plan,
// computed locally before any model call so a degraded model response still
// carries a deterministic floor.
type BlastRadius struct {
	Level             Criticality
	CriticalChanges   []ResourceChange
	AffectedServices  []string
	DownstreamImpacts []string
	EstimatedDowntime string
}

// AssessBlastRadius aggregates per-resource criticality into an overall
// assessment. Affected services and downstream impacts are sorted so the
// result is deterministic for a given change set.
func AssessBlastRadius(changes []ResourceChange) BlastRadius {
	br := BlastRadius{Level: CritLow}

	services := map[string]struct{}{}
	impacts := map[string]struct{}{}

	for _, rc := range changes {
		br.Level = maxCriticality(br.Level, rc.Criticality)
		if rc.Criticality.Rank() < CritHigh.Rank() {
			continue
		}
		br.CriticalChanges = append(br.CriticalChanges, rc)

		destructive := hasAction(rc.Actions, "delete") || isReplace(rc.Actions)
		switch {
		case strings.Contains(rc.Type, "eks"):
			services["EKS"] = struct{}{}
			if destructive {
				impacts["EKS workloads may experience disruption"] = struct{}{}
			}
		case strings.Contains(rc.Type, "iam"):
			services["IAM"] = struct{}{}
			if hasAction(rc.Actions, "delete") {
				impacts["Services may lose access permissions"] = struct{}{}
			}
		case strings.Contains(rc.Type, "security_group"):
			services["Networking"] = struct{}{}
			if destructive {
				impacts["Network connectivity may be interrupted"] = struct{}{}
			}
		case strings.Contains(rc.Type, "rds") || strings.Contains(rc.Type, "db_"):
			services["Database"] = struct{}{}
			if destructive {
				impacts["Database downtime expected"] = struct{}{}
			}
		case strings.Contains(rc.Type, "sqs"):
			services["Messaging"] = struct{}{}
			if hasAction(rc.Actions, "delete") {
				impacts["Message queue data will be lost"] = struct{}{}
			}
		}
	}

	br.AffectedServices = sortedKeys(services)
	br.DownstreamImpacts = sortedKeys(impacts)
	br.EstimatedDowntime = estimateDowntime(br)

	return br
}

func estimateDowntime(br BlastRadius) string {
	if br.Level != CritCritical {
		return ""
	}
	for _, rc := range br.CriticalChanges {
		if strings.Contains(rc.Type, "rds") {
			return "5-15 minutes"
		}
	}
	for _, rc := range br.CriticalChanges {
		if strings.Contains(rc.Type, "eks") {
			return "2-10 minutes"
		}
	}
	return ""
}

func sortedKeys(set map[string]struct{}) []string {
	var keys []string
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
