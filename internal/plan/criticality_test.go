package plan

import "testing"

func TestAssessCriticality(t *testing.T) {
	cases := []struct {
		name         string
		resourceType string
		actions      []string
		want         Criticality
	}{
		{"critical type delete", "aws_iam_role", []string{"delete"}, CritCritical},
		{"critical type replace pair", "aws_rds_cluster", []string{"create", "delete"}, CritCritical},
		{"critical type update", "aws_security_group", []string{"update"}, CritHigh},
		{"critical type create", "aws_eks_cluster", []string{"create"}, CritMedium},
		{"ordinary delete", "aws_s3_bucket", []string{"delete"}, CritMedium},
		{"ordinary replace", "aws_instance", []string{"delete", "create"}, CritMedium},
		{"ordinary create", "aws_s3_bucket", []string{"create"}, CritLow},
		{"ordinary update", "aws_s3_bucket", []string{"update"}, CritLow},
		{"no-op", "aws_s3_bucket", []string{"no-op"}, CritLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AssessCriticality(tc.resourceType, tc.actions)
			if got != tc.want {
				t.Fatalf("AssessCriticality(%s, %v) = %s, want %s", tc.resourceType, tc.actions, got, tc.want)
			}
		})
	}
}

func TestAssessBlastRadius(t *testing.T) {
	changes := []ResourceChange{
		{Address: "aws_rds_cluster.main", Type: "aws_rds_cluster", Actions: []string{"delete"}, Criticality: CritCritical},
		{Address: "aws_iam_role.app", Type: "aws_iam_role", Actions: []string{"update"}, Criticality: CritHigh},
		{Address: "aws_s3_bucket.logs", Type: "aws_s3_bucket", Actions: []string{"create"}, Criticality: CritLow},
	}

	br := AssessBlastRadius(changes)

	if br.Level != CritCritical {
		t.Fatalf("expected critical level, got %s", br.Level)
	}
	if len(br.CriticalChanges) != 2 {
		t.Fatalf("expected 2 critical changes, got %d", len(br.CriticalChanges))
	}
	if len(br.AffectedServices) != 2 || br.AffectedServices[0] != "Database" || br.AffectedServices[1] != "IAM" {
		t.Fatalf("unexpected services: %v", br.AffectedServices)
	}
	if br.EstimatedDowntime != "5-15 minutes" {
		t.Fatalf("expected RDS downtime estimate, got %q", br.EstimatedDowntime)
	}
}

func TestAssessBlastRadiusEmpty(t *testing.T) {
	br := AssessBlastRadius(nil)
	if br.Level != CritLow {
		t.Fatalf("empty plan should be low, got %s", br.Level)
	}
	if br.EstimatedDowntime != "" {
		t.Fatalf("empty plan should have no downtime estimate")
	}
}
