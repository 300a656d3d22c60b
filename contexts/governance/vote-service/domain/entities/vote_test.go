package entities

import "testing"

func TestAcceptanceCriteriaMet(t *testing.T) {
	cases := []struct {
		name     string
		criteria AcceptanceCriteria
		count    int
		total    int
		want     bool
	}{
		{"majority above half", AcceptanceCriteriaMajority, 6, 10, true},
		{"majority exactly half", AcceptanceCriteriaMajority, 5, 10, false},
		{"majority single voter", AcceptanceCriteriaMajority, 1, 1, true},
		{"majority no votes", AcceptanceCriteriaMajority, 0, 0, false},
		{"two thirds exact", AcceptanceCriteriaTwoThirds, 2, 3, true},
		{"two thirds below", AcceptanceCriteriaTwoThirds, 6, 10, false},
		{"two thirds above", AcceptanceCriteriaTwoThirds, 7, 10, true},
		{"unanimity all", AcceptanceCriteriaUnanimity, 4, 4, true},
		{"unanimity one short", AcceptanceCriteriaUnanimity, 3, 4, false},
		{"unanimity no votes", AcceptanceCriteriaUnanimity, 0, 0, false},
		{"unknown criteria", AcceptanceCriteria("plurality"), 9, 10, false},
	}
	for _, tc := range cases {
		if got := tc.criteria.Met(tc.count, tc.total); got != tc.want {
			t.Fatalf("%s: Met(%d, %d) = %v, want %v", tc.name, tc.count, tc.total, got, tc.want)
		}
	}
}

func TestStatusAndVisibilityValidation(t *testing.T) {
	if !VoteStatusOpen.Valid() || !VoteStatusDone.Valid() || !VoteStatusNotStarted.Valid() {
		t.Fatalf("known statuses must validate")
	}
	if VoteStatus("paused").Valid() {
		t.Fatalf("unknown status must not validate")
	}
	if !VoteVisibilityPublic.Valid() || VoteVisibility("secret").Valid() {
		t.Fatalf("visibility validation broken")
	}
}
