package services

import (
	"testing"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

func TestCache_GetBeforeCommit(t *testing.T) {
	c := NewCache()
	if got := Get[types.Employee](c, types.KindEmployees); got != nil {
		t.Fatalf("got=%v", got)
	}
	if c.Loaded(types.KindEmployees) {
		t.Fatal("expected not loaded")
	}
}

func TestCache_CommitNewestTicket(t *testing.T) {
	c := NewCache()
	tk := c.Begin(types.KindEmployees)
	if !Commit(c, tk, []types.Employee{{ID: "1"}, {ID: "2"}}) {
		t.Fatal("expected commit")
	}
	got := Get[types.Employee](c, types.KindEmployees)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("got=%+v", got)
	}
	if !c.Loaded(types.KindEmployees) {
		t.Fatal("expected loaded")
	}
}

func TestCache_StaleCommitDropped(t *testing.T) {
	c := NewCache()
	slow := c.Begin(types.KindServices)
	fast := c.Begin(types.KindServices)

	if c.Current(slow) {
		t.Fatal("slow ticket should not be current")
	}
	if !Commit(c, fast, []types.Service{{ID: "new"}}) {
		t.Fatal("expected fast commit")
	}
	if Commit(c, slow, []types.Service{{ID: "old"}}) {
		t.Fatal("expected stale commit to be rejected")
	}
	got := Get[types.Service](c, types.KindServices)
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("got=%+v", got)
	}
}

func TestCache_KindsAreIndependent(t *testing.T) {
	c := NewCache()
	e := c.Begin(types.KindEmployees)
	b := c.Begin(types.KindBeneficiaries)
	if !Commit(c, b, []types.Beneficiary{{ID: "b1"}}) {
		t.Fatal("expected beneficiary commit")
	}
	if !Commit(c, e, []types.Employee{{ID: "e1"}}) {
		t.Fatal("expected employee commit")
	}
}

func TestCache_GetReturnsCopy(t *testing.T) {
	c := NewCache()
	Put(c, types.KindPolicies, []types.Policy{{PolicyName: "Basic"}})
	got := Get[types.Policy](c, types.KindPolicies)
	got[0].PolicyName = "mutated"
	again := Get[types.Policy](c, types.KindPolicies)
	if again[0].PolicyName != "Basic" {
		t.Fatalf("cache mutated: %q", again[0].PolicyName)
	}
}

func TestCache_PutSupersedesInFlight(t *testing.T) {
	c := NewCache()
	inflight := c.Begin(types.KindBilling)
	Put(c, types.KindBilling, []types.Claim{{ClaimID: "CLM001"}})
	if Commit(c, inflight, []types.Claim{{ClaimID: "CLM999"}}) {
		t.Fatal("expected in-flight commit to be rejected")
	}
}

func TestCache_WrongElementType(t *testing.T) {
	c := NewCache()
	Put(c, types.KindEmployees, []types.Employee{{ID: "1"}})
	if got := Get[types.Service](c, types.KindEmployees); got != nil {
		t.Fatalf("got=%v", got)
	}
}
