// Package assign runs the two-phase group assignment.
//
// Phase one packs, slot by slot in catalogue order, the individuals that
// asked for that slot into fresh groups. Phase two packs everyone without a
// preference into the union of all groups, pulling each affinity cluster
// toward a group that already seats its tag.
//
// Before anything is packed the engine validates its input and checks that
// no slot is asked to hold more individuals than its groups can seat. An
// infeasible slot fails the run with *errors.CapacityError; no group is
// created in that case.
//
// Basic usage:
//
//	res, err := assign.Assign(individuals, slots, 24)
//	if err != nil {
//	    return err
//	}
//	for ind, id := range res.Assignment {
//	    fmt.Println(ind.ID, id)
//	}
package assign
