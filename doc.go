// Package allot is the end-to-end allocation pipeline:
//
//	records ─▶ instance.Instance ─▶ precheck.Check ─▶ model.Build ─▶ bnb.Search ─▶ Result
//
// Solve works on a decoded instance and returns Go errors for programming
// and solver faults. SolveReader is the boundary used by the command line:
// it decodes a stream and folds every failure into Result.Value = -1, with
// Result.Status telling malformed input from a genuinely infeasible instance.
//
// Every assignment returned with Value ≥ 0 has been re-checked against all
// four constraint groups with model.(*Model).Verify.
//
// A logger is taken from the context (logr.FromContextOrDiscard); an
// Observer, if set, sees every Result, which is how package metrics counts
// solves without allot depending on it.
package allot
