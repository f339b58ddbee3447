// Package services contains the stateless domain services of the dispatch
// core: the fare quote engine (a pure pricing function) and the order
// transition service (the role-aware guard in front of the order state
// machine). Both are free of IO; orchestration and persistence live in the
// application layer.
package services
